package concepts

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Relationship weights.
const (
	sharedFileBaseWeight = 0.5
	sharedFileStep       = 0.2 // per shared file, capped at +0.5
	sharedFileMaxBonus   = 0.5
	usesBonus            = 0.2
	extendsBonus         = 0.3
	definesBonus         = 0.4
	dependsWeight        = 0.4
)

// labelPatterns holds the compiled text patterns for one concept label.
type labelPatterns struct {
	uses    *regexp.Regexp
	extends *regexp.Regexp
	defines *regexp.Regexp
}

func compileLabel(label string) labelPatterns {
	q := regexp.QuoteMeta(label)
	return labelPatterns{
		uses:    regexp.MustCompile(`\bimport\b[^;'"]*\b` + q + `\b`),
		extends: regexp.MustCompile(`\b(?:extends|implements)\s+(?:[\w.]+\s*,\s*)*` + q + `\b`),
		defines: regexp.MustCompile(`\b(?:function|class|interface|type|const|let|var|enum)\s+` + q + `\b`),
	}
}

// InferRelationships derives directed relationships for every ordered pair of
// distinct concepts. contents maps file paths to their text.
//
// When A and B share files the pair is related, with weight growing with the
// number of shared files. The shared text is then checked for an import of
// B's label (uses), an extends or implements clause naming it (extends) and a
// declaration of it (defines); each match adds to the weight and the last
// match names the type. Without shared files, A depends on B when B's label
// appears anywhere in A's files.
func InferRelationships(concepts []Concept, contents map[string]string) []Relationship {
	patterns := make(map[string]labelPatterns)
	patternsFor := func(label string) labelPatterns {
		p, ok := patterns[label]
		if !ok {
			p = compileLabel(label)
			patterns[label] = p
		}
		return p
	}

	fileSets := make([]map[string]bool, len(concepts))
	for i, c := range concepts {
		fileSets[i] = make(map[string]bool, len(c.Files))
		for _, f := range c.Files {
			fileSets[i][f] = true
		}
	}

	var rels []Relationship
	for i, a := range concepts {
		for j, b := range concepts {
			if i == j || a.ID == b.ID {
				continue
			}

			var shared []string
			for _, f := range a.Files {
				if fileSets[j][f] {
					shared = append(shared, f)
				}
			}

			if len(shared) > 0 {
				rels = append(rels, sharedRelationship(a, b, shared, contents, patternsFor(b.Label)))
				continue
			}

			if b.Label != "" && mentions(a.Files, contents, strings.ToLower(b.Label)) {
				rels = append(rels, Relationship{Source: a.ID, Target: b.ID, Type: RelDepends, Weight: dependsWeight})
			}
		}
	}

	sort.SliceStable(rels, func(i, j int) bool {
		if rels[i].Source != rels[j].Source {
			return rels[i].Source < rels[j].Source
		}
		return rels[i].Target < rels[j].Target
	})
	return rels
}

func sharedRelationship(a, b Concept, shared []string, contents map[string]string, p labelPatterns) Relationship {
	rel := Relationship{
		Source: a.ID,
		Target: b.ID,
		Type:   RelRelated,
		Weight: sharedFileBaseWeight + math.Min(float64(len(shared))*sharedFileStep, sharedFileMaxBonus),
	}

	var text strings.Builder
	for _, f := range shared {
		text.WriteString(contents[f])
		text.WriteByte('\n')
	}
	body := text.String()

	if b.Label != "" {
		if p.uses.MatchString(body) {
			rel.Type = RelUses
			rel.Weight += usesBonus
		}
		if p.extends.MatchString(body) {
			rel.Type = RelExtends
			rel.Weight += extendsBonus
		}
		if p.defines.MatchString(body) {
			rel.Type = RelDefines
			rel.Weight += definesBonus
		}
	}

	rel.Weight = math.Min(rel.Weight, 1)
	return rel
}

func mentions(files []string, contents map[string]string, needle string) bool {
	for _, f := range files {
		if strings.Contains(strings.ToLower(contents[f]), needle) {
			return true
		}
	}
	return false
}
