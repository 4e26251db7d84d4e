package concepts

import (
	"log/slog"
	"sort"

	"repolens/internal/slogutil"
)

// Extractor runs an ordered list of matchers over source files.
type Extractor struct {
	matchers []Matcher
	logger   *slog.Logger
}

// NewExtractor creates an extractor with the default matchers for vocab.
func NewExtractor(vocab Vocabulary, logger *slog.Logger) *Extractor {
	return NewExtractorWithMatchers(DefaultMatchers(vocab), logger)
}

// NewExtractorWithMatchers creates an extractor with a custom matcher list.
func NewExtractorWithMatchers(matchers []Matcher, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Extractor{matchers: matchers, logger: logger}
}

// Matchers returns the matcher names in evaluation order.
func (e *Extractor) Matchers() []string {
	names := make([]string, len(e.matchers))
	for i, m := range e.matchers {
		names[i] = m.Name
	}
	return names
}

// Extract runs every matcher over f. An id found by several matchers is
// reported once, with the type of the first matcher that found it.
func (e *Extractor) Extract(f SourceFile) []Match {
	seen := make(map[string]bool)
	var out []Match
	for _, m := range e.matchers {
		for _, match := range m.Match(f) {
			if match.ID == "" || seen[match.ID] {
				continue
			}
			seen[match.ID] = true
			out = append(out, match)
		}
	}
	return out
}

// ExtractAll accumulates concepts across files, keyed by id. A concept found
// again in another file gains that file rather than being duplicated. The
// result is sorted by id.
func (e *Extractor) ExtractAll(files []SourceFile) []Concept {
	byID := make(map[string]*Concept)
	fileSets := make(map[string]map[string]bool)

	for _, f := range files {
		for _, m := range e.Extract(f) {
			c, ok := byID[m.ID]
			if !ok {
				c = &Concept{ID: m.ID, Label: m.Label, Type: m.Type}
				byID[m.ID] = c
				fileSets[m.ID] = make(map[string]bool)
			}
			if !fileSets[m.ID][f.Path] {
				fileSets[m.ID][f.Path] = true
				c.Files = append(c.Files, f.Path)
			}
		}
	}

	concepts := make([]Concept, 0, len(byID))
	for _, c := range byID {
		sort.Strings(c.Files)
		concepts = append(concepts, *c)
	}
	sort.Slice(concepts, func(i, j int) bool {
		return concepts[i].ID < concepts[j].ID
	})

	e.logger.Debug("Concept extraction completed",
		"files", len(files),
		"concepts", len(concepts),
	)
	return concepts
}
