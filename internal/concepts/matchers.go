package concepts

import (
	"path"
	"regexp"
	"strings"
)

// Matcher is one independent extraction pass.
type Matcher struct {
	Name  string
	Match func(SourceFile) []Match
}

const exportPrefix = `\bexport\s+(?:default\s+)?(?:declare\s+)?(?:async\s+)?`

var (
	hookDeclRe     = regexp.MustCompile(exportPrefix + `(?:function\s*\*?\s*|const\s+|let\s+)(use[A-Z]\w*)`)
	classDeclRe    = regexp.MustCompile(exportPrefix + `(?:abstract\s+)?class\s+([A-Z]\w*)`)
	typeDeclRe     = regexp.MustCompile(exportPrefix + `(?:type|interface)\s+([A-Za-z_]\w*)`)
	pascalDeclRe   = regexp.MustCompile(exportPrefix + `(?:abstract\s+)?(?:function\s*\*?\s*|const\s+|let\s+|class\s+)([A-Z]\w*)`)
	camelDeclRe    = regexp.MustCompile(exportPrefix + `(?:function\s*\*?\s*|const\s+|let\s+)([a-z]\w*)`)
	contextIdentRe = regexp.MustCompile(`\b([A-Z]\w*Context)\b`)
	hookNameRe     = regexp.MustCompile(`^use[A-Z]`)
	constantNameRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// routeParamTrims strips dynamic segment markers like [id] or :id.
const routeParamTrims = "[]{}()$:"

// DefaultMatchers returns the extraction passes in evaluation order. When two
// passes yield the same id the earlier one decides the concept type, so the
// more specific passes come first.
func DefaultMatchers(vocab Vocabulary) []Matcher {
	return []Matcher{
		{Name: "hook", Match: declMatcher(hookDeclRe, TypeHook, nil)},
		{Name: "class", Match: declMatcher(classDeclRe, TypeClass, nil)},
		{Name: "type", Match: declMatcher(typeDeclRe, TypeType, nil)},
		{Name: "context", Match: matchContexts},
		{Name: "component", Match: declMatcher(pascalDeclRe, TypeComponent, constantNameRe)},
		{Name: "function", Match: declMatcher(camelDeclRe, TypeFunction, hookNameRe)},
		{Name: "api", Match: matchAPIRoute},
		{Name: "domain", Match: vocab.matcher()},
	}
}

// declMatcher builds a matcher from a declaration pattern whose first group
// is the declared name. Names matching skip are ignored.
func declMatcher(re *regexp.Regexp, typ ConceptType, skip *regexp.Regexp) func(SourceFile) []Match {
	return func(f SourceFile) []Match {
		var matches []Match
		for _, m := range re.FindAllStringSubmatch(f.Content, -1) {
			name := m[1]
			if skip != nil && skip.MatchString(name) {
				continue
			}
			matches = append(matches, Match{ID: name, Label: name, Type: typ})
		}
		return matches
	}
}

// matchAPIRoute yields one concept for files under an api directory, named
// after the first route segment below it.
func matchAPIRoute(f SourceFile) []Match {
	segments := strings.Split(strings.Trim(f.Path, "/"), "/")
	for i := 0; i < len(segments)-1; i++ {
		if !strings.EqualFold(segments[i], "api") {
			continue
		}
		route := segments[i+1]
		if i+1 == len(segments)-1 {
			route = strings.TrimSuffix(route, path.Ext(route))
		}
		route = strings.Trim(route, routeParamTrims)
		if route == "" {
			return nil
		}
		return []Match{{ID: APIPrefix + route, Label: route, Type: TypeAPI}}
	}
	return nil
}

func matchContexts(f SourceFile) []Match {
	var matches []Match
	for _, m := range contextIdentRe.FindAllStringSubmatch(f.Content, -1) {
		matches = append(matches, Match{ID: m[1], Label: m[1], Type: TypeContext})
	}
	return matches
}
