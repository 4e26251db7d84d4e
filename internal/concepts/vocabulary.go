package concepts

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// VocabularyFile is the default filename for vocabulary declarations.
const VocabularyFile = "VOCABULARY.toml"

// defaultTerms are common web-application domain terms.
var defaultTerms = []string{
	"auth", "user", "account", "profile", "session", "login", "signup", "password",
	"permission", "role", "admin", "team", "organization", "member", "invite",
	"payment", "billing", "invoice", "subscription", "checkout", "cart", "order",
	"product", "catalog", "inventory", "price", "discount", "coupon", "shipping",
	"customer", "notification", "email", "message", "chat", "comment", "post",
	"feed", "search", "filter", "analytics", "report", "dashboard", "settings",
	"upload", "media", "image", "file", "calendar", "event", "booking", "review",
	"theme", "locale",
}

// Vocabulary is the set of domain terms scanned for by the domain matcher.
type Vocabulary struct {
	Terms []string // lowercase, unique, sorted
}

// vocabularyDeclaration is the root structure of VOCABULARY.toml.
type vocabularyDeclaration struct {
	Version int      `toml:"version"`
	Replace bool     `toml:"replace"`           // drop the built-in terms
	Terms   []string `toml:"terms"`             // extra terms
	Exclude []string `toml:"exclude,omitempty"` // terms removed from the result
}

// DefaultVocabulary returns the built-in domain vocabulary.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(defaultTerms)
}

// NewVocabulary normalizes terms into a Vocabulary.
func NewVocabulary(terms []string) Vocabulary {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return Vocabulary{Terms: out}
}

// LoadVocabulary parses a vocabulary declaration and merges it with the
// built-in terms unless the file sets replace = true.
func LoadVocabulary(filePath string) (Vocabulary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read %s: %w", path.Base(filePath), err)
	}

	var decl vocabularyDeclaration
	if err := toml.Unmarshal(data, &decl); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse %s: %w", path.Base(filePath), err)
	}
	if decl.Version != 0 && decl.Version != 1 {
		return Vocabulary{}, fmt.Errorf("unsupported vocabulary version: %d", decl.Version)
	}

	terms := make([]string, 0, len(defaultTerms)+len(decl.Terms))
	if !decl.Replace {
		terms = append(terms, defaultTerms...)
	}
	terms = append(terms, decl.Terms...)

	excluded := make(map[string]bool, len(decl.Exclude))
	for _, t := range decl.Exclude {
		excluded[strings.ToLower(strings.TrimSpace(t))] = true
	}
	kept := terms[:0]
	for _, t := range terms {
		if !excluded[strings.ToLower(strings.TrimSpace(t))] {
			kept = append(kept, t)
		}
	}

	return NewVocabulary(kept), nil
}

// Contains reports whether term is part of the vocabulary.
func (v Vocabulary) Contains(term string) bool {
	term = strings.ToLower(term)
	i := sort.SearchStrings(v.Terms, term)
	return i < len(v.Terms) && v.Terms[i] == term
}

// matcher scans the file name, the parent directory name and the content
// for vocabulary terms, case-insensitively.
func (v Vocabulary) matcher() func(SourceFile) []Match {
	return func(f SourceFile) []Match {
		base := strings.ToLower(path.Base(f.Path))
		base = strings.TrimSuffix(base, path.Ext(base))
		dir := strings.ToLower(path.Base(path.Dir(f.Path)))
		content := strings.ToLower(f.Content)

		var matches []Match
		for _, term := range v.Terms {
			if strings.Contains(base, term) || strings.Contains(dir, term) || strings.Contains(content, term) {
				matches = append(matches, Match{ID: DomainPrefix + term, Label: term, Type: TypeConcept})
			}
		}
		return matches
	}
}
