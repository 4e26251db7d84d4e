package concepts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func findMatch(matches []Match, id string) (Match, bool) {
	for _, m := range matches {
		if m.ID == id {
			return m, true
		}
	}
	return Match{}, false
}

func TestExtractDeclarations(t *testing.T) {
	e := NewExtractor(DefaultVocabulary(), nil)

	tests := []struct {
		name    string
		content string
		id      string
		want    ConceptType
	}{
		{"hook", "export function useAuth() {}", "useAuth", TypeHook},
		{"const hook", "export const useToggle = () => {}", "useToggle", TypeHook},
		{"class", "export class SessionStore {}", "SessionStore", TypeClass},
		{"interface", "export interface ButtonProps {}", "ButtonProps", TypeType},
		{"type alias", "export type Size = 'sm' | 'lg'", "Size", TypeType},
		{"default component", "export default function App() {}", "App", TypeComponent},
		{"const component", "export const Header = () => null", "Header", TypeComponent},
		{"function", "export const formatDate = (d) => d", "formatDate", TypeFunction},
		{"context", "const ThemeContext = createContext(null)", "ThemeContext", TypeContext},
		{"exported context", "export const AuthContext = createContext(null)", "AuthContext", TypeContext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := e.Extract(SourceFile{Path: "src/x.ts", Content: tt.content})
			m, ok := findMatch(matches, tt.id)
			if !ok {
				t.Fatalf("expected %s in %+v", tt.id, matches)
			}
			if m.Type != tt.want {
				t.Errorf("expected type %s, got %s", tt.want, m.Type)
			}
			if m.Label != tt.id {
				t.Errorf("expected label %s, got %s", tt.id, m.Label)
			}
		})
	}
}

func TestExtractSkips(t *testing.T) {
	e := NewExtractor(DefaultVocabulary(), nil)

	matches := e.Extract(SourceFile{Path: "src/x.ts", Content: "export const MAX_RETRIES = 3\nfunction Hidden() {}"})
	if _, ok := findMatch(matches, "MAX_RETRIES"); ok {
		t.Error("constants should not become components")
	}
	if _, ok := findMatch(matches, "Hidden"); ok {
		t.Error("unexported declarations should be ignored")
	}
}

func TestExtractHookNotFunction(t *testing.T) {
	e := NewExtractor(DefaultVocabulary(), nil)

	matches := e.Extract(SourceFile{Path: "src/x.ts", Content: "export function useCart() {}"})
	count := 0
	for _, m := range matches {
		if m.ID == "useCart" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected useCart once, got %d", count)
	}
}

func TestMatchAPIRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/pages/api/users/[id].ts", "API:users"},
		{"src/api/login.ts", "API:login"},
		{"app/api/[slug]/route.ts", "API:slug"},
		{"src/api.ts", ""},
		{"src/components/Button.tsx", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			matches := matchAPIRoute(SourceFile{Path: tt.path})
			if tt.want == "" {
				if len(matches) != 0 {
					t.Errorf("expected no match, got %+v", matches)
				}
				return
			}
			if len(matches) != 1 || matches[0].ID != tt.want || matches[0].Type != TypeAPI {
				t.Errorf("expected %s, got %+v", tt.want, matches)
			}
		})
	}
}

func TestDomainMatcher(t *testing.T) {
	e := NewExtractor(NewVocabulary([]string{"payment", "checkout", "ledger"}), nil)

	matches := e.Extract(SourceFile{Path: "src/payment/Form.tsx", Content: "Proceed to Checkout"})
	for _, id := range []string{"Domain:payment", "Domain:checkout"} {
		m, ok := findMatch(matches, id)
		if !ok {
			t.Errorf("expected %s", id)
			continue
		}
		if m.Type != TypeConcept {
			t.Errorf("%s: expected concept type, got %s", id, m.Type)
		}
	}
	if _, ok := findMatch(matches, "Domain:ledger"); ok {
		t.Error("ledger does not appear anywhere")
	}
}

func TestExtractAllMergesFiles(t *testing.T) {
	e := NewExtractorWithMatchers(DefaultMatchers(Vocabulary{}), nil)

	concepts := e.ExtractAll([]SourceFile{
		{Path: "src/b.ts", Content: "export function Foo() {}"},
		{Path: "src/a.ts", Content: "export const Foo = () => null"},
	})

	if len(concepts) != 1 {
		t.Fatalf("expected 1 concept, got %+v", concepts)
	}
	foo := concepts[0]
	if foo.ID != "Foo" || foo.Type != TypeComponent {
		t.Errorf("unexpected concept %+v", foo)
	}
	if want := []string{"src/a.ts", "src/b.ts"}; !reflect.DeepEqual(foo.Files, want) {
		t.Errorf("expected files %v, got %v", want, foo.Files)
	}
}

func TestExtractAllFirstTypeWins(t *testing.T) {
	e := NewExtractorWithMatchers(DefaultMatchers(Vocabulary{}), nil)

	concepts := e.ExtractAll([]SourceFile{
		{Path: "a.ts", Content: "export class Widget {}"},
		{Path: "b.ts", Content: "export function Widget() {}"},
	})
	if len(concepts) != 1 || concepts[0].Type != TypeClass {
		t.Errorf("expected a single class concept, got %+v", concepts)
	}
}

func TestExtractAllSortedByID(t *testing.T) {
	e := NewExtractorWithMatchers(DefaultMatchers(Vocabulary{}), nil)

	concepts := e.ExtractAll([]SourceFile{
		{Path: "a.ts", Content: "export class Zeta {}\nexport class Alpha {}\nexport class Mid {}"},
	})
	var ids []string
	for _, c := range concepts {
		ids = append(ids, c.ID)
	}
	if want := []string{"Alpha", "Mid", "Zeta"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
}

func TestExtractAllEmpty(t *testing.T) {
	e := NewExtractor(DefaultVocabulary(), nil)
	if got := e.ExtractAll(nil); len(got) != 0 {
		t.Errorf("expected no concepts, got %+v", got)
	}
}

func TestMatcherOrder(t *testing.T) {
	e := NewExtractor(DefaultVocabulary(), nil)
	want := []string{"hook", "class", "type", "context", "component", "function", "api", "domain"}
	if got := e.Matchers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary([]string{" Cart", "auth", "cart", ""})
	if want := []string{"auth", "cart"}; !reflect.DeepEqual(v.Terms, want) {
		t.Errorf("expected %v, got %v", want, v.Terms)
	}
	if !v.Contains("CART") {
		t.Error("Contains should ignore case")
	}
	if v.Contains("user") {
		t.Error("user is not a term")
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	t.Run("merge", func(t *testing.T) {
		v, err := LoadVocabulary(write("merge.toml", "version = 1\nterms = [\"Ledger\"]\nexclude = [\"auth\"]\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !v.Contains("ledger") || !v.Contains("user") {
			t.Errorf("expected merged terms, got %v", v.Terms)
		}
		if v.Contains("auth") {
			t.Error("auth should be excluded")
		}
	})

	t.Run("replace", func(t *testing.T) {
		v, err := LoadVocabulary(write("replace.toml", "replace = true\nterms = [\"ledger\", \"vault\"]\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"ledger", "vault"}; !reflect.DeepEqual(v.Terms, want) {
			t.Errorf("expected %v, got %v", want, v.Terms)
		}
	})

	t.Run("bad version", func(t *testing.T) {
		if _, err := LoadVocabulary(write("v2.toml", "version = 2\n")); err == nil {
			t.Error("expected error for unsupported version")
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		if _, err := LoadVocabulary(write("bad.toml", "terms = [\n")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadVocabulary(filepath.Join(dir, "none.toml")); err == nil {
			t.Error("expected read error")
		}
	})
}
