package repotree

import (
	"reflect"
	"testing"
)

func sampleTree() *Node {
	return FromPaths([]string{
		"src/components/Button.tsx",
		"src/hooks/useAuth.ts",
		"src/pages/api/users.ts",
		"src/utils/format.ts",
		"README.md",
	})
}

func TestFromPathsAndFiles(t *testing.T) {
	root := sampleTree()

	files := Files(root)
	want := []string{
		"README.md",
		"src/components/Button.tsx",
		"src/hooks/useAuth.ts",
		"src/pages/api/users.ts",
		"src/utils/format.ts",
	}
	if len(files) != len(want) {
		t.Fatalf("Expected %d files, got %d", len(want), len(files))
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, f.Path, want[i])
		}
	}

	src := Find(root, "src")
	if src == nil || !src.IsDir() {
		t.Fatalf("Expected src directory, got %+v", src)
	}
	if Find(root, "src/hooks/useAuth.ts") == nil {
		t.Error("Expected to find useAuth.ts")
	}
	if Find(root, "src/missing.ts") != nil {
		t.Error("Expected nil for missing path")
	}
}

func TestFromPathsDeduplicates(t *testing.T) {
	root := FromPaths([]string{"a/b.ts", "a/b.ts", "/a/c.ts"})
	if got := len(Files(root)); got != 2 {
		t.Errorf("Expected 2 files, got %d", got)
	}
}

func TestLookup(t *testing.T) {
	lookup := Lookup(sampleTree())

	f, ok := lookup["src/hooks/useAuth.ts"]
	if !ok {
		t.Fatal("Expected useAuth.ts in lookup")
	}
	if f.Name != "useAuth.ts" || f.Kind != KindHook {
		t.Errorf("Unexpected file entry: %+v", f)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path string
		want FileKind
	}{
		{"src/components/Button.tsx", KindComponent},
		{"src/hooks/useAuth.ts", KindHook},
		{"src/pages/api/users.ts", KindAPI},
		{"src/pages/index.tsx", KindPage},
		{"app/dashboard/page.tsx", KindPage},
		{"src/utils/format.ts", KindUtil},
		{"src/lib/client.js", KindUtil},
		{"src/Button.test.tsx", KindTest},
		{"pkg/graph/index_test.go", KindTest},
		{"src/styles/main.scss", KindStyle},
		{"package.json", KindConfig},
		{"next.config.js", KindConfig},
		{".eslintrc", KindConfig},
		{"src/types/user.ts", KindType},
		{"src/global.d.ts", KindType},
		{"README.md", KindDocument},
		{"cmd/server/main.go", KindModule},
		{"assets/logo.png", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectKind(tt.path); got != tt.want {
				t.Errorf("DetectKind(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestAncestors(t *testing.T) {
	got := Ancestors("/src/components/Button.tsx")
	want := []string{"src", "src/components"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors = %v, want %v", got, want)
	}
	if got := Ancestors("README.md"); len(got) != 0 {
		t.Errorf("Expected no ancestors, got %v", got)
	}
}

func TestExpandToDoesNotMutateInput(t *testing.T) {
	initial := map[string]bool{"docs": true}

	next := ExpandTo(initial, "src/components/Button.tsx")

	if len(initial) != 1 {
		t.Errorf("Input set was mutated: %v", initial)
	}
	for _, dir := range []string{"docs", "src", "src/components"} {
		if !next[dir] {
			t.Errorf("Expected %s to be expanded", dir)
		}
	}
	if next["src/components/Button.tsx"] {
		t.Error("File itself should not be marked expanded")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	root := sampleTree()
	visited := 0
	Walk(root, func(n *Node) bool {
		visited++
		return n.Path == ""
	})
	// root plus its two direct children
	if visited != 3 {
		t.Errorf("Expected 3 visited nodes, got %d", visited)
	}
}

func TestNilTree(t *testing.T) {
	if len(Files(nil)) != 0 {
		t.Error("Expected no files for nil tree")
	}
	if Find(nil, "a") != nil {
		t.Error("Expected nil for nil tree")
	}
}
