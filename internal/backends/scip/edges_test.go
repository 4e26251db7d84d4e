package scip

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"repolens/internal/errors"
	"repolens/internal/graph"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

const (
	symUseAuth = "scip-typescript npm app 1.0.0 src/hooks/`useAuth.ts`/useAuth()."
	symButton  = "scip-typescript npm app 1.0.0 src/components/`Button.tsx`/Button()."
)

func testIndex() *scippb.Index {
	return &scippb.Index{
		Metadata: &scippb.Metadata{
			ProjectRoot: "file:///repo",
			ToolInfo: &scippb.ToolInfo{
				Name:      "scip-typescript",
				Version:   "0.3.14",
				Arguments: []string{"index", "--commit=abc1234def"},
			},
		},
		Documents: []*scippb.Document{
			{
				RelativePath: "src/hooks/useAuth.ts",
				Language:     "typescript",
				Occurrences: []*scippb.Occurrence{
					{Range: []int32{0, 16, 23}, Symbol: symUseAuth, SymbolRoles: int32(scippb.SymbolRole_Definition)},
					{Range: []int32{2, 4, 9}, Symbol: "local 0", SymbolRoles: int32(scippb.SymbolRole_Definition)},
				},
			},
			{
				RelativePath: "src/components/Button.tsx",
				Language:     "typescriptreact",
				Occurrences: []*scippb.Occurrence{
					{Range: []int32{0, 16, 22}, Symbol: symButton, SymbolRoles: int32(scippb.SymbolRole_Definition)},
				},
			},
			{
				RelativePath: "src/pages/Login.tsx",
				Language:     "typescriptreact",
				Occurrences: []*scippb.Occurrence{
					{Range: []int32{0, 9, 16}, Symbol: symUseAuth, SymbolRoles: int32(scippb.SymbolRole_Import)},
					{Range: []int32{4, 2, 9}, Symbol: symUseAuth},
					{Range: []int32{5, 2, 9}, Symbol: symUseAuth},
					{Range: []int32{8, 3, 9}, Symbol: symButton},
					{Range: []int32{9, 3, 9}, Symbol: "local 0"},
				},
			},
			{
				RelativePath: "src/components/Button.stories.tsx",
				Occurrences: []*scippb.Occurrence{
					{Range: []int32{1, 0, 6}, Symbol: symButton},
				},
			},
		},
	}
}

func writeIndex(t *testing.T, index *scippb.Index) string {
	t.Helper()
	data, err := proto.Marshal(index)
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(t.TempDir(), "index.scip")
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSCIPIndex(t *testing.T) {
	idx, err := LoadSCIPIndex(writeIndex(t, testIndex()))
	if err != nil {
		t.Fatalf("LoadSCIPIndex() error = %v", err)
	}

	if len(idx.Documents) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(idx.Documents))
	}
	if idx.IndexedCommit != "abc1234def" {
		t.Errorf("IndexedCommit = %q", idx.IndexedCommit)
	}
	doc := idx.GetDocument("src/pages/Login.tsx")
	if doc == nil || len(doc.Occurrences) != 5 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if !doc.Occurrences[0].IsImport() || doc.Occurrences[1].Line != 4 {
		t.Errorf("occurrence conversion lost data: %+v", doc.Occurrences[:2])
	}
	if idx.GetDocument("missing.ts") != nil {
		t.Error("expected nil for unknown document")
	}
}

func TestFileEdges(t *testing.T) {
	idx, err := LoadSCIPIndex(writeIndex(t, testIndex()))
	if err != nil {
		t.Fatal(err)
	}

	got := FileEdges(idx)
	want := []graph.Edge{
		graph.NewEdge("src/components/Button.tsx", "src/components/Button.stories.tsx", graph.KindReference),
		graph.NewEdge("src/components/Button.tsx", "src/pages/Login.tsx", graph.KindReference),
		graph.NewEdge("src/hooks/useAuth.ts", "src/pages/Login.tsx", graph.KindImport),
		graph.NewEdge("src/hooks/useAuth.ts", "src/pages/Login.tsx", graph.KindReference),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FileEdges() =\n%+v\nwant\n%+v", got, want)
	}

	if FileEdges(nil) != nil {
		t.Error("expected nil edges for nil index")
	}
}

func TestLoadSCIPIndexErrors(t *testing.T) {
	_, err := LoadSCIPIndex(filepath.Join(t.TempDir(), "none.scip"))
	if !errors.HasCode(err, errors.IndexMissing) {
		t.Errorf("expected INDEX_MISSING, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.scip")
	if err := os.WriteFile(bad, []byte{0xff, 0xff, 0xff}, 0644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadSCIPIndex(bad)
	if !errors.HasCode(err, errors.IndexInvalid) {
		t.Errorf("expected INDEX_INVALID, got %v", err)
	}
}

func TestExtractCommitFromToolInfo(t *testing.T) {
	tests := []struct {
		name string
		info ToolInfo
		want string
	}{
		{"commit flag", ToolInfo{Arguments: []string{"--commit=deadbeef"}}, "deadbeef"},
		{"git commit flag", ToolInfo{Arguments: []string{"--git-commit=cafe123"}}, "cafe123"},
		{"short flag", ToolInfo{Arguments: []string{"-c", "f00ba47"}}, "f00ba47"},
		{"hash version", ToolInfo{Version: "0123456789abcdef"}, "0123456789abcdef"},
		{"semver version", ToolInfo{Version: "0.3.14"}, ""},
		{"nothing", ToolInfo{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCommitFromToolInfo(&tt.info); got != tt.want {
				t.Errorf("extractCommitFromToolInfo() = %q, want %q", got, tt.want)
			}
		})
	}
}
