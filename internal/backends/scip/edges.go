package scip

import (
	"sort"
	"strings"

	"repolens/internal/graph"
)

// isLocalSymbol reports whether a symbol is scoped to one document.
func isLocalSymbol(symbol string) bool {
	return symbol == "" || strings.HasPrefix(symbol, "local ")
}

// FileEdges derives file-level dependency edges from the index. For every
// non-local symbol, each document that references it without defining it
// depends on each document that defines it. References made through an
// import occurrence produce "import" edges, all others "reference" edges.
// Edges are unique per (source, target, type) and sorted.
func FileEdges(idx *SCIPIndex) []graph.Edge {
	if idx == nil {
		return nil
	}

	definedIn := make(map[string][]string)
	for _, doc := range idx.Documents {
		seen := make(map[string]bool)
		for _, occ := range doc.Occurrences {
			if !occ.IsDefinition() || isLocalSymbol(occ.Symbol) || seen[occ.Symbol] {
				continue
			}
			seen[occ.Symbol] = true
			definedIn[occ.Symbol] = append(definedIn[occ.Symbol], doc.RelativePath)
		}
	}

	type key struct{ source, target, kind string }
	seen := make(map[key]bool)
	var edges []graph.Edge

	for _, doc := range idx.Documents {
		for _, occ := range doc.Occurrences {
			if occ.IsDefinition() || isLocalSymbol(occ.Symbol) {
				continue
			}
			kind := graph.KindReference
			if occ.IsImport() {
				kind = graph.KindImport
			}
			for _, def := range definedIn[occ.Symbol] {
				if def == doc.RelativePath {
					continue
				}
				k := key{def, doc.RelativePath, kind}
				if seen[k] {
					continue
				}
				seen[k] = true
				edges = append(edges, graph.NewEdge(def, doc.RelativePath, kind))
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		if edges[i].Target != edges[j].Target {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Type < edges[j].Type
	})
	return edges
}

// LoadFileEdges loads the index at path and derives its file edges.
func LoadFileEdges(path string) ([]graph.Edge, error) {
	idx, err := LoadSCIPIndex(path)
	if err != nil {
		return nil, err
	}
	return FileEdges(idx), nil
}
