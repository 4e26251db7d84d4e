package graph

import "sort"

// Common edge kinds produced by edge sources.
const (
	KindImport    = "import"
	KindReference = "reference"
	KindCall      = "call"
	KindExtends   = "extends"
)

// NewEdge creates an edge without an explicit weight.
func NewEdge(source, target, kind string) Edge {
	return Edge{Source: source, Target: target, Type: kind}
}

// NewWeightedEdge creates an edge with an explicit weight.
func NewWeightedEdge(source, target, kind string, weight float64) Edge {
	w := weight
	return Edge{Source: source, Target: target, Type: kind, Weight: &w}
}

// Merge concatenates edge lists, dropping exact duplicates (same source,
// target and type). The first occurrence wins.
func Merge(lists ...[]Edge) []Edge {
	type key struct{ source, target, kind string }
	seen := make(map[key]bool)
	merged := make([]Edge, 0)
	for _, list := range lists {
		for _, e := range list {
			k := key{e.Source, e.Target, e.Type}
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, e)
		}
	}
	return merged
}

// Stats returns statistics about the index.
type Stats struct {
	TotalNodes   int            `json:"totalNodes"`
	TotalEdges   int            `json:"totalEdges"`
	SelfLoops    int            `json:"selfLoops"`
	EdgesByType  map[string]int `json:"edgesByType"`
	EdgeTypes    []string       `json:"edgeTypes"`
	AvgOutDegree float64        `json:"avgOutDegree"`
}

// Stats returns statistics about the index.
func (idx *Index) Stats() Stats {
	stats := Stats{
		TotalNodes:  idx.NumNodes(),
		TotalEdges:  idx.NumEdges(),
		EdgesByType: make(map[string]int),
	}

	for _, e := range idx.edges {
		stats.EdgesByType[e.Type]++
		if e.Source == e.Target {
			stats.SelfLoops++
		}
	}

	stats.EdgeTypes = make([]string, 0, len(stats.EdgesByType))
	for kind := range stats.EdgesByType {
		stats.EdgeTypes = append(stats.EdgeTypes, kind)
	}
	sort.Strings(stats.EdgeTypes)

	if stats.TotalNodes > 0 {
		stats.AvgOutDegree = float64(stats.TotalEdges) / float64(stats.TotalNodes)
	}

	return stats
}
