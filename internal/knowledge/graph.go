// Package knowledge builds a queryable graph of concepts and their inferred
// relationships.
//
// A Graph is immutable once built. Every query returns fresh slices, so
// results can be modified by the caller without affecting the graph.
package knowledge

import (
	"fmt"
	"math"
	"sort"

	"repolens/internal/concepts"
)

// filesForFullWeight is the file count at which a concept reaches weight 1.
const filesForFullWeight = 5

// ConceptNode is a concept placed in the knowledge graph.
type ConceptNode struct {
	ID          string               `json:"id"`
	Label       string               `json:"label"`
	Type        concepts.ConceptType `json:"type"`
	Description string               `json:"description"`
	Category    string               `json:"category"`
	Weight      float64              `json:"weight"`
	Files       []string             `json:"files"`
	Related     []string             `json:"related"`
}

// ConceptEdge is a typed, weighted relationship between two concept nodes.
type ConceptEdge struct {
	Source string                `json:"source"`
	Target string                `json:"target"`
	Type   concepts.RelationType `json:"type"`
	Weight float64               `json:"weight"`
}

// Graph is the knowledge graph.
type Graph struct {
	nodes []ConceptNode
	index map[string]int
	edges []ConceptEdge
}

// CategoryFor maps a concept type to its display category.
func CategoryFor(t concepts.ConceptType) string {
	switch t {
	case concepts.TypeComponent:
		return "UI Components"
	case concepts.TypeHook:
		return "Hooks"
	case concepts.TypeAPI:
		return "API Endpoints"
	case concepts.TypeFunction:
		return "Utilities"
	case concepts.TypeClass:
		return "Classes"
	case concepts.TypeType:
		return "Types"
	case concepts.TypeContext:
		return "Contexts"
	case concepts.TypeConcept:
		return "Domain Concepts"
	default:
		return "Other"
	}
}

func describe(c concepts.Concept) string {
	var noun string
	switch c.Type {
	case concepts.TypeComponent:
		noun = "UI component"
	case concepts.TypeHook:
		noun = "Hook"
	case concepts.TypeAPI:
		noun = "API endpoint"
	case concepts.TypeFunction:
		noun = "Utility function"
	case concepts.TypeClass:
		noun = "Class"
	case concepts.TypeType:
		noun = "Type definition"
	case concepts.TypeContext:
		noun = "Shared context"
	case concepts.TypeConcept:
		noun = "Domain concept"
	default:
		noun = "Concept"
	}

	files := "files"
	if len(c.Files) == 1 {
		files = "file"
	}
	return fmt.Sprintf("%s %s, found in %d %s", noun, c.Label, len(c.Files), files)
}

// ConceptWeight grows linearly with the number of files a concept appears
// in, reaching 1 at five files.
func ConceptWeight(fileCount int) float64 {
	if fileCount <= 0 {
		return 0
	}
	return math.Min(1, float64(fileCount)/filesForFullWeight)
}

// Build creates a graph from extracted concepts and inferred relationships.
// A concept id seen twice keeps its first occurrence with the files of both.
// Relationships naming an unknown concept are dropped. Every kept
// relationship is reflected into the related sets of both endpoints.
func Build(cs []concepts.Concept, rels []concepts.Relationship) *Graph {
	g := &Graph{
		nodes: make([]ConceptNode, 0, len(cs)),
		index: make(map[string]int, len(cs)),
	}

	for _, c := range cs {
		if i, ok := g.index[c.ID]; ok {
			n := &g.nodes[i]
			n.Files = unionSorted(n.Files, c.Files)
			n.Weight = ConceptWeight(len(n.Files))
			continue
		}
		files := unionSorted(nil, c.Files)
		c.Files = files
		g.index[c.ID] = len(g.nodes)
		g.nodes = append(g.nodes, ConceptNode{
			ID:          c.ID,
			Label:       c.Label,
			Type:        c.Type,
			Description: describe(c),
			Category:    CategoryFor(c.Type),
			Weight:      ConceptWeight(len(files)),
			Files:       files,
		})
	}

	related := make([]map[string]bool, len(g.nodes))
	for i := range related {
		related[i] = make(map[string]bool)
	}

	for _, r := range rels {
		si, ok := g.index[r.Source]
		if !ok {
			continue
		}
		ti, ok := g.index[r.Target]
		if !ok {
			continue
		}
		g.edges = append(g.edges, ConceptEdge{
			Source: r.Source,
			Target: r.Target,
			Type:   r.Type,
			Weight: math.Max(0, math.Min(1, r.Weight)),
		})
		if si != ti {
			related[si][r.Target] = true
			related[ti][r.Source] = true
		}
	}

	for i := range g.nodes {
		ids := make([]string, 0, len(related[i]))
		for id := range related[i] {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		g.nodes[i].Related = ids
	}

	return g
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Node returns a copy of the node with the given id.
func (g *Graph) Node(id string) (ConceptNode, bool) {
	i, ok := g.index[id]
	if !ok {
		return ConceptNode{}, false
	}
	return cloneNode(g.nodes[i]), true
}

// Nodes returns copies of all nodes in build order.
func (g *Graph) Nodes() []ConceptNode {
	out := make([]ConceptNode, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = cloneNode(n)
	}
	return out
}

// Edges returns a copy of all edges in build order.
func (g *Graph) Edges() []ConceptEdge {
	out := make([]ConceptEdge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NumNodes returns the number of concept nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of relationships.
func (g *Graph) NumEdges() int {
	return len(g.edges)
}

func cloneNode(n ConceptNode) ConceptNode {
	n.Files = append([]string(nil), n.Files...)
	n.Related = append([]string(nil), n.Related...)
	return n
}
