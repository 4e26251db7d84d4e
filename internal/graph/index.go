// Package graph provides the adjacency index shared by the impact and
// knowledge pipelines.
package graph

import "sort"

// DefaultEdgeWeight is the weight of an edge that carries none.
const DefaultEdgeWeight = 1.0

// Edge represents a directed edge between two node ids.
//
// An edge source -> target means a change to source propagates to target,
// i.e. target depends on source.
type Edge struct {
	Source string   `json:"source" yaml:"source" toml:"source"`
	Target string   `json:"target" yaml:"target" toml:"target"`
	Type   string   `json:"type" yaml:"type" toml:"type"`
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
}

// EffectiveWeight returns the edge weight, defaulting to 1 when absent.
func (e Edge) EffectiveWeight() float64 {
	if e.Weight == nil {
		return DefaultEdgeWeight
	}
	return *e.Weight
}

// Direction selects which adjacency list a walk follows.
type Direction string

const (
	// Forward follows successors (dependents).
	Forward Direction = "forward"
	// Backward follows predecessors (dependencies).
	Backward Direction = "backward"
)

// Index holds bidirectional lookup tables built from a flat edge list.
// It is not mutated after BuildIndex returns.
type Index struct {
	successors   map[string][]string
	predecessors map[string][]string
	edges        []Edge
}

// BuildIndex constructs the successor and predecessor tables in one pass.
// Every id appearing as a source or target gets an entry in both tables.
// Ids are never validated; unknown ids are opaque leaves.
func BuildIndex(edges []Edge) *Index {
	idx := &Index{
		successors:   make(map[string][]string),
		predecessors: make(map[string][]string),
		edges:        make([]Edge, len(edges)),
	}
	copy(idx.edges, edges)

	for _, e := range edges {
		idx.touch(e.Source)
		idx.touch(e.Target)
		idx.successors[e.Source] = append(idx.successors[e.Source], e.Target)
		idx.predecessors[e.Target] = append(idx.predecessors[e.Target], e.Source)
	}

	return idx
}

func (idx *Index) touch(id string) {
	if _, ok := idx.successors[id]; !ok {
		idx.successors[id] = nil
	}
	if _, ok := idx.predecessors[id]; !ok {
		idx.predecessors[id] = nil
	}
}

// Successors returns the targets of edges leaving id.
func (idx *Index) Successors(id string) []string {
	return cloneIDs(idx.successors[id])
}

// Predecessors returns the sources of edges entering id.
func (idx *Index) Predecessors(id string) []string {
	return cloneIDs(idx.predecessors[id])
}

// Neighbors returns successors for Forward and predecessors for Backward.
func (idx *Index) Neighbors(id string, dir Direction) []string {
	if dir == Backward {
		return idx.Predecessors(id)
	}
	return idx.Successors(id)
}

// HasNode reports whether id appears in any edge.
func (idx *Index) HasNode(id string) bool {
	_, ok := idx.successors[id]
	return ok
}

// Nodes returns all node ids in sorted order.
func (idx *Index) Nodes() []string {
	nodes := make([]string, 0, len(idx.successors))
	for id := range idx.successors {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)
	return nodes
}

// NumNodes returns the number of distinct node ids.
func (idx *Index) NumNodes() int {
	return len(idx.successors)
}

// NumEdges returns the number of edges, parallel edges included.
func (idx *Index) NumEdges() int {
	return len(idx.edges)
}

// Edges returns a copy of the edge list in insertion order.
func (idx *Index) Edges() []Edge {
	out := make([]Edge, len(idx.edges))
	copy(out, idx.edges)
	return out
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
