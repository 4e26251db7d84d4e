package knowledge

import (
	"sort"
	"strings"

	"repolens/internal/concepts"
)

// RankedConcept is a node with its centrality score.
type RankedConcept struct {
	ConceptNode
	Score float64 `json:"score"`
}

// Related holds the neighbors of a concept, one and two hops away.
type Related struct {
	Direct   []ConceptNode `json:"direct"`
	Indirect []ConceptNode `json:"indirect"`
}

// CategoryGroup is the set of nodes sharing a category.
type CategoryGroup struct {
	Category string        `json:"category"`
	Concepts []ConceptNode `json:"concepts"`
}

// Stats summarizes the graph.
type Stats struct {
	Nodes       int                           `json:"nodes"`
	Edges       int                           `json:"edges"`
	ByType      map[concepts.ConceptType]int  `json:"byType"`
	ByRelation  map[concepts.RelationType]int `json:"byRelation"`
	Categories  int                           `json:"categories"`
	AvgRelated  float64                       `json:"avgRelated"`
	Unconnected int                           `json:"unconnected"`
}

// Centrality scores every node by the summed weight of the edges touching
// it. Nodes without edges score zero.
func (g *Graph) Centrality() map[string]float64 {
	scores := make(map[string]float64, len(g.nodes))
	for _, n := range g.nodes {
		scores[n.ID] = 0
	}
	for _, e := range g.edges {
		scores[e.Source] += e.Weight
		if e.Target != e.Source {
			scores[e.Target] += e.Weight
		}
	}
	return scores
}

// CentralConcepts returns the n highest scoring nodes by weighted degree,
// ties broken by id. n <= 0 returns every node.
func (g *Graph) CentralConcepts(n int) []RankedConcept {
	scores := g.Centrality()
	ranked := make([]RankedConcept, 0, len(g.nodes))
	for _, node := range g.nodes {
		ranked = append(ranked, RankedConcept{ConceptNode: cloneNode(node), Score: scores[node.ID]})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ID < ranked[j].ID
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RelatedConcepts returns the direct neighbors of id and the neighbors of
// those neighbors, excluding id itself and anything already direct. Both
// lists are sorted by weight descending and truncated to limit (limit <= 0
// means no truncation). An unknown id yields empty lists.
func (g *Graph) RelatedConcepts(id string, limit int) Related {
	i, ok := g.index[id]
	if !ok {
		return Related{Direct: []ConceptNode{}, Indirect: []ConceptNode{}}
	}

	direct := make(map[string]bool, len(g.nodes[i].Related))
	for _, r := range g.nodes[i].Related {
		direct[r] = true
	}

	indirect := make(map[string]bool)
	for r := range direct {
		for _, rr := range g.nodes[g.index[r]].Related {
			if rr == id || direct[rr] {
				continue
			}
			indirect[rr] = true
		}
	}

	return Related{
		Direct:   g.rankByWeight(direct, limit),
		Indirect: g.rankByWeight(indirect, limit),
	}
}

func (g *Graph) rankByWeight(ids map[string]bool, limit int) []ConceptNode {
	out := make([]ConceptNode, 0, len(ids))
	for id := range ids {
		out = append(out, cloneNode(g.nodes[g.index[id]]))
	}
	sortByWeight(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByWeight(nodes []ConceptNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Weight != nodes[j].Weight {
			return nodes[i].Weight > nodes[j].Weight
		}
		return nodes[i].ID < nodes[j].ID
	})
}

// Search returns nodes whose label, description, category or any file path
// contains query, ignoring case. Results keep graph order. An empty query
// matches nothing.
func (g *Graph) Search(query string) []ConceptNode {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []ConceptNode
	for _, n := range g.nodes {
		if matchesQuery(n, q) {
			out = append(out, cloneNode(n))
		}
	}
	return out
}

func matchesQuery(n ConceptNode, q string) bool {
	if strings.Contains(strings.ToLower(n.Label), q) ||
		strings.Contains(strings.ToLower(n.Description), q) ||
		strings.Contains(strings.ToLower(n.Category), q) {
		return true
	}
	for _, f := range n.Files {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ConceptsByCategory groups nodes by category. Groups are sorted by name and
// members by weight descending.
func (g *Graph) ConceptsByCategory() []CategoryGroup {
	byCategory := make(map[string][]ConceptNode)
	for _, n := range g.nodes {
		byCategory[n.Category] = append(byCategory[n.Category], cloneNode(n))
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for cat, nodes := range byCategory {
		sortByWeight(nodes)
		groups = append(groups, CategoryGroup{Category: cat, Concepts: nodes})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// Stats computes summary counts for the graph.
func (g *Graph) Stats() Stats {
	s := Stats{
		Nodes:      len(g.nodes),
		Edges:      len(g.edges),
		ByType:     make(map[concepts.ConceptType]int),
		ByRelation: make(map[concepts.RelationType]int),
	}

	categories := make(map[string]bool)
	related := 0
	for _, n := range g.nodes {
		s.ByType[n.Type]++
		categories[n.Category] = true
		related += len(n.Related)
		if len(n.Related) == 0 {
			s.Unconnected++
		}
	}
	for _, e := range g.edges {
		s.ByRelation[e.Type]++
	}

	s.Categories = len(categories)
	if len(g.nodes) > 0 {
		s.AvgRelated = float64(related) / float64(len(g.nodes))
	}
	return s
}
