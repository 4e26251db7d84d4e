package impact

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"repolens/internal/graph"
)

func chain(n int) []graph.Edge {
	edges := make([]graph.Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, graph.NewEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1), graph.KindImport))
	}
	return edges
}

func byID(nodes []ImpactNode) map[string]ImpactNode {
	m := make(map[string]ImpactNode, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}

func TestTraverseForwardChain(t *testing.T) {
	idx := graph.BuildIndex(chain(5))

	nodes := Traverse(idx, "n0", graph.Forward, TraversalOptions{})
	if len(nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(nodes))
	}

	for i, n := range nodes {
		if n.Distance != i {
			t.Errorf("node %s: expected distance %d, got %d", n.ID, i, n.Distance)
		}
		if len(n.DependencyPath)-1 != n.Distance {
			t.Errorf("node %s: path %v inconsistent with distance %d", n.ID, n.DependencyPath, n.Distance)
		}
		if n.DependencyPath[0] != "n0" || n.DependencyPath[len(n.DependencyPath)-1] != n.ID {
			t.Errorf("node %s: path %v must run from origin to node", n.ID, n.DependencyPath)
		}
		if n.Direction != graph.Forward {
			t.Errorf("node %s: expected forward direction", n.ID)
		}
	}

	levels := []ImpactLevel{ImpactDirect, ImpactDirect, ImpactIndirect, ImpactIndirect, ImpactPotential, ImpactPotential}
	for i, n := range nodes {
		if n.ImpactLevel != levels[i] {
			t.Errorf("node %s: expected %s, got %s", n.ID, levels[i], n.ImpactLevel)
		}
	}
}

func TestTraverseWeightFormula(t *testing.T) {
	idx := graph.BuildIndex(chain(8))

	nodes := Traverse(idx, "n0", graph.Forward, TraversalOptions{})
	prev := 2.0
	for _, n := range nodes {
		want := math.Max(0, 1-0.2*float64(n.Distance))
		if math.Abs(n.Weight-want) > 1e-12 {
			t.Errorf("node %s: expected weight %v, got %v", n.ID, want, n.Weight)
		}
		if n.Weight > prev {
			t.Errorf("weight increased at %s", n.ID)
		}
		prev = n.Weight
	}
}

func TestTraverseBackward(t *testing.T) {
	idx := graph.BuildIndex(chain(3))

	nodes := Traverse(idx, "n3", graph.Backward, TraversalOptions{})
	got := make([]string, 0, len(nodes))
	for _, n := range nodes {
		got = append(got, n.ID)
	}
	if !reflect.DeepEqual(got, []string{"n3", "n2", "n1", "n0"}) {
		t.Errorf("unexpected backward order: %v", got)
	}
	if nodes[3].Direction != graph.Backward {
		t.Error("expected backward direction")
	}
}

func TestTraverseCycleTerminates(t *testing.T) {
	idx := graph.BuildIndex([]graph.Edge{
		graph.NewEdge("A", "B", graph.KindImport),
		graph.NewEdge("B", "A", graph.KindImport),
	})

	for _, dir := range []graph.Direction{graph.Forward, graph.Backward} {
		nodes := Traverse(idx, "A", dir, TraversalOptions{})
		if len(nodes) != 2 {
			t.Fatalf("%s: expected A and B once each, got %v", dir, nodes)
		}
		counts := make(map[string]int)
		for _, n := range nodes {
			counts[n.ID]++
		}
		if counts["A"] != 1 || counts["B"] != 1 {
			t.Errorf("%s: expected each node once, got %v", dir, counts)
		}
	}
}

func TestTraverseSelfLoop(t *testing.T) {
	idx := graph.BuildIndex([]graph.Edge{graph.NewEdge("A", "A", graph.KindImport)})

	nodes := Traverse(idx, "A", graph.Forward, TraversalOptions{})
	if len(nodes) != 1 || nodes[0].Distance != 0 {
		t.Errorf("expected singleton origin, got %v", nodes)
	}
}

func TestTraverseShortestPathWins(t *testing.T) {
	// A -> B -> C -> D and A -> D
	idx := graph.BuildIndex([]graph.Edge{
		graph.NewEdge("A", "B", graph.KindImport),
		graph.NewEdge("B", "C", graph.KindImport),
		graph.NewEdge("C", "D", graph.KindImport),
		graph.NewEdge("A", "D", graph.KindImport),
	})

	d := byID(Traverse(idx, "A", graph.Forward, TraversalOptions{}))["D"]
	if d.Distance != 1 || !reflect.DeepEqual(d.DependencyPath, []string{"A", "D"}) {
		t.Errorf("expected direct path to D, got distance %d path %v", d.Distance, d.DependencyPath)
	}
}

func TestTraverseDepthCap(t *testing.T) {
	idx := graph.BuildIndex(chain(15))

	nodes := Traverse(idx, "n0", graph.Forward, TraversalOptions{})
	if len(nodes) != MaxTraversalDepth+1 {
		t.Fatalf("expected %d nodes under the default cap, got %d", MaxTraversalDepth+1, len(nodes))
	}
	if last := nodes[len(nodes)-1]; last.Distance != MaxTraversalDepth {
		t.Errorf("expected deepest node at distance %d, got %d", MaxTraversalDepth, last.Distance)
	}

	capped := Traverse(idx, "n0", graph.Forward, TraversalOptions{MaxDepth: 2})
	if len(capped) != 3 {
		t.Errorf("expected 3 nodes with MaxDepth 2, got %d", len(capped))
	}
}

func TestTraverseUnknownOrigin(t *testing.T) {
	idx := graph.BuildIndex(chain(2))

	nodes := Traverse(idx, "missing.ts", graph.Forward, TraversalOptions{})
	if len(nodes) != 1 {
		t.Fatalf("expected singleton result, got %v", nodes)
	}
	origin := nodes[0]
	if origin.Distance != 0 || origin.ImpactLevel != ImpactDirect || origin.Weight != 1 {
		t.Errorf("unexpected origin entry: %+v", origin)
	}
	if origin.Name != "missing.ts" {
		t.Errorf("expected name derived from id, got %q", origin.Name)
	}
}

func TestTraverseNilIndex(t *testing.T) {
	nodes := Traverse(nil, "a", graph.Forward, TraversalOptions{})
	if len(nodes) != 1 || nodes[0].ID != "a" {
		t.Errorf("expected singleton origin, got %v", nodes)
	}
}

func TestTraversePathsAreIndependent(t *testing.T) {
	// Fan-out from one parent must not share backing arrays.
	idx := graph.BuildIndex([]graph.Edge{
		graph.NewEdge("A", "B", graph.KindImport),
		graph.NewEdge("B", "C", graph.KindImport),
		graph.NewEdge("B", "D", graph.KindImport),
		graph.NewEdge("B", "E", graph.KindImport),
	})

	nodes := byID(Traverse(idx, "A", graph.Forward, TraversalOptions{}))
	for _, id := range []string{"C", "D", "E"} {
		want := []string{"A", "B", id}
		if !reflect.DeepEqual(nodes[id].DependencyPath, want) {
			t.Errorf("path to %s = %v, want %v", id, nodes[id].DependencyPath, want)
		}
	}
}

func TestDependentsAndDependencies(t *testing.T) {
	idx := graph.BuildIndex([]graph.Edge{
		graph.NewEdge("lib.ts", "app.ts", graph.KindImport),
		graph.NewEdge("app.ts", "main.ts", graph.KindImport),
	})

	dependents := Dependents(idx, "app.ts", TraversalOptions{})
	if len(dependents) != 2 || dependents[1].ID != "main.ts" {
		t.Errorf("unexpected dependents: %v", dependents)
	}
	dependencies := Dependencies(idx, "app.ts", TraversalOptions{})
	if len(dependencies) != 2 || dependencies[1].ID != "lib.ts" {
		t.Errorf("unexpected dependencies: %v", dependencies)
	}
}
