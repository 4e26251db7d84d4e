// Package impact computes the blast radius and risk of changing a file.
//
// The analyzer walks an adjacency index breadth-first from the changed file in
// both directions:
//
//   - forward (successors): dependents, the files that may break
//   - backward (predecessors): dependencies, the files the origin relies on
//
// Basic usage:
//
//	idx := graph.BuildIndex(edges)
//	analyzer := impact.NewAnalyzer(impact.WithTree(tree))
//	result := analyzer.Analyze(idx, "src/hooks/useAuth.ts")
//	fmt.Println(result.Risk.Level, result.Risk.Score)
//
// Traversal:
//
// Every reached node records its hop distance, a weight decayed linearly by
// 0.2 per hop (floored at zero) and the first BFS path that reached it. Walks
// stop after 10 hops. Distance maps to an impact level:
//
//   - 0-1: direct (the origin itself is direct at distance 0)
//   - 2-3: indirect
//   - 4+:  potential
//
// Files in the tree that neither walk reaches are reported as safe.
//
// Risk Scoring:
//
// ComputeMetrics counts reached nodes per level (origin excluded, each id once
// at its smallest distance) and CalculateChangeRiskScore reduces them to a
// 0-100 score:
//
//	score = direct*10 + indirect*3 + potential
//	      + maxChain*2          (only when maxChain > 5)
//
// clamped to [0,100] and mapped to levels:
//   - Low: 0 - 24
//   - Medium: 25 - 49
//   - High: 50 - 74
//   - Critical: 75 - 100
//
// CriticalPaths surfaces the longest dependency paths among nodes whose weight
// is above 0.7.
package impact
