package impact_test

import (
	"fmt"

	"repolens/internal/graph"
	"repolens/internal/impact"
)

// ExampleAnalyzer demonstrates basic usage of the impact analyzer
func ExampleAnalyzer() {
	// An edge source -> target means target depends on source.
	idx := graph.BuildIndex([]graph.Edge{
		graph.NewEdge("src/api/client.ts", "src/hooks/useUser.ts", graph.KindImport),
		graph.NewEdge("src/hooks/useUser.ts", "src/components/Profile.tsx", graph.KindImport),
		graph.NewEdge("src/components/Profile.tsx", "src/pages/account.tsx", graph.KindImport),
	})

	result := impact.NewAnalyzer().Analyze(idx, "src/api/client.ts")

	for _, n := range result.Dependents {
		fmt.Printf("%s %s distance=%d weight=%.1f\n", n.ImpactLevel, n.ID, n.Distance, n.Weight)
	}
	fmt.Printf("risk=%s score=%d\n", result.Risk.Level, result.Risk.Score)
	fmt.Println(result.Risk.Factors[0])

	// Output:
	// direct src/hooks/useUser.ts distance=1 weight=0.8
	// indirect src/components/Profile.tsx distance=2 weight=0.6
	// indirect src/pages/account.tsx distance=3 weight=0.4
	// risk=low score=16
	// Limited impact on other components
}

// ExampleCalculateChangeRiskScore shows the fixed scoring formula.
func ExampleCalculateChangeRiskScore() {
	risk := impact.CalculateChangeRiskScore(impact.Metrics{
		DirectImpact:   6,
		TotalImpact:    6,
		MaxChainLength: 1,
	})

	fmt.Println(risk.Score, risk.Level, risk.Factors)

	// Output:
	// 60 high [High direct impact (6 files)]
}
