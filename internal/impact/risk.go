package impact

import (
	"fmt"
	"sort"
)

// RiskLevel represents the risk level of a change
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment is the scored outcome of a change.
type RiskAssessment struct {
	Score   int       `json:"score"`   // 0-100
	Level   RiskLevel `json:"level"`   // Derived from Score
	Factors []string  `json:"factors"` // Contributing factors, in evaluation order
}

const (
	// DefaultCriticalPathLimit is how many critical paths are surfaced.
	DefaultCriticalPathLimit = 3

	// DefaultCriticalPathMinWeight is the exclusive weight floor for
	// critical path candidates.
	DefaultCriticalPathMinWeight = 0.7
)

// ComputeMetrics counts nodes per impact level and finds the deepest chain.
// The origin (distance 0) is not counted, and an id reached in both
// directions counts once at its smallest distance.
func ComputeMetrics(nodes []ImpactNode) Metrics {
	best := make(map[string]int)
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Distance == 0 {
			continue
		}
		d, ok := best[n.ID]
		if !ok {
			order = append(order, n.ID)
			best[n.ID] = n.Distance
		} else if n.Distance < d {
			best[n.ID] = n.Distance
		}
	}

	var m Metrics
	for _, id := range order {
		d := best[id]
		switch ClassifyDistance(d) {
		case ImpactDirect:
			m.DirectImpact++
		case ImpactIndirect:
			m.IndirectImpact++
		case ImpactPotential:
			m.PotentialImpact++
		}
		m.TotalImpact++
		if d > m.MaxChainLength {
			m.MaxChainLength = d
		}
	}
	return m
}

// CalculateChangeRiskScore reduces metrics to a score, level and factors.
// It is a pure function of m.
func CalculateChangeRiskScore(m Metrics) RiskAssessment {
	score := m.DirectImpact*10 + m.IndirectImpact*3 + m.PotentialImpact
	if m.MaxChainLength > 5 {
		score += m.MaxChainLength * 2
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := determineRiskLevel(score)

	factors := make([]string, 0)
	if m.DirectImpact > 5 {
		factors = append(factors, fmt.Sprintf("High direct impact (%d files)", m.DirectImpact))
	}
	if m.IndirectImpact > 10 {
		factors = append(factors, fmt.Sprintf("Significant indirect impact (%d files)", m.IndirectImpact))
	}
	if m.MaxChainLength > 5 {
		factors = append(factors, fmt.Sprintf("Deep dependency chain (%d levels)", m.MaxChainLength))
	}
	if len(factors) == 0 {
		if level == RiskLow {
			factors = append(factors, "Limited impact on other components")
		} else {
			factors = append(factors, fmt.Sprintf("Affects %d components in total", m.TotalImpact))
		}
	}

	return RiskAssessment{
		Score:   score,
		Level:   level,
		Factors: factors,
	}
}

// determineRiskLevel converts numeric score to risk level
func determineRiskLevel(score int) RiskLevel {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskMedium
	case score < 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// CriticalPaths returns up to limit of the longest dependency paths among
// nodes whose weight exceeds minWeight, longest first. Ties keep input order.
func CriticalPaths(nodes []ImpactNode, limit int, minWeight float64) [][]string {
	if limit <= 0 {
		return [][]string{}
	}

	candidates := make([][]string, 0)
	for _, n := range nodes {
		if n.Weight <= minWeight {
			continue
		}
		path := make([]string, len(n.DependencyPath))
		copy(path, n.DependencyPath)
		candidates = append(candidates, path)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// Summarize creates a one-line explanation of an analysis result.
func Summarize(r *Result) string {
	if r == nil {
		return ""
	}
	m := r.Metrics
	switch r.Risk.Level {
	case RiskCritical:
		return fmt.Sprintf("Critical risk: changing %s affects %d file(s) (%d direct, %d indirect, %d potential). Split the change if possible.",
			r.Origin.ID, m.TotalImpact, m.DirectImpact, m.IndirectImpact, m.PotentialImpact)
	case RiskHigh:
		return fmt.Sprintf("High risk: changing %s affects %d file(s) (%d direct, %d indirect, %d potential). Changes may break multiple components.",
			r.Origin.ID, m.TotalImpact, m.DirectImpact, m.IndirectImpact, m.PotentialImpact)
	case RiskMedium:
		return fmt.Sprintf("Medium risk: changing %s affects %d file(s) (%d direct, %d indirect, %d potential). Changes require careful testing.",
			r.Origin.ID, m.TotalImpact, m.DirectImpact, m.IndirectImpact, m.PotentialImpact)
	default:
		return fmt.Sprintf("Low risk: changing %s affects %d file(s). Changes have limited impact.",
			r.Origin.ID, m.TotalImpact)
	}
}
