package impact

import "math"

const (
	// MaxTraversalDepth caps how many hops a traversal follows.
	MaxTraversalDepth = 10

	// DecayRate is the fixed linear weight loss per hop.
	DecayRate = 0.2
)

// ClassifyDistance maps a hop distance to an impact level.
// The origin itself (distance 0) is classified direct.
func ClassifyDistance(distance int) ImpactLevel {
	switch {
	case distance <= 1:
		return ImpactDirect
	case distance <= 3:
		return ImpactIndirect
	default:
		return ImpactPotential
	}
}

// DecayWeight returns max(0, 1 - distance*DecayRate).
func DecayWeight(distance int) float64 {
	return math.Max(0, 1-float64(distance)*DecayRate)
}
