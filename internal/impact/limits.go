package impact

import "fmt"

// AnalysisLimits describes what the analysis could not see.
type AnalysisLimits struct {
	DepthCapped bool     `json:"depthCapped"` // some walk reached the hop cap
	Notes       []string `json:"notes"`
}

// NewAnalysisLimits creates an empty AnalysisLimits.
func NewAnalysisLimits() *AnalysisLimits {
	return &AnalysisLimits{
		Notes: make([]string, 0),
	}
}

// AddNote adds a limitation note to the analysis
func (al *AnalysisLimits) AddNote(note string) {
	al.Notes = append(al.Notes, note)
}

// HasLimitations returns true if there are any limitations
func (al *AnalysisLimits) HasLimitations() bool {
	return al.DepthCapped || len(al.Notes) > 0
}

// detectLimits records notes about an origin missing from the graph and
// walks that ran into the depth cap.
func detectLimits(originKnown bool, nodes []ImpactNode, maxDepth int) *AnalysisLimits {
	limits := NewAnalysisLimits()
	if !originKnown {
		limits.AddNote("Origin does not appear in the dependency edge list")
	}
	for _, n := range nodes {
		if n.Distance >= maxDepth {
			limits.DepthCapped = true
			limits.AddNote(fmt.Sprintf("Traversal stopped at the %d-hop cap; deeper nodes are not reported", maxDepth))
			break
		}
	}
	return limits
}
