package impact

import (
	"repolens/internal/graph"
	"repolens/internal/repotree"
)

// ImpactLevel is the discrete classification of how strongly a node is
// affected by a change, derived from hop distance.
type ImpactLevel string

const (
	ImpactDirect    ImpactLevel = "direct"
	ImpactIndirect  ImpactLevel = "indirect"
	ImpactPotential ImpactLevel = "potential"
	ImpactSafe      ImpactLevel = "safe"
)

// ImpactNode is a single node reached by a traversal.
type ImpactNode struct {
	ID             string            `json:"id"`
	Path           string            `json:"path"`
	Name           string            `json:"name"`
	Type           repotree.FileKind `json:"type"`
	ImpactLevel    ImpactLevel       `json:"impactLevel"`
	Distance       int               `json:"distance"`
	Weight         float64           `json:"weight"`
	DependencyPath []string          `json:"dependencyPath"`
	Direction      graph.Direction   `json:"direction"`
}

// SafeFile is a tree file that no traversal reached.
type SafeFile struct {
	Path        string            `json:"path"`
	Name        string            `json:"name"`
	Type        repotree.FileKind `json:"type"`
	ImpactLevel ImpactLevel       `json:"impactLevel"`
}

// Metrics summarizes a set of impact nodes.
type Metrics struct {
	DirectImpact    int `json:"directImpact"`
	IndirectImpact  int `json:"indirectImpact"`
	PotentialImpact int `json:"potentialImpact"`
	TotalImpact     int `json:"totalImpact"`
	MaxChainLength  int `json:"maxChainLength"`
}

// BlastRadius summarizes where the impacted files live.
type BlastRadius struct {
	FileCount      int                       `json:"fileCount"`
	DirectoryCount int                       `json:"directoryCount"`
	Directories    []string                  `json:"directories"`
	ByKind         map[repotree.FileKind]int `json:"byKind"`
}
