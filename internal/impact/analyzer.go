package impact

import (
	"log/slog"
	"path"
	"sort"

	"repolens/internal/graph"
	"repolens/internal/repotree"
	"repolens/internal/slogutil"
)

// Analyzer runs forward and backward traversals from a changed file and
// scores the combined result. An Analyzer holds configuration only and is
// safe for concurrent use.
type Analyzer struct {
	maxDepth              int
	tree                  *repotree.Node
	criticalPathLimit     int
	criticalPathMinWeight float64
	logger                *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxDepth overrides the hop cap. Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(a *Analyzer) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

// WithTree supplies the file tree used for node metadata and safe files.
func WithTree(root *repotree.Node) Option {
	return func(a *Analyzer) {
		a.tree = root
	}
}

// WithCriticalPathLimit overrides how many critical paths are returned.
func WithCriticalPathLimit(limit int) Option {
	return func(a *Analyzer) {
		if limit > 0 {
			a.criticalPathLimit = limit
		}
	}
}

// WithCriticalPathMinWeight overrides the weight floor for critical paths.
func WithCriticalPathMinWeight(w float64) Option {
	return func(a *Analyzer) {
		if w >= 0 && w <= 1 {
			a.criticalPathMinWeight = w
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an Analyzer with defaults overridden by opts.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxDepth:              MaxTraversalDepth,
		criticalPathLimit:     DefaultCriticalPathLimit,
		criticalPathMinWeight: DefaultCriticalPathMinWeight,
		logger:                slogutil.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Result contains the complete results of an impact analysis
type Result struct {
	Origin        ImpactNode      `json:"origin"`
	Nodes         []ImpactNode    `json:"nodes"`        // Origin, then dependents, then dependencies
	Dependents    []ImpactNode    `json:"dependents"`   // Forward walk without the origin
	Dependencies  []ImpactNode    `json:"dependencies"` // Backward walk without the origin
	Safe          []SafeFile      `json:"safe,omitempty"`
	Metrics       Metrics         `json:"metrics"`
	Risk          RiskAssessment  `json:"risk"`
	CriticalPaths [][]string      `json:"criticalPaths"`
	BlastRadius   BlastRadius     `json:"blastRadius"`
	Limits        *AnalysisLimits `json:"limits"`
}

// Analyze computes the impact of changing origin.
func (a *Analyzer) Analyze(idx *graph.Index, origin string) *Result {
	opts := TraversalOptions{
		MaxDepth: a.maxDepth,
		Resolver: NewTreeResolver(a.tree),
	}

	forward := Traverse(idx, origin, graph.Forward, opts)
	backward := Traverse(idx, origin, graph.Backward, opts)

	result := &Result{
		Origin:       forward[0],
		Nodes:        make([]ImpactNode, 0, len(forward)+len(backward)),
		Dependents:   forward[1:],
		Dependencies: make([]ImpactNode, 0, len(backward)),
	}

	result.Nodes = append(result.Nodes, forward...)
	for _, n := range backward {
		if n.ID == origin {
			continue
		}
		result.Dependencies = append(result.Dependencies, n)
		result.Nodes = append(result.Nodes, n)
	}

	affected := result.Nodes[1:]
	result.Metrics = ComputeMetrics(affected)
	result.Risk = CalculateChangeRiskScore(result.Metrics)
	result.CriticalPaths = CriticalPaths(affected, a.criticalPathLimit, a.criticalPathMinWeight)
	result.BlastRadius = computeBlastRadius(affected)
	result.Limits = detectLimits(idx != nil && idx.HasNode(origin), result.Nodes, a.maxDepth)

	if a.tree != nil {
		result.Safe = safeFiles(a.tree, result.Nodes)
	}

	a.logger.Debug("Impact analysis completed",
		"origin", origin,
		"dependents", len(result.Dependents),
		"dependencies", len(result.Dependencies),
		"score", result.Risk.Score,
		"level", string(result.Risk.Level),
	)

	return result
}

// safeFiles lists every tree file absent from nodes, sorted by path.
func safeFiles(root *repotree.Node, nodes []ImpactNode) []SafeFile {
	reached := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		reached[n.ID] = true
	}

	safe := make([]SafeFile, 0)
	for _, f := range repotree.Files(root) {
		if reached[f.Path] {
			continue
		}
		safe = append(safe, SafeFile{
			Path:        f.Path,
			Name:        f.Name,
			Type:        f.Kind,
			ImpactLevel: ImpactSafe,
		})
	}
	return safe
}

// computeBlastRadius counts distinct affected files, their directories and
// their kinds.
func computeBlastRadius(nodes []ImpactNode) BlastRadius {
	files := make(map[string]bool)
	dirs := make(map[string]bool)
	byKind := make(map[repotree.FileKind]int)

	for _, n := range nodes {
		if files[n.ID] {
			continue
		}
		files[n.ID] = true
		byKind[n.Type]++
		dirs[path.Dir(n.Path)] = true
	}

	directories := make([]string, 0, len(dirs))
	for d := range dirs {
		directories = append(directories, d)
	}
	sort.Strings(directories)

	return BlastRadius{
		FileCount:      len(files),
		DirectoryCount: len(directories),
		Directories:    directories,
		ByKind:         byKind,
	}
}
