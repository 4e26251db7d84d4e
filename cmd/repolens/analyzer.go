package main

import (
	"repolens/internal/impact"
	"repolens/internal/snapshot"
)

// analyzer builds an impact analyzer from the configuration. depth > 0
// overrides the configured maximum depth.
func (e *runtimeEnv) analyzer(depth int, snap *snapshot.Snapshot) *impact.Analyzer {
	if depth <= 0 {
		depth = e.cfg.Analysis.MaxDepth
	}
	return impact.NewAnalyzer(
		impact.WithMaxDepth(depth),
		impact.WithTree(snap.Tree),
		impact.WithCriticalPathLimit(e.cfg.Analysis.CriticalPathLimit),
		impact.WithCriticalPathMinWeight(e.cfg.Analysis.CriticalPathMinWeight),
		impact.WithLogger(e.logger),
	)
}
