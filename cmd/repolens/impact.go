package main

import (
	"time"

	"github.com/spf13/cobra"

	"repolens/internal/impact"
)

type impactOptions struct {
	analysisFlags
	depth       int
	includeSafe bool
}

// ImpactResponseCLI contains impact analysis results for CLI output
type ImpactResponseCLI struct {
	Snapshot string         `json:"snapshot"`
	Summary  string         `json:"summary"`
	Result   *impact.Result `json:"result"`
}

func newImpactCmd(root *rootOptions) *cobra.Command {
	opts := &impactOptions{}

	cmd := &cobra.Command{
		Use:   "impact <path>",
		Short: "Analyze the blast radius of changing a file",
		Long: `Analyze the impact of changing a file.

Walks the dependency edges from the file in both directions:
  - Dependents (files that may break), classified by hop distance
  - Dependencies (files the changed file relies on)
  - Risk score (0-100) with contributing factors
  - Critical paths: the longest high-confidence dependency chains

Examples:
  repolens impact src/hooks/useAuth.ts --snapshot repo.json
  repolens impact src/api/client.ts --snapshot repo.yaml.zst --depth 4
  repolens impact src/utils/date.ts --snapshot repo.json --include-safe --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImpact(cmd, root, opts, args[0])
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "Maximum traversal depth (default from config)")
	cmd.Flags().BoolVar(&opts.includeSafe, "include-safe", false, "List files the change cannot reach")
	return cmd
}

func runImpact(cmd *cobra.Command, root *rootOptions, opts *impactOptions, origin string) error {
	start := time.Now()
	env, err := root.setup(cmd)
	if err != nil {
		return err
	}

	snap, err := env.loadSnapshot(&opts.analysisFlags)
	if err != nil {
		return err
	}

	result := env.analyzer(opts.depth, snap).Analyze(snap.Index(), origin)
	if !opts.includeSafe {
		result.Safe = nil
	}

	env.logger.Debug("Impact analysis completed",
		"origin", origin,
		"score", result.Risk.Score,
		"duration", time.Since(start).Milliseconds(),
	)

	return write(cmd, &ImpactResponseCLI{
		Snapshot: snap.Name,
		Summary:  impact.Summarize(result),
		Result:   result,
	}, opts.format)
}
