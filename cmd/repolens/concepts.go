package main

import (
	"github.com/spf13/cobra"

	"repolens/internal/knowledge"
)

type conceptsOptions struct {
	analysisFlags
	limit int
}

// ConceptsResponseCLI lists the most central concepts
type ConceptsResponseCLI struct {
	Snapshot string                    `json:"snapshot"`
	Stats    knowledge.Stats           `json:"stats"`
	Concepts []knowledge.RankedConcept `json:"concepts"`
}

func newConceptsCmd(root *rootOptions) *cobra.Command {
	opts := &conceptsOptions{}

	cmd := &cobra.Command{
		Use:   "concepts",
		Short: "List the most central concepts",
		Long: `Extract concepts from the snapshot sources and rank them by weighted-degree
centrality: the summed weight of every relationship touching a concept.

Examples:
  repolens concepts --snapshot repo.json
  repolens concepts --snapshot repo.json --limit 25 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.setup(cmd)
			if err != nil {
				return err
			}
			snap, err := env.loadSnapshot(&opts.analysisFlags)
			if err != nil {
				return err
			}
			g, err := env.buildGraph(snap)
			if err != nil {
				return err
			}

			limit := opts.limit
			if limit <= 0 {
				limit = env.cfg.Knowledge.CentralLimit
			}
			return write(cmd, &ConceptsResponseCLI{
				Snapshot: snap.Name,
				Stats:    g.Stats(),
				Concepts: g.CentralConcepts(limit),
			}, opts.format)
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Number of concepts to show (default from config)")
	return cmd
}
