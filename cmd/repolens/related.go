package main

import (
	"fmt"

	"github.com/spf13/cobra"

	rlerrors "repolens/internal/errors"
	"repolens/internal/knowledge"
)

type relatedOptions struct {
	analysisFlags
	limit int
}

// RelatedResponseCLI lists the neighbors of a concept
type RelatedResponseCLI struct {
	Concept  knowledge.ConceptNode   `json:"concept"`
	Direct   []knowledge.ConceptNode `json:"direct"`
	Indirect []knowledge.ConceptNode `json:"indirect"`
}

func newRelatedCmd(root *rootOptions) *cobra.Command {
	opts := &relatedOptions{}

	cmd := &cobra.Command{
		Use:   "related <conceptId>",
		Short: "Show concepts related to a concept",
		Long: `Show the concepts directly related to a concept and those two
relationships away.

Examples:
  repolens related useAuth --snapshot repo.json
  repolens related Domain:payment --snapshot repo.json --limit 5`,
		Args: cobra.ExactArgs(1),
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

			node, ok := g.Node(args[0])
			if !ok {
				return rlerrors.New(rlerrors.ConceptNotFound, fmt.Sprintf("concept %q not found", args[0]), nil)
			}

			limit := opts.limit
			if limit <= 0 {
				limit = env.cfg.Knowledge.RelatedLimit
			}
			related := g.RelatedConcepts(node.ID, limit)
			return write(cmd, &RelatedResponseCLI{
				Concept:  node,
				Direct:   related.Direct,
				Indirect: related.Indirect,
			}, opts.format)
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum concepts per list (default from config)")
	return cmd
}
