package main

import (
	"github.com/spf13/cobra"

	"repolens/internal/knowledge"
)

// CategoriesResponseCLI groups concepts by category
type CategoriesResponseCLI struct {
	Snapshot   string                    `json:"snapshot"`
	Categories []knowledge.CategoryGroup `json:"categories"`
}

func newCategoriesCmd(root *rootOptions) *cobra.Command {
	opts := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Group concepts by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.setup(cmd)
			if err != nil {
				return err
			}
			snap, err := env.loadSnapshot(opts)
			if err != nil {
				return err
			}
			g, err := env.buildGraph(snap)
			if err != nil {
				return err
			}
			return write(cmd, &CategoriesResponseCLI{
				Snapshot:   snap.Name,
				Categories: g.ConceptsByCategory(),
			}, opts.format)
		},
	}

	opts.bind(cmd)
	return cmd
}
