package main

import (
	"github.com/spf13/cobra"

	"repolens/internal/knowledge"
)

// SearchResponseCLI contains concept search results
type SearchResponseCLI struct {
	Query   string                  `json:"query"`
	Results []knowledge.ConceptNode `json:"results"`
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &analysisFlags{}

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search concepts",
		Long: `Search concepts by label, description, category or file path.
Matching is a case-insensitive substring match.

Examples:
  repolens search auth --snapshot repo.json
  repolens search "api endpoints" --snapshot repo.json --format json`,
		Args: cobra.ExactArgs(1),
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

			results := g.Search(args[0])
			if results == nil {
				results = []knowledge.ConceptNode{}
			}
			return write(cmd, &SearchResponseCLI{Query: args[0], Results: results}, opts.format)
		},
	}

	opts.bind(cmd)
	return cmd
}
