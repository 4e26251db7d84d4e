package main

import (
	"github.com/spf13/cobra"

	"repolens/internal/export"
)

type exportOptions struct {
	analysisFlags
	db     string
	impact string
	depth  int
}

// ExportResponseCLI describes a finished export
type ExportResponseCLI struct {
	Database    string `json:"database"`
	Created     bool   `json:"created"`
	GraphRun    string `json:"graphRun"`
	ImpactRun   string `json:"impactRun,omitempty"`
	Concepts    int    `json:"concepts"`
	Edges       int    `json:"edges"`
	ImpactNodes int    `json:"impactNodes,omitempty"`
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the knowledge graph to SQLite",
		Long: `Write the knowledge graph of a snapshot to a SQLite database. With
--impact, the impact analysis of that file is exported as well.

Every export is recorded as a new run with its own id.

Examples:
  repolens export --snapshot repo.json
  repolens export --snapshot repo.json --db out/graph.db --impact src/api/client.ts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, opts)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.db, "db", "", "Database path (default from config)")
	cmd.Flags().StringVar(&opts.impact, "impact", "", "Also export the impact analysis of this file")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "Maximum traversal depth for --impact (default from config)")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootOptions, opts *exportOptions) error {
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

	dbPath := opts.db
	if dbPath == "" {
		dbPath = env.resolve(env.cfg.Export.Database)
	}
	created := !fileExists(dbPath)

	store, err := export.Open(dbPath, env.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	resp := &ExportResponseCLI{
		Database: dbPath,
		Created:  created,
		Concepts: g.NumNodes(),
		Edges:    g.NumEdges(),
	}

	resp.GraphRun, err = store.WriteGraph(snap.Name, g)
	if err != nil {
		return err
	}

	if opts.impact != "" {
		result := env.analyzer(opts.depth, snap).Analyze(snap.Index(), opts.impact)
		resp.ImpactRun, err = store.WriteImpact(snap.Name, result)
		if err != nil {
			return err
		}
		resp.ImpactNodes = len(result.Nodes)
	}

	return write(cmd, resp, opts.format)
}
