package main

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"repolens/internal/backends/scip"
	"repolens/internal/concepts"
	"repolens/internal/config"
	rlerrors "repolens/internal/errors"
	"repolens/internal/graph"
	"repolens/internal/knowledge"
	"repolens/internal/slogutil"
	"repolens/internal/snapshot"
	"repolens/internal/version"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configDir string
	verbose   int
	quiet     bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "repolens",
		Short: "repolens - repository impact and knowledge graph analysis",
		Long: `repolens analyzes a repository snapshot: a file tree, the dependency edges
between files and optionally the file contents.

It computes the blast radius and risk of changing a file, and builds a
knowledge graph of the concepts (components, hooks, APIs, domain terms)
found in the sources.`,
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("repolens version {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configDir, "config-dir", ".", "Directory containing .repolens/config.json")
	pf.CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	pf.BoolVar(&opts.quiet, "quiet", false, "Suppress all log output")
	pf.StringVar(&opts.logFormat, "log-format", "", "Log format (human, json); defaults to the configured format")

	cmd.AddCommand(
		newImpactCmd(opts),
		newConceptsCmd(opts),
		newCategoriesCmd(opts),
		newRelatedCmd(opts),
		newSearchCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// runtimeEnv is the per-invocation state shared by the commands.
type runtimeEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	root   string
}

func (o *rootOptions) setup(cmd *cobra.Command) (*runtimeEnv, error) {
	cfg, err := config.LoadConfig(o.configDir)
	if err != nil {
		return nil, rlerrors.New(rlerrors.ConfigInvalid, "failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, rlerrors.New(rlerrors.ConfigInvalid, "invalid configuration", err)
	}

	format := cfg.Logging.Format
	if o.logFormat != "" {
		format = o.logFormat
	}
	level := slogutil.LevelFromVerbosity(o.verbose, o.quiet, slogutil.LevelFromString(cfg.Logging.Level))
	logger := slogutil.NewFormattedLogger(cmd.ErrOrStderr(), level, slogutil.Format(format))

	return &runtimeEnv{cfg: cfg, logger: logger, root: o.configDir}, nil
}

// resolve makes a configured path relative to the config directory.
func (e *runtimeEnv) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(e.root, p)
}

// analysisFlags are shared by every command that reads a snapshot.
type analysisFlags struct {
	snapshot string
	scip     string
	format   string
}

func (f *analysisFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.snapshot, "snapshot", "", "Snapshot file (.json, .yaml, .toml, optionally .gz or .zst)")
	cmd.Flags().StringVar(&f.scip, "scip", "", "SCIP index whose file references are added as edges")
	cmd.Flags().StringVar(&f.format, "format", "human", "Output format (json, human)")
	_ = cmd.MarkFlagRequired("snapshot")
}

// loadSnapshot reads the snapshot and merges in SCIP-derived edges.
func (e *runtimeEnv) loadSnapshot(f *analysisFlags) (*snapshot.Snapshot, error) {
	snap, err := snapshot.Load(f.snapshot)
	if err != nil {
		return nil, err
	}

	indexPath := f.scip
	if indexPath == "" && e.cfg.Scip.IndexPath != "" {
		indexPath = scip.GetIndexPath(e.root, e.cfg.Scip.IndexPath)
	}
	if indexPath != "" {
		edges, err := scip.LoadFileEdges(indexPath)
		if err != nil {
			return nil, err
		}
		before := len(snap.Edges)
		snap.Edges = graph.Merge(snap.Edges, edges)
		e.logger.Debug("Merged SCIP edges",
			"index", indexPath,
			"derived", len(edges),
			"added", len(snap.Edges)-before,
		)
	}

	e.logger.Debug("Loaded snapshot",
		"name", snap.Name,
		"edges", len(snap.Edges),
		"files", len(snap.Contents),
	)
	return snap, nil
}

// buildGraph runs the knowledge pipeline with the configured vocabulary.
func (e *runtimeEnv) buildGraph(snap *snapshot.Snapshot) (*knowledge.Graph, error) {
	vocab := concepts.DefaultVocabulary()
	if p := e.resolve(e.cfg.Knowledge.VocabularyFile); p != "" {
		v, err := concepts.LoadVocabulary(p)
		if err != nil {
			return nil, rlerrors.New(rlerrors.ConfigInvalid, "failed to load vocabulary", err)
		}
		vocab = v
	}
	return knowledge.NewBuilder(vocab, e.logger).Build(snap.Tree, snap.Contents), nil
}

// write formats resp and prints it to the command output.
func write(cmd *cobra.Command, resp interface{}, format string) error {
	out, err := FormatResponse(resp, OutputFormat(format))
	if err != nil {
		return rlerrors.New(rlerrors.UnsupportedFormat, "cannot format output", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func asCoded(err error, target **rlerrors.Error) bool {
	return stderrors.As(err, target)
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
