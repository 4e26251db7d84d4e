// Package export persists knowledge graphs and impact reports to a SQLite
// database so they can be queried outside repolens.
//
// Every write is a run identified by a UUID. Runs are append-only; exporting
// the same snapshot twice yields two runs.
package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	rlerrors "repolens/internal/errors"
	"repolens/internal/impact"
	"repolens/internal/knowledge"
	"repolens/internal/slogutil"
)

// RunKind distinguishes what a run exported.
type RunKind string

const (
	RunGraph  RunKind = "graph"
	RunImpact RunKind = "impact"
)

// Run is one export.
type Run struct {
	ID        string    `json:"id"`
	Kind      RunKind   `json:"kind"`
	Snapshot  string    `json:"snapshot"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is an export database.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	dbPath string
}

// Open opens or creates the export database at dbPath.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, rlerrors.New(rlerrors.ExportFailed, "failed to create export directory", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, rlerrors.New(rlerrors.ExportFailed, "failed to open export database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, rlerrors.New(rlerrors.ExportFailed, "failed to set pragma", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, rlerrors.New(rlerrors.ExportFailed, "failed to initialize export schema", err)
	}

	logger.Debug("Opened export database", "path", dbPath)
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			snapshot TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS concepts (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			label TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			weight REAL NOT NULL,
			centrality REAL NOT NULL,
			files TEXT NOT NULL,
			PRIMARY KEY (run_id, id)
		);
		CREATE INDEX IF NOT EXISTS idx_concepts_category ON concepts(run_id, category);

		CREATE TABLE IF NOT EXISTS concept_edges (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			type TEXT NOT NULL,
			weight REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_concept_edges_source ON concept_edges(run_id, source);

		CREATE TABLE IF NOT EXISTS impact_reports (
			run_id TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
			origin TEXT NOT NULL,
			score INTEGER NOT NULL,
			level TEXT NOT NULL,
			factors TEXT NOT NULL,
			direct_impact INTEGER NOT NULL,
			indirect_impact INTEGER NOT NULL,
			potential_impact INTEGER NOT NULL,
			total_impact INTEGER NOT NULL,
			max_chain_length INTEGER NOT NULL,
			critical_paths TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS impact_nodes (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			id TEXT NOT NULL,
			direction TEXT NOT NULL,
			path TEXT NOT NULL,
			kind TEXT NOT NULL,
			impact_level TEXT NOT NULL,
			distance INTEGER NOT NULL,
			weight REAL NOT NULL,
			dependency_path TEXT NOT NULL,
			PRIMARY KEY (run_id, id, direction)
		);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *Store) insertRun(tx *sql.Tx, kind RunKind, snapshot string) (string, error) {
	id := uuid.New().String()
	_, err := tx.Exec(`INSERT INTO runs (id, kind, snapshot, created_at) VALUES (?, ?, ?, ?)`,
		id, string(kind), snapshot, time.Now().UTC().Format(time.RFC3339Nano))
	return id, err
}

// WriteGraph stores every node and edge of g as a new run.
func (s *Store) WriteGraph(snapshot string, g *knowledge.Graph) (string, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID, err := s.insertRun(tx, RunGraph, snapshot)
	if err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to record run", err)
	}

	centrality := g.Centrality()
	for _, n := range g.Nodes() {
		files, err := json.Marshal(n.Files)
		if err != nil {
			return "", rlerrors.New(rlerrors.ExportFailed, "failed to encode files", err)
		}
		_, err = tx.Exec(`
			INSERT INTO concepts (run_id, id, label, type, category, description, weight, centrality, files)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, n.ID, n.Label, string(n.Type), n.Category, n.Description, n.Weight, centrality[n.ID], string(files))
		if err != nil {
			return "", rlerrors.New(rlerrors.ExportFailed, fmt.Sprintf("failed to insert concept %s", n.ID), err)
		}
	}

	for _, e := range g.Edges() {
		_, err := tx.Exec(`INSERT INTO concept_edges (run_id, source, target, type, weight) VALUES (?, ?, ?, ?, ?)`,
			runID, e.Source, e.Target, string(e.Type), e.Weight)
		if err != nil {
			return "", rlerrors.New(rlerrors.ExportFailed, "failed to insert concept edge", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to commit graph export", err)
	}

	s.logger.Info("Exported knowledge graph",
		"run", runID,
		"concepts", g.NumNodes(),
		"edges", g.NumEdges(),
	)
	return runID, nil
}

// WriteImpact stores an impact result as a new run.
func (s *Store) WriteImpact(snapshot string, r *impact.Result) (string, error) {
	tx, err := s.conn.Begin()
	if err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID, err := s.insertRun(tx, RunImpact, snapshot)
	if err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to record run", err)
	}

	factors, _ := json.Marshal(r.Risk.Factors)
	paths, _ := json.Marshal(r.CriticalPaths)
	_, err = tx.Exec(`
		INSERT INTO impact_reports (run_id, origin, score, level, factors, direct_impact, indirect_impact,
			potential_impact, total_impact, max_chain_length, critical_paths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Origin.ID, r.Risk.Score, string(r.Risk.Level), string(factors),
		r.Metrics.DirectImpact, r.Metrics.IndirectImpact, r.Metrics.PotentialImpact,
		r.Metrics.TotalImpact, r.Metrics.MaxChainLength, string(paths))
	if err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to insert impact report", err)
	}

	for _, n := range r.Nodes {
		depPath, _ := json.Marshal(n.DependencyPath)
		_, err := tx.Exec(`
			INSERT INTO impact_nodes (run_id, id, direction, path, kind, impact_level, distance, weight, dependency_path)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, n.ID, string(n.Direction), n.Path, string(n.Type), string(n.ImpactLevel),
			n.Distance, n.Weight, string(depPath))
		if err != nil {
			return "", rlerrors.New(rlerrors.ExportFailed, fmt.Sprintf("failed to insert impact node %s", n.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", rlerrors.New(rlerrors.ExportFailed, "failed to commit impact export", err)
	}

	s.logger.Info("Exported impact report",
		"run", runID,
		"origin", r.Origin.ID,
		"nodes", len(r.Nodes),
	)
	return runID, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.conn.Query(`SELECT id, kind, snapshot, created_at FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var kind, created string
		if err := rows.Scan(&r.ID, &kind, &r.Snapshot, &created); err != nil {
			return nil, err
		}
		r.Kind = RunKind(kind)
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ExportedConcept is a concept row read back from the database.
type ExportedConcept struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Category   string   `json:"category"`
	Weight     float64  `json:"weight"`
	Centrality float64  `json:"centrality"`
	Files      []string `json:"files"`
}

// Concepts returns the concepts of a graph run ordered by centrality.
func (s *Store) Concepts(runID string) ([]ExportedConcept, error) {
	rows, err := s.conn.Query(`
		SELECT id, label, type, category, weight, centrality, files
		FROM concepts WHERE run_id = ?
		ORDER BY centrality DESC, id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportedConcept
	for rows.Next() {
		var c ExportedConcept
		var files string
		if err := rows.Scan(&c.ID, &c.Label, &c.Type, &c.Category, &c.Weight, &c.Centrality, &files); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(files), &c.Files); err != nil {
			return nil, fmt.Errorf("failed to decode files of %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ImpactSummary is an impact report row read back from the database.
type ImpactSummary struct {
	Origin string `json:"origin"`
	Score  int    `json:"score"`
	Level  string `json:"level"`
	Nodes  int    `json:"nodes"`
}

// Impact returns the summary of an impact run.
func (s *Store) Impact(runID string) (*ImpactSummary, error) {
	var sum ImpactSummary
	err := s.conn.QueryRow(`
		SELECT r.origin, r.score, r.level, (SELECT COUNT(*) FROM impact_nodes n WHERE n.run_id = r.run_id)
		FROM impact_reports r WHERE r.run_id = ?`, runID).Scan(&sum.Origin, &sum.Score, &sum.Level, &sum.Nodes)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}
