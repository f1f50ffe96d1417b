package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/docfetch/internal/model"
)

// HistoryDB stores crawl run history in a SQLite database.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// The database file is named "docfetch.db".
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "docfetch.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one record per crawl invocation
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		module TEXT NOT NULL,
		destination TEXT NOT NULL,
		visit_limit INTEGER NOT NULL DEFAULT 0,
		limit_reached INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		fetched INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0,
		stored INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_module ON runs(module);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Nodes store one record per processed topic path
	CREATE TABLE IF NOT EXISTS nodes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		path TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_nodes_run ON nodes(run_id);
	CREATE INDEX IF NOT EXISTS idx_nodes_path ON nodes(path);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a complete crawl report: the run row and one node row
// per outcome, in a single transaction.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.CrawlReport) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, module, destination, visit_limit, limit_reached, started_at, finished_at, fetched, failed, stored)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID,
		report.Module,
		report.Destination,
		report.Limit,
		boolToInt(report.LimitReached),
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Fetched,
		report.Failed,
		report.Stored,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO nodes (run_id, path, status, error, timestamp)
	VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare node insert: %w", err)
	}
	defer stmt.Close()

	for _, node := range report.Nodes {
		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			node.Path,
			string(node.Status),
			node.Error,
			node.Timestamp.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("failed to insert node %s: %w", node.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
// If module is non-empty, only runs for that module are returned.
// limit caps the number of rows; 0 means no cap.
func (hdb *HistoryDB) ListRuns(ctx context.Context, module string, limit int) ([]*model.CrawlReport, error) {
	query := `
	SELECT id, module, destination, visit_limit, limit_reached, started_at, finished_at, fetched, failed, stored
	FROM runs
	`
	var args []any
	if module != "" {
		query += " WHERE module = ?"
		args = append(args, module)
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.CrawlReport
	for rows.Next() {
		var run model.CrawlReport
		var limitReached int
		var started, finished string
		if err := rows.Scan(
			&run.RunID,
			&run.Module,
			&run.Destination,
			&run.Limit,
			&limitReached,
			&started,
			&finished,
			&run.Fetched,
			&run.Failed,
			&run.Stored,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.LimitReached = limitReached != 0
		run.StartedAt = parseTimestamp(started)
		run.FinishedAt = parseTimestamp(finished)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// RunNodes returns the node outcomes of a run, in processing order.
func (hdb *HistoryDB) RunNodes(ctx context.Context, runID string) ([]model.NodeOutcome, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT path, status, error, timestamp
	FROM nodes
	WHERE run_id = ?
	ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []model.NodeOutcome
	for rows.Next() {
		var node model.NodeOutcome
		var status, timestamp string
		var errText sql.NullString
		if err := rows.Scan(&node.Path, &status, &errText, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		node.Status = model.OutcomeStatus(status)
		node.Error = errText.String
		node.Timestamp = parseTimestamp(timestamp)
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nodes: %w", err)
	}

	return nodes, nil
}

// timestampFormats are the formats SQLite may return depending on how the
// value was written and queried.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses a timestamp string from SQLite.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Zero time is the fallback for unrecognized formats
	return time.Time{}
}

// boolToInt converts a bool to the 0/1 SQLite convention.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
