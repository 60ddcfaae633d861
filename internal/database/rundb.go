package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lumina-web/descheck/internal/model"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "descheck.db"

// RunDB provides SQLite-based storage for check-run history.
//
// Design decision: We keep a single database file for all projects rather
// than one per project root. Rows are keyed by project root, which keeps
// cross-project queries and backup trivial.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB inside dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned instead of creating an empty history.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to forbid creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer; one pooled connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the path of the underlying database file.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- One row per check run
	CREATE TABLE IF NOT EXISTS check_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_root TEXT NOT NULL,
		layout_path TEXT NOT NULL,
		checked_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		pages_scanned INTEGER NOT NULL,
		covered INTEGER NOT NULL,
		missing INTEGER NOT NULL,
		missing_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON check_runs(project_root);
	CREATE INDEX IF NOT EXISTS idx_runs_checked_at ON check_runs(checked_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is one stored check run.
type RunSummary struct {
	ID           int64
	ProjectRoot  string
	LayoutPath   string
	CheckedAt    time.Time
	Duration     time.Duration
	PagesScanned int
	Covered      int
	Missing      int

	// MissingEntries are the [path, slug] pairs recorded for the run.
	MissingEntries []model.MissingEntry
}

// SaveResult records one check result and returns the new row ID.
func (rdb *RunDB) SaveResult(ctx context.Context, result *model.CheckResult) (int64, error) {
	missingJSON, err := json.Marshal(result.Report.MissingDescriptions)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize missing entries: %w", err)
	}

	query := `
	INSERT INTO check_runs
		(project_root, layout_path, checked_at, duration_ms, pages_scanned, covered, missing, missing_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := rdb.db.ExecContext(ctx, query,
		result.Root,
		result.LayoutPath,
		result.CheckedAt.UTC().Format(time.RFC3339Nano),
		result.Duration.Milliseconds(),
		result.PagesScanned,
		result.CoveredCount(),
		result.MissingCount(),
		string(missingJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert check run: %w", err)
	}

	return res.LastInsertId()
}

// ListRuns returns stored runs for a project root, newest first.
// A limit of 0 returns all runs.
func (rdb *RunDB) ListRuns(ctx context.Context, projectRoot string, limit int) ([]RunSummary, error) {
	query := `
	SELECT id, project_root, layout_path, checked_at, duration_ms,
	       pages_scanned, covered, missing, missing_json
	FROM check_runs
	WHERE project_root = ?
	ORDER BY id DESC
	`
	args := []any{projectRoot}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query check runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read check runs: %w", err)
	}

	return runs, nil
}

// GetRun returns one stored run by ID.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (RunSummary, error) {
	query := `
	SELECT id, project_root, layout_path, checked_at, duration_ms,
	       pages_scanned, covered, missing, missing_json
	FROM check_runs
	WHERE id = ?
	`

	rows, err := rdb.db.QueryContext(ctx, query, id)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to query check run %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return RunSummary{}, fmt.Errorf("failed to read check run %d: %w", id, err)
		}
		return RunSummary{}, fmt.Errorf("check run %d not found", id)
	}

	return scanRun(rows)
}

// ListProjects returns the distinct project roots present in the history,
// most recently checked first.
func (rdb *RunDB) ListProjects(ctx context.Context) ([]string, error) {
	query := `
	SELECT project_root
	FROM check_runs
	GROUP BY project_root
	ORDER BY MAX(id) DESC
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan project root: %w", err)
		}
		roots = append(roots, root)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return roots, nil
}

// scanRun reads one RunSummary from the current row.
func scanRun(rows *sql.Rows) (RunSummary, error) {
	var run RunSummary
	var checkedAt string
	var durationMS int64
	var missingJSON string

	if err := rows.Scan(
		&run.ID,
		&run.ProjectRoot,
		&run.LayoutPath,
		&checkedAt,
		&durationMS,
		&run.PagesScanned,
		&run.Covered,
		&run.Missing,
		&missingJSON,
	); err != nil {
		return RunSummary{}, fmt.Errorf("failed to scan check run: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, checkedAt)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to parse run timestamp %q: %w", checkedAt, err)
	}
	run.CheckedAt = ts
	run.Duration = time.Duration(durationMS) * time.Millisecond

	if err := json.Unmarshal([]byte(missingJSON), &run.MissingEntries); err != nil {
		return RunSummary{}, fmt.Errorf("failed to decode missing entries: %w", err)
	}

	return run, nil
}
