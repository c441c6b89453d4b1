package runlog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"filmtag/internal/config"
	"filmtag/internal/engine"
)

// Run is one journal entry.
type Run struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Strategy  string
	Payloads  int
	Applied   int
	Failed    int
	Skipped   int
}

// Failure is one failed photo within a run.
type Failure struct {
	PhotoPath string
	Detail    string
	Retries   int
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run journal and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path reports the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordRun journals a completed run and its failures. Re-recording the
// same run ID replaces the earlier entry.
func (s *Store) RecordRun(ctx context.Context, outcome *engine.Outcome, startedAt time.Time, strategy string) error {
	if outcome == nil {
		return fmt.Errorf("outcome is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, outcome.RunID); err != nil {
		return fmt.Errorf("clear prior entry: %w", err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, started_at, duration_ms, strategy, payloads, applied, failed, skipped)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.RunID,
		startedAt.UTC().Format(time.RFC3339Nano),
		outcome.Duration.Milliseconds(),
		strategy,
		outcome.Payloads,
		outcome.Applied,
		outcome.Failed,
		outcome.Skipped,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, task := range outcome.Failures() {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO run_failures (run_id, photo_path, detail, retries) VALUES (?, ?, ?, ?)`,
			outcome.RunID,
			task.Path,
			task.Detail,
			task.Retries,
		); err != nil {
			return fmt.Errorf("insert failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, started_at, duration_ms, strategy, payloads, applied, failed, skipped
         FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		var durationMS int64
		if err := rows.Scan(&run.RunID, &started, &durationMS, &run.Strategy, &run.Payloads, &run.Applied, &run.Failed, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339Nano, started); perr == nil {
			run.StartedAt = ts
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Failures returns the failed photos recorded for a run.
func (s *Store) Failures(ctx context.Context, runID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT photo_path, detail, retries FROM run_failures WHERE run_id = ? ORDER BY photo_path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var failure Failure
		if err := rows.Scan(&failure.PhotoPath, &failure.Detail, &failure.Retries); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, failure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return failures, nil
}
