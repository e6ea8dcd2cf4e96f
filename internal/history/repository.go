// Package history persists a local record of convert and deploy runs.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nathanbeddoewebdev/sigdata/internal/database"
	"nathanbeddoewebdev/sigdata/internal/retry"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Repository defines the persistence interface for run records.
type Repository interface {
	Save(run *Run) error
	List(limit int) ([]Run, error)
	ListByCommand(command string, limit int) ([]Run, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the history repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS runs (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            command     TEXT    NOT NULL,
            source_dir  TEXT    NOT NULL DEFAULT '',
            output_dir  TEXT    NOT NULL DEFAULT '',
            converted   INTEGER NOT NULL DEFAULT 0,
            skipped     INTEGER NOT NULL DEFAULT 0,
            failed      INTEGER NOT NULL DEFAULT 0,
            entries     INTEGER NOT NULL DEFAULT 0,
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
        CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("history: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new run record.
func (r *SQLiteRepository) Save(run *Run) error {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO runs (timestamp, command, source_dir, output_dir, converted, skipped, failed, entries, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Timestamp.UTC().Format(time.RFC3339Nano), run.Command, run.SourceDir, run.OutputDir,
		run.Converted, run.Skipped, run.Failed, run.Entries, run.Outcome, run.Detail, run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("history: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: failed to get last insert ID: %w", err)
	}
	run.ID = id
	return nil
}

const selectRuns = `
        SELECT id, timestamp, command, source_dir, output_dir, converted, skipped, failed,
               entries, outcome, detail, duration_ms
        FROM runs`

// List returns the most recent n runs.
func (r *SQLiteRepository) List(limit int) ([]Run, error) {
	rows, err := r.db.Query(selectRuns+` ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByCommand returns the most recent n runs of a command.
func (r *SQLiteRepository) ListByCommand(command string, limit int) ([]Run, error) {
	rows, err := r.db.Query(selectRuns+` WHERE command = ? ORDER BY timestamp DESC LIMIT ?`, command, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes runs older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var run Run
		var timestampStr string
		err := rows.Scan(
			&run.ID, &timestampStr, &run.Command, &run.SourceDir, &run.OutputDir,
			&run.Converted, &run.Skipped, &run.Failed, &run.Entries,
			&run.Outcome, &run.Detail, &run.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("history: scan failed: %w", err)
		}
		run.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Record saves run to the repository at the default path. A write that
// collides with another sigdata process holding the database lock is
// retried.
func Record(ctx context.Context, run *Run) error {
	r, err := Open()
	if err != nil {
		return err
	}
	defer r.Close()

	return retry.Do(ctx, retry.DefaultConfig(), isBusy, func() error {
		return r.Save(run)
	})
}

// isBusy reports whether err is SQLite refusing a write because another
// connection holds the lock.
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}
