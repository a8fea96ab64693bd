// Package runlog records scrape refresh runs in a local SQLite database so
// past runs can be inspected after the fact.
package runlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Status marks the outcome of a refresh run.
type Status string

const (
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusDegraded Status = "degraded" // fetch failed, run fell back to cache
	StatusFailed   Status = "failed"
)

// Entry is one refresh run.
type Entry struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Listings    int        `json:"listings"`
	Geocoded    int        `json:"geocoded"`
	Error       string     `json:"error,omitempty"`
}

// Log provides read/write access to the scrape_runs table.
type Log struct {
	db *sql.DB
}

const migration = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL DEFAULT 'running',
	started_at   DATETIME NOT NULL,
	completed_at DATETIME,
	listings     INTEGER NOT NULL DEFAULT 0,
	geocoded     INTEGER NOT NULL DEFAULT 0,
	error        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scrape_runs_started_at ON scrape_runs(started_at);
`

// Open opens (creating if needed) the run log at path.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrap(err, "runlog: create dir")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "runlog: exec %s", pragma)
		}
	}
	if _, err := db.Exec(migration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "runlog: migrate")
	}

	return &Log{db: db}, nil
}

// Close releases the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Start records the beginning of a refresh run and returns its ID.
func (l *Log) Start(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO scrape_runs (id, status, started_at) VALUES (?, ?, ?)`,
		id, string(StatusRunning), time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "runlog: start run")
	}
	return id, nil
}

// Finish marks a run with its terminal status and counts.
func (l *Log) Finish(ctx context.Context, id string, status Status, listings, geocoded int, runErr error) error {
	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}
	_, err := l.db.ExecContext(ctx,
		`UPDATE scrape_runs
		 SET status = ?, completed_at = ?, listings = ?, geocoded = ?, error = ?
		 WHERE id = ?`,
		string(status), time.Now().UTC(), listings, geocoded, errText, id,
	)
	if err != nil {
		return eris.Wrapf(err, "runlog: finish run %s", id)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, status, started_at, completed_at, listings, geocoded, error
		 FROM scrape_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		var completed sql.NullTime
		if err := rows.Scan(&e.ID, &status, &e.StartedAt, &completed, &e.Listings, &e.Geocoded, &e.Error); err != nil {
			return nil, eris.Wrap(err, "runlog: scan run")
		}
		e.Status = Status(status)
		if completed.Valid {
			t := completed.Time
			e.CompletedAt = &t
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "runlog: iterate runs")
}
