package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"clipforge/internal/config"
	"clipforge/internal/media"
)

const schema = `
CREATE TABLE IF NOT EXISTS render_jobs (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    format TEXT NOT NULL,
    resolution TEXT NOT NULL,
    status TEXT NOT NULL,
    progress INTEGER NOT NULL DEFAULT 0,
    frames_rendered INTEGER NOT NULL DEFAULT 0,
    frames_total INTEGER NOT NULL DEFAULT 1,
    output_path TEXT,
    error_message TEXT,
    started_at TEXT NOT NULL,
    ended_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_render_jobs_project ON render_jobs(project_id);
CREATE INDEX IF NOT EXISTS idx_render_jobs_status ON render_jobs(status);
`

const jobColumns = `id, project_id, format, resolution, status, progress,
    frames_rendered, frames_total, output_path, error_message, started_at, ended_at`

// SQLiteStore persists render jobs in SQLite so job history survives restarts.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite initializes or connects to the job database.
func OpenSQLite(cfg *config.Config) (*SQLiteStore, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "jobs.db")
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

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Save upserts the full job record.
func (s *SQLiteStore) Save(ctx context.Context, job *Job) error {
	var endedAt any
	if job.EndedAt != nil {
		endedAt = job.EndedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO render_jobs (`+jobColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            status = excluded.status,
            progress = excluded.progress,
            frames_rendered = excluded.frames_rendered,
            output_path = excluded.output_path,
            error_message = excluded.error_message,
            ended_at = excluded.ended_at`,
		job.ID,
		job.ProjectID,
		string(job.Format),
		job.Resolution,
		string(job.Status),
		job.Progress,
		job.FramesRendered,
		job.FramesTotal,
		nullableString(job.OutputPath),
		nullableString(job.ErrorMessage),
		job.StartedAt.UTC().Format(time.RFC3339Nano),
		endedAt,
	)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// Get fetches a job by identifier, (nil, nil) when absent.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM render_jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List returns all jobs ordered by start time, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]*Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM render_jobs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(scanner rowScanner) (*Job, error) {
	var (
		job          Job
		format       string
		status       string
		outputPath   sql.NullString
		errorMessage sql.NullString
		startedAt    string
		endedAt      sql.NullString
	)
	if err := scanner.Scan(
		&job.ID,
		&job.ProjectID,
		&format,
		&job.Resolution,
		&status,
		&job.Progress,
		&job.FramesRendered,
		&job.FramesTotal,
		&outputPath,
		&errorMessage,
		&startedAt,
		&endedAt,
	); err != nil {
		return nil, err
	}

	job.Format = media.Format(format)
	job.Status = Status(status)
	job.OutputPath = outputPath.String
	job.ErrorMessage = errorMessage.String

	started, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	job.StartedAt = started

	if endedAt.Valid && endedAt.String != "" {
		ended, err := time.Parse(time.RFC3339Nano, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		job.EndedAt = &ended
	}

	return &job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Store = (*SQLiteStore)(nil)
