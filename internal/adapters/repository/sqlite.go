package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/smokeoff/internal/domain/model"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scores (
    judge_name    TEXT NOT NULL,
    sample_id     TEXT NOT NULL,
    category_id   TEXT NOT NULL,
    value         INTEGER NOT NULL,
    submission_id TEXT NOT NULL DEFAULT '',
    recorded_at   INTEGER NOT NULL,
    PRIMARY KEY (judge_name, sample_id, category_id)
);
`

// SQLiteStore persists scores in a local SQLite database, surviving
// process restarts. Selected via the storage config knob.
type SQLiteStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens a SQLite score store and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: storage path is required", ErrStorage)
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record upserts one score keyed by (judge, sample, category).
func (s *SQLiteStore) Record(ctx context.Context, score model.Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	const query = `
INSERT INTO scores (judge_name, sample_id, category_id, value, submission_id, recorded_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (judge_name, sample_id, category_id) DO UPDATE SET
    value = excluded.value,
    submission_id = excluded.submission_id,
    recorded_at = excluded.recorded_at
`
	_, err := s.sqlDB.ExecContext(ctx, query,
		score.JudgeName, score.SampleID, score.CategoryID,
		score.Value, score.SubmissionID, toMillis(score.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("%w: record score: %w", ErrStorage, err)
	}
	return nil
}

// List returns every stored score ordered by judge, sample, category.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Score, error) {
	const query = `
SELECT judge_name, sample_id, category_id, value, submission_id, recorded_at
FROM scores
ORDER BY judge_name, sample_id, category_id
`
	rows, err := s.sqlDB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list scores: %w", ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Score
	for rows.Next() {
		var sc model.Score
		var recordedAt int64
		if err := rows.Scan(&sc.JudgeName, &sc.SampleID, &sc.CategoryID, &sc.Value, &sc.SubmissionID, &recordedAt); err != nil {
			return nil, fmt.Errorf("%w: scan score: %w", ErrStorage, err)
		}
		sc.RecordedAt = fromMillis(recordedAt)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list scores: %w", ErrStorage, err)
	}
	return out, nil
}

// Count returns the number of stored scores.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// JudgeCount returns the number of distinct judges with stored scores.
func (s *SQLiteStore) JudgeCount(ctx context.Context) int {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(DISTINCT judge_name) FROM scores`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Reset removes every stored score.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("%w: reset: %w", ErrStorage, err)
	}
	return nil
}
