// Package store persists pipeline run history in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ebowwa/Nano-Banana-Shorts-Editor/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	input_path       TEXT NOT NULL,
	output_path      TEXT NOT NULL DEFAULT '',
	success          INTEGER NOT NULL,
	frames_processed INTEGER NOT NULL DEFAULT 0,
	mock_analysis    INTEGER NOT NULL DEFAULT 0,
	model            TEXT NOT NULL DEFAULT '',
	error_message    TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
`

type Store struct {
	db *sql.DB
}

// Open creates the database file (and its parent directory) if needed and
// applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) RecordRun(ctx context.Context, rec types.RunRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, output_path, success, frames_processed, mock_analysis, model, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.InputPath, rec.OutputPath, boolToInt(rec.Success), rec.FramesProcessed,
		boolToInt(rec.MockAnalysis), rec.Model, rec.ErrorMessage, created.Format(time.RFC3339))
	return err
}

func (s *Store) ListRuns(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_path, output_path, success, frames_processed, mock_analysis, model, error_message, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		var r types.RunRecord
		var success, mock int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.InputPath, &r.OutputPath, &success, &r.FramesProcessed, &mock, &r.Model, &r.ErrorMessage, &createdAt); err != nil {
			return nil, err
		}
		r.Success = success == 1
		r.MockAnalysis = mock == 1
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
