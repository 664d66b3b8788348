// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of successful fetches so the
// user can see when the Markdown copy was last refreshed and from where.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperdb/pkg/types"
)

const (
	dbFile = "history.db"

	defaultLimit = 20
)

// PathFor returns the history database location next to the config file.
func PathFor(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), dbFile)
}

// Store is the fetch history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fetches (
			id TEXT PRIMARY KEY,
			sheet_id TEXT NOT NULL,
			backend TEXT NOT NULL,
			output_path TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			column_count INTEGER NOT NULL,
			byte_count INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec. A missing ID is filled with a new UUID and a zero
// FetchedAt with the current time. The stored record is returned.
func (s *Store) Record(ctx context.Context, rec types.FetchRecord) (types.FetchRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now()
	}
	rec.FetchedAt = rec.FetchedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fetches (id, sheet_id, backend, output_path, row_count, column_count, byte_count, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SheetID, string(rec.Backend), rec.OutputPath,
		rec.Rows, rec.Columns, rec.Bytes, rec.FetchedAt.UnixNano(),
	)
	if err != nil {
		return rec, fmt.Errorf("recording fetch: %w", err)
	}
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit uses
// the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.FetchRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sheet_id, backend, output_path, row_count, column_count, byte_count, fetched_at
		 FROM fetches ORDER BY fetched_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.FetchRecord
	for rows.Next() {
		var (
			rec     types.FetchRecord
			backend string
			nanos   int64
		)
		if err := rows.Scan(&rec.ID, &rec.SheetID, &backend, &rec.OutputPath,
			&rec.Rows, &rec.Columns, &rec.Bytes, &nanos); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Backend = types.Backend(backend)
		rec.FetchedAt = time.Unix(0, nanos).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
