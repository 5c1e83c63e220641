// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists processed documents and their chunks in SQLite and
// answers substring queries over the stored chunks.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/doc-ingest/pkg/types"
)

const defaultLimit = 20

// Store manages the chunk database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the SQLite database at path and creates the
// schema if it does not exist.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
		`CREATE TABLE IF NOT EXISTS documents (
			path TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			markdown TEXT NOT NULL,
			processed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL REFERENCES documents(path) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL,
			UNIQUE(path, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_path ON chunks(path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSummary counts documents written by Save.
type SaveSummary struct {
	Inserted int
	Replaced int
	Chunks   int
}

// Save writes docs and their chunks. A document already stored under the
// same path has its chunks replaced. Each document is written in its own
// transaction; the first failure stops the run.
func (s *Store) Save(ctx context.Context, docs []types.Document, method string) (SaveSummary, error) {
	var summary SaveSummary
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, doc := range docs {
		replaced, err := s.saveDocument(ctx, doc, method, now)
		if err != nil {
			return summary, fmt.Errorf("saving %s: %w", doc.Path, err)
		}
		if replaced {
			summary.Replaced++
		} else {
			summary.Inserted++
		}
		summary.Chunks += len(doc.Chunks)
	}
	return summary, nil
}

func (s *Store) saveDocument(ctx context.Context, doc types.Document, method, now string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM documents WHERE path = ?`, doc.Path,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE path = ?`, doc.Path); err != nil {
		return false, fmt.Errorf("deleting old chunks: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (path, method, markdown, processed_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			method=excluded.method, markdown=excluded.markdown,
			processed_at=excluded.processed_at`,
		doc.Path, method, doc.Markdown, now,
	)
	if err != nil {
		return false, fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chunks (path, seq, content) VALUES (?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range doc.Chunks {
		if _, err := stmt.ExecContext(ctx, doc.Path, i, c); err != nil {
			return false, fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	return exists > 0, tx.Commit()
}
