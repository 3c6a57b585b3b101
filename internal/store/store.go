// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists annotation documents in SQLite, keyed by document
// ID so that reloading the same table updates rows in place.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// ErrNotFound is returned by Get for an unknown document ID.
var ErrNotFound = errors.New("document not found")

// Store manages the annotations SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and creates the schema if it
// does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
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
			id TEXT PRIMARY KEY,
			subject_id TEXT NOT NULL,
			object_id TEXT NOT NULL,
			body TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_subject ON documents(subject_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_object ON documents(object_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert inserts doc, replacing any stored document with the same ID.
func (s *Store) Upsert(ctx context.Context, doc types.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document %s: %w", doc.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, subject_id, object_id, body) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			subject_id=excluded.subject_id, object_id=excluded.object_id, body=excluded.body`,
		doc.ID, doc.Subject.ID, doc.Object.ID, string(body),
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns the stored cleaned record for id.
func (s *Store) Get(ctx context.Context, id string) (map[string]any, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying document %s: %w", id, err)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", id, err)
	}
	return rec, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}
