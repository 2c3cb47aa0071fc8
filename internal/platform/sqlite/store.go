// Package sqlite keeps book documents in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

// Schema creates the document table.
const Schema = `
CREATE TABLE IF NOT EXISTS documents (
    book_id    TEXT NOT NULL,
    doc_key    TEXT NOT NULL,
    data       BLOB NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (book_id, doc_key)
);
`

type document struct {
	BookID    string `db:"book_id"`
	Key       string `db:"doc_key"`
	Data      []byte `db:"data"`
	UpdatedAt string `db:"updated_at"`
}

// DB wraps the SQLite connection
type DB struct {
	db *sqlx.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Factory returns the store.Factory over this database.
func (d *DB) Factory() store.Factory {
	return func(bookID string) store.Store {
		return &Store{db: d.db, bookID: bookID}
	}
}

// Books lists the IDs of every book that has stored a document.
func (d *DB) Books() ([]string, error) {
	var ids []string
	if err := d.db.Select(&ids, `SELECT DISTINCT book_id FROM documents ORDER BY book_id`); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return ids, nil
}

// Store is the document set of one book
type Store struct {
	db     *sqlx.DB
	bookID string
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document
	err := s.db.GetContext(ctx, &doc,
		`SELECT book_id, doc_key, data, updated_at FROM documents WHERE book_id = ? AND doc_key = ?`,
		s.bookID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return doc.Data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	doc := document{
		BookID:    s.bookID,
		Key:       key,
		Data:      value,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO documents (book_id, doc_key, data, updated_at)
		VALUES (:book_id, :doc_key, :data, :updated_at)
		ON CONFLICT (book_id, doc_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		doc)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
