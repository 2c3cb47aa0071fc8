// Package bolt keeps book documents in a local bbolt file, one bucket per book.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

const bookBucketPrefix = "book:"

// DB wraps the bbolt database file
type DB struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Factory returns the store.Factory over this file.
func (d *DB) Factory() store.Factory {
	return func(bookID string) store.Store {
		return &Store{db: d.db, bucket: []byte(bookBucketPrefix + bookID)}
	}
}

// Books lists the IDs of every book that has stored a document.
func (d *DB) Books() ([]string, error) {
	var ids []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			if n := string(name); len(n) > len(bookBucketPrefix) && n[:len(bookBucketPrefix)] == bookBucketPrefix {
				ids = append(ids, n[len(bookBucketPrefix):])
			}
			return nil
		})
	})
	return ids, err
}

// Store is the bucket of one book
type Store struct {
	db     *bolt.DB
	bucket []byte
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
