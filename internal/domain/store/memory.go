package store

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. It backs tests and dry runs.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), value...)
	return nil
}

// MemoryFactory hands out one MemoryStore per book.
type MemoryFactory struct {
	mu    sync.Mutex
	books map[string]*MemoryStore
}

// NewMemoryFactory creates a factory with no books
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{books: make(map[string]*MemoryStore)}
}

// ForBook returns the store of bookID, creating it on first use.
func (f *MemoryFactory) ForBook(bookID string) Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.books[bookID]
	if !ok {
		s = NewMemoryStore()
		f.books[bookID] = s
	}
	return s
}
