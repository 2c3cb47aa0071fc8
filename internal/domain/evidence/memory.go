package evidence

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage keeps evidence in process memory under mem:// URIs
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string]Object
	data    map[string][]byte
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]Object), data: make(map[string][]byte)}
}

func (m *MemoryStorage) Put(_ context.Context, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uri := "mem://" + key
	m.objects[key] = Object{URI: uri, Name: path.Base(key), ContentType: contentType, Size: int64(len(data)), Created: time.Now()}
	m.data[key] = append([]byte(nil), data...)
	return uri, nil
}

func (m *MemoryStorage) List(_ context.Context, prefix string) ([]Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Object
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, obj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out, nil
}
