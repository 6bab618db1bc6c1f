// Package blob implementa el puerto repository.BlobStore sobre distintos
// backends: memoria, archivo local, PostgreSQL y Redis.
package blob

import (
	"context"
	"sync"

	"github.com/neuhauss/example-gemini/internal/domain/repository"
)

var _ repository.BlobStore = (*MemoryStore)(nil)

// MemoryStore blob store en memoria del proceso. Útil para tests y para STORAGE_DRIVER=memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore construye un MemoryStore vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
