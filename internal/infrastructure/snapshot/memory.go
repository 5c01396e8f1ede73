// Package snapshot provides the backends that mirror store collections.
package snapshot

import (
	"context"
	"sync"

	domainerrors "brixium.backend/internal/domain/errors"
)

// MemoryStore keeps snapshots in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	if !ok {
		return nil, domainerrors.ErrSnapshotNotFound
	}
	return append([]byte(nil), payload...), nil
}

func (m *MemoryStore) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), payload...)
	return nil
}
