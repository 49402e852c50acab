package store

import (
	"context"
	"sync"

	"github.com/dompet-dev/dompet/internal/model"
)

// MemoryStore keeps encoded snapshots in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string) (model.Snapshot, error) {
	return orEmpty(s.load(key))
}

func (s *MemoryStore) load(key string) (model.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return model.Snapshot{}, ErrNotFound
	}
	return Decode(data)
}

func (s *MemoryStore) Save(_ context.Context, key string, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}
