package storage

import (
	"context"
	"sync"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

// MemoryStore keeps slots in-memory for tests and ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	slots  map[string][]byte
	writes int
}

var _ interfaces.SlotStore = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string][]byte{}}
}

// Get returns a copy of the slot value.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	value, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

// Put overwrites the slot.
func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.slots[key] = cloneBytes(value)
	s.writes++
	s.mu.Unlock()
	return nil
}

// Writes reports how many times Put succeeded.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
