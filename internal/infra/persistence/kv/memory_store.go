package kv

import (
	"context"
	"sync"

	"yatra/internal/domain/service"
)

// memoryStore is a process-local document store. Used in tests and when no
// database is configured.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore is the constructor for memoryStore.
func NewMemoryStore() service.KeyValueStore {
	return &memoryStore{
		data: make(map[string][]byte),
	}
}

// Get returns the raw document and whether the key exists.
func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, true, nil
}

// Put stores the document, replacing any previous value.
func (s *memoryStore) Put(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = stored

	return nil
}

// Delete removes the key; deleting a missing key is not an error.
func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)

	return nil
}
