// Package memory provides in-memory implementations of the storage
// ports, used when persistence is disabled and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/pagelens-labs/pagelens-cli/internal/core/domain"
	"github.com/pagelens-labs/pagelens-cli/internal/core/ports/driven"
)

var _ driven.KVStore = (*KVStore)(nil)

// KVStore is an in-memory key-value store. Values are copied on both
// write and read so callers cannot alias the stored bytes.
type KVStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string][]byte)}
}

// Get returns the value for a key, or domain.ErrNotFound.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a value, replacing any existing one.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = stored
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Close releases resources.
func (s *KVStore) Close() error {
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
