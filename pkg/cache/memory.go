package cache

import (
	"context"
	"sync"
)

// sweepInterval is the number of writes between lazy sweeps of expired
// entries. Sweeping only bounds memory; correctness never depends on it
// because Lookup treats expired entries as absent.
const sweepInterval = 256

// MemoryStore is the in-process Store implementation: a map guarded by an
// RWMutex. Reads take the read lock only and never modify the map.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]Entry
	writes int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Entry),
	}
}

// Lookup returns the live entry for id. Expired entries are reported as
// ErrMiss but left in place; the next Put overwrites or sweeps them.
func (s *MemoryStore) Lookup(_ context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	entry, exists := s.data[id]
	s.mu.RUnlock()

	if !exists || entry.IsExpired() {
		cacheMisses.WithLabelValues("memory").Inc()
		return nil, ErrMiss
	}

	cacheHits.WithLabelValues("memory").Inc()
	copied := entry
	return &copied, nil
}

// Put overwrites any existing entry for id. Every sweepInterval writes it
// also drops whatever expired entries have accumulated.
func (s *MemoryStore) Put(_ context.Context, id string, entry *Entry) error {
	if entry == nil {
		return ErrInvalidEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = *entry
	s.writes++
	if s.writes%sweepInterval == 0 {
		for key, e := range s.data {
			if e.IsExpired() {
				delete(s.data, key)
			}
		}
	}

	return nil
}

// Clear removes all entries. Primarily useful for tests.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]Entry)
}

// Size returns the number of stored entries, expired ones included.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
