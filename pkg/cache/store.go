package cache

import "context"

// Store is the port the fetch engine reads and writes the cache through.
// It never mutates backing state on Lookup; expired entries are pruned
// lazily by later writes (or by the backend's own TTL mechanism).
type Store interface {
	// Lookup returns the live entry for id, or ErrMiss when no entry
	// exists or the stored entry has expired.
	Lookup(ctx context.Context, id string) (*Entry, error)

	// Put unconditionally overwrites any existing entry for id.
	Put(ctx context.Context, id string, entry *Entry) error
}
