// Package cache maps normalized URL identifiers to previously fetched
// responses with an expiry.
//
// The cache is consulted before any network work and only ever holds
// successful responses: failures are never stored, so a transient error
// cannot poison later attempts. An entry whose expiry has passed is treated
// as absent on lookup and overwritten on the next write; reads have no
// side effects.
//
// Two backends implement Store:
//
//   - MemoryStore: lock-guarded in-process map, the default. State lives
//     only for the life of the engine.
//   - RedisStore: go-redis backend with JSON-encoded entries and native
//     TTL expiry, for sharing a cache across processes.
//
// # Basic Usage
//
//	store := cache.NewMemoryStore()
//
//	entry, err := store.Lookup(ctx, "https://example.com/docs")
//	if err == cache.ErrMiss {
//		// fetch and store
//	}
//
//	store.Put(ctx, "https://example.com/docs", &cache.Entry{
//		StatusCode: 200,
//		Body:       body,
//		FetchedAt:  time.Now(),
//		ExpiresAt:  time.Now().Add(5 * time.Minute),
//	})
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - fetch_cache_hits_total{backend} - live lookups served from cache
//   - fetch_cache_misses_total{backend} - absent or expired lookups
//   - fetch_cache_errors_total{operation} - backend operation errors
package cache
