package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces fetchgate entries inside a shared Redis instance.
const keyPrefix = "fetchgate:cache:"

// RedisStore is a Store backed by Redis. Entries are JSON-encoded and
// stored with a native TTL derived from their expiry, so Redis collects
// stale entries on its own; no explicit pruning pass is needed.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		redis: redisClient,
	}
}

// Lookup returns the live entry for id, or ErrMiss when absent or expired.
func (s *RedisStore) Lookup(ctx context.Context, id string) (*Entry, error) {
	data, err := s.redis.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			cacheMisses.WithLabelValues("redis").Inc()
			return nil, ErrMiss
		}
		cacheErrors.WithLabelValues("lookup").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		cacheErrors.WithLabelValues("lookup").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// Redis TTL normally collects expired entries, but clock skew between
	// writer and reader can leave a stale one visible briefly.
	if entry.IsExpired() {
		cacheMisses.WithLabelValues("redis").Inc()
		return nil, ErrMiss
	}

	cacheHits.WithLabelValues("redis").Inc()
	return &entry, nil
}

// Put overwrites any existing entry for id, keyed with a TTL so Redis
// expires it at ExpiresAt. Entries that are already expired are dropped
// rather than written.
func (s *RedisStore) Put(ctx context.Context, id string, entry *Entry) error {
	if entry == nil {
		return ErrInvalidEntry
	}

	ttl := entry.TTL()
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		cacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, keyPrefix+id, data, ttl).Err(); err != nil {
		cacheErrors.WithLabelValues("put").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes an entry. Not part of Store; useful for cache invalidation
// from operational tooling.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, keyPrefix+id).Err(); err != nil {
		cacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
