package cache

import (
	"errors"
	"time"
)

var (
	// ErrMiss indicates the identifier has no live entry in the cache.
	ErrMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates a stored entry could not be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Entry is a cached successful fetch. Entries are created on the first
// successful fetch of an identifier and replaced, never merged, on every
// later one.
type Entry struct {
	// StatusCode is the HTTP status code of the cached response.
	StatusCode int `json:"status_code"`

	// Body is the response body.
	Body []byte `json:"body"`

	// FetchedAt is when the response was fetched from the network.
	// Cache hits return it unchanged; it is never refreshed on read.
	FetchedAt time.Time `json:"fetched_at"`

	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true once ExpiresAt is at or before the current time.
func (e *Entry) IsExpired() bool {
	return !e.ExpiresAt.After(time.Now())
}

// TTL returns the remaining time until expiry, 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.ExpiresAt)
	if ttl < 0 {
		return 0
	}
	return ttl
}
