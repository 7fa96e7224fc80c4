package fetch

import (
	"fmt"
	"time"

	"fetchgate/pkg/cache"
)

// Defaults applied by New for zero-valued options.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultRetries     = 3
	DefaultCacheTTL    = 300 * time.Second
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultBackoffMax  = 30 * time.Second
	DefaultUserAgent   = "fetchgate/0.1.0"
)

// Config holds the engine configuration. The zero value of every field is
// valid: zero durations and counts take the documented defaults, a zero
// RateLimit means unbounded, a zero MaxConcurrency means unlimited.
type Config struct {
	// Transport performs single network fetches. Defaults to the HTTP
	// transport.
	Transport Transport

	// Store is the cache backend. Defaults to an in-memory store.
	Store cache.Store

	// Timeout bounds each individual fetch attempt.
	Timeout time.Duration

	// Headers are extra request headers applied to every fetch.
	Headers map[string]string

	// UserAgent is sent with every request.
	UserAgent string

	// Retries is the number of extra attempts after the first for
	// transient failures. Zero takes the default of 3.
	Retries int

	// RateLimit caps how many fetches may start per second across all
	// concurrent callers. Zero disables the cap.
	RateLimit float64

	// CacheTTL is how long a successful fetch stays valid in cache.
	CacheTTL time.Duration

	// MaxConcurrency caps in-flight fetches during ScrapeMany. Zero means
	// no cap beyond the shared rate limiter.
	MaxConcurrency int

	// BackoffBase is the delay before the first retry; each further retry
	// doubles it.
	BackoffBase time.Duration

	// BackoffMax caps the backoff growth.
	BackoffMax time.Duration
}

// DefaultConfig returns a config with every default filled in explicitly.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		Retries:     DefaultRetries,
		CacheTTL:    DefaultCacheTTL,
		BackoffBase: DefaultBackoffBase,
		BackoffMax:  DefaultBackoffMax,
	}
}

// validate rejects malformed configuration. Configuration errors are the
// one fatal surface of the engine; every later failure is an Outcome value.
func (c *Config) validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %v)", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0 (got %d)", c.Retries)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be >= 0 (got %v)", c.RateLimit)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must be >= 0 (got %v)", c.CacheTTL)
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max concurrency must be >= 0 (got %d)", c.MaxConcurrency)
	}
	if c.BackoffBase < 0 || c.BackoffMax < 0 {
		return fmt.Errorf("backoff durations must be >= 0")
	}
	return nil
}

// withDefaults fills zero values in place.
func (c *Config) withDefaults() {
	if c.Transport == nil {
		c.Transport = NewHTTPTransport()
	}
	if c.Store == nil {
		c.Store = cache.NewMemoryStore()
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.BackoffBase == 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffMax == 0 {
		c.BackoffMax = DefaultBackoffMax
	}
}
