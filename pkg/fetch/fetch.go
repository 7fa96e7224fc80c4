// Package fetch provides the core fetch engine: a concurrent, cache-aware,
// rate-limited web fetcher with bounded retries.
//
// One Scraper owns three pieces of shared mutable state (the cache store,
// the rate pacer and the statistics accumulator), each encapsulated behind
// its own lock-guarded type. Any number of goroutines may call Scrape and
// ScrapeMany on the same Scraper; all of them funnel through the single
// shared pacer, which is the only serialization point between fetches.
package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fetchgate/pkg/cache"
	"fetchgate/pkg/logging"
	"fetchgate/pkg/ratelimit"
	"fetchgate/pkg/stats"
)

// Scraper is the fetch orchestrator. Create one with New and share it;
// the zero value is not usable.
type Scraper struct {
	config  Config
	headers map[string]string
	store   cache.Store
	pacer   *ratelimit.Pacer
	stats   *stats.Accumulator
	sem     chan struct{}
	logger  zerolog.Logger
}

// New creates a Scraper from cfg. Malformed configuration is the only
// fatal error surface; once constructed, every fetch failure is reported
// as an Outcome value.
func New(cfg Config) (*Scraper, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.withDefaults()

	logger := logging.NewLogger("fetch-engine")

	pacer, err := ratelimit.NewPacer(cfg.RateLimit, logger)
	if err != nil {
		return nil, err
	}

	// Request headers are assembled once; per-call mutation is not
	// supported, so the map can be shared by all attempts.
	headers := make(map[string]string, len(cfg.Headers)+1)
	headers["User-Agent"] = cfg.UserAgent
	for key, value := range cfg.Headers {
		headers[key] = value
	}

	s := &Scraper{
		config:  cfg,
		headers: headers,
		store:   cfg.Store,
		pacer:   pacer,
		stats:   stats.NewAccumulator(),
		logger:  logger,
	}
	if cfg.MaxConcurrency > 0 {
		s.sem = make(chan struct{}, cfg.MaxConcurrency)
	}
	return s, nil
}

// Scrape fetches one identifier and returns a typed outcome. It never
// panics or returns a Go error for ordinary failures.
//
// Flow: validate → cache lookup → rate permit → retried fetch → cache
// store and stats update. Invalid input fails before any cache check,
// rate wait or network work.
func (s *Scraper) Scrape(ctx context.Context, raw string) Outcome {
	id, err := ValidateIdentifier(raw)
	if err != nil {
		fetchRequestsTotal.WithLabelValues("invalid").Inc()
		return Failure(raw, KindInvalidInput, 0, err.Error())
	}

	if entry, err := s.store.Lookup(ctx, id); err == nil {
		s.stats.RecordCacheHit()
		fetchRequestsTotal.WithLabelValues("cache_hit").Inc()
		s.logger.Debug().
			Str("url", id).
			Bool("cache_hit", true).
			Msg("Serving fetch from cache")

		// The cached page is returned unchanged; FetchedAt keeps the
		// original fetch time.
		return Success(id, Page{
			StatusCode: entry.StatusCode,
			Body:       entry.Body,
			FetchedAt:  entry.FetchedAt,
		})
	} else if err != cache.ErrMiss {
		// A broken cache backend degrades to a plain fetch.
		s.logger.Warn().Err(err).Str("url", id).Msg("Cache lookup error")
	}

	if err := s.pacer.Acquire(ctx); err != nil {
		s.stats.RecordFailure()
		fetchRequestsTotal.WithLabelValues("failure").Inc()
		fetchErrorsTotal.WithLabelValues(string(KindTimeout)).Inc()
		return Failure(id, KindTimeout, 0, err.Error())
	}

	fetchInflight.Inc()
	defer fetchInflight.Dec()

	// Latency covers the whole retried sequence, backoff delays included.
	start := time.Now()
	page, attErr := s.fetchWithRetry(ctx, id)
	latency := time.Since(start)

	if attErr != nil {
		s.stats.RecordFailure()
		fetchRequestsTotal.WithLabelValues("failure").Inc()
		fetchErrorsTotal.WithLabelValues(string(attErr.kind)).Inc()
		s.logger.Warn().
			Str("url", id).
			Str("error_kind", string(attErr.kind)).
			Dur("duration", latency).
			Msg("Fetch failed")
		return Failure(id, attErr.kind, attErr.statusCode, attErr.message)
	}

	if err := s.store.Put(ctx, id, &cache.Entry{
		StatusCode: page.StatusCode,
		Body:       page.Body,
		FetchedAt:  page.FetchedAt,
		ExpiresAt:  time.Now().Add(s.config.CacheTTL),
	}); err != nil {
		s.logger.Warn().Err(err).Str("url", id).Msg("Cache store error")
	}

	s.stats.RecordSuccess(latency)
	fetchRequestsTotal.WithLabelValues("success").Inc()
	fetchDurationSeconds.Observe(latency.Seconds())
	s.logger.Debug().
		Str("url", id).
		Int("status_code", page.StatusCode).
		Dur("duration", latency).
		Msg("Fetch completed")

	return Success(id, *page)
}

// Stats returns a snapshot of the process-lifetime counters.
func (s *Scraper) Stats() stats.Snapshot {
	return s.stats.Snapshot()
}
