// Package ratelimit implements the global request pacer that caps how many
// fetches may start per second. All concurrent fetches of one engine funnel
// through a single Pacer; it is the sole serialization point between them.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for permit acquisition.
var (
	permitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fetch_rate_permit_wait_seconds",
		Help:    "Time spent waiting for a rate limiter permit",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	})

	permitsGrantedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fetch_rate_permits_granted_total",
		Help: "Total number of rate limiter permits granted",
	})
)

// Pacer grants permits with a strict minimum spacing of 1/rate seconds
// between successive grants. It is not a bursty token bucket: the underlying
// limiter carries a burst of exactly one, so the first permit is immediate
// and every later one waits out the full interval. A rate of 0 disables
// pacing entirely.
type Pacer struct {
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewPacer creates a pacer granting permitsPerSecond permits per second.
// permitsPerSecond 0 means unbounded; negative values are a configuration
// error.
func NewPacer(permitsPerSecond float64, logger zerolog.Logger) (*Pacer, error) {
	if permitsPerSecond < 0 {
		return nil, fmt.Errorf("rate limit must be >= 0 (got %v)", permitsPerSecond)
	}

	p := &Pacer{logger: logger}
	if permitsPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(permitsPerSecond), 1)
	}
	return p, nil
}

// Acquire suspends the caller until a permit is granted or ctx is done.
// Grant order follows the limiter's reservation queue; ties between
// concurrent callers are broken arbitrarily, but the spacing between any
// two grants never drops below the configured interval.
func (p *Pacer) Acquire(ctx context.Context) error {
	if p.limiter == nil {
		permitsGrantedTotal.Inc()
		return nil
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("acquire rate permit: %w", err)
	}

	waited := time.Since(start)
	permitWaitSeconds.Observe(waited.Seconds())
	permitsGrantedTotal.Inc()

	if waited > time.Second {
		p.logger.Debug().
			Dur("waited", waited).
			Msg("Long wait for rate permit")
	}

	return nil
}

// Interval returns the minimum spacing between grants, 0 when unbounded.
func (p *Pacer) Interval() time.Duration {
	if p.limiter == nil {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(p.limiter.Limit()))
}
