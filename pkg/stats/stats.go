// Package stats accumulates process-lifetime fetch counters.
package stats

import (
	"sync"
	"time"
)

// Accumulator owns the mutable fetch counters. All mutation goes through
// its methods under the internal mutex; callers never touch raw counters.
type Accumulator struct {
	mu                sync.Mutex
	totalRequests     int64
	cachedHits        int64
	failedRequests    int64
	cumulativeLatency time.Duration
}

// Snapshot is a point-in-time copy of the counters. AverageResponseTime is
// derived at read time rather than stored, so it cannot drift.
type Snapshot struct {
	TotalRequests       int64         `json:"total_requests"`
	CachedRequests      int64         `json:"cached_requests"`
	FailedRequests      int64         `json:"failed_requests"`
	AverageResponseTime time.Duration `json:"average_response_time"`
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// RecordCacheHit counts a request served from cache. Cache hits never
// contribute to the latency average.
func (a *Accumulator) RecordCacheHit() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests++
	a.cachedHits++
}

// RecordSuccess counts a completed network fetch and its latency. The
// latency covers the whole retried sequence, backoff delays included.
func (a *Accumulator) RecordSuccess(latency time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests++
	a.cumulativeLatency += latency
}

// RecordFailure counts a terminal fetch failure.
func (a *Accumulator) RecordFailure() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totalRequests++
	a.failedRequests++
}

// Snapshot returns a copy of the current counters.
// The average is 0 until at least one non-cached request has completed.
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		TotalRequests:  a.totalRequests,
		CachedRequests: a.cachedHits,
		FailedRequests: a.failedRequests,
	}

	if fetched := a.totalRequests - a.cachedHits; fetched > 0 {
		snap.AverageResponseTime = a.cumulativeLatency / time.Duration(fetched)
	}

	return snap
}
