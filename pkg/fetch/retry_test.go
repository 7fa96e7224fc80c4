package fetch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// stubTransport serves a scripted sequence of results. Once the script is
// exhausted the last entry repeats. Shared by the retry, orchestration and
// batch tests.
type stubTransport struct {
	mu          sync.Mutex
	script      []stubResult
	calls       int
	inflight    int
	maxInflight int
	lastHeaders map[string]string
}

type stubResult struct {
	status int
	body   string
	err    error
	delay  time.Duration
}

func (t *stubTransport) RoundTrip(ctx context.Context, identifier string, headers map[string]string) (*Response, error) {
	t.mu.Lock()
	idx := t.calls
	t.calls++
	if idx >= len(t.script) {
		idx = len(t.script) - 1
	}
	result := t.script[idx]
	t.lastHeaders = headers
	t.inflight++
	if t.inflight > t.maxInflight {
		t.maxInflight = t.inflight
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inflight--
		t.mu.Unlock()
	}()

	if result.delay > 0 {
		select {
		case <-time.After(result.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if result.err != nil {
		return nil, result.err
	}
	return &Response{StatusCode: result.status, Body: []byte(result.body)}, nil
}

func (t *stubTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func newTestScraper(t *testing.T, transport Transport, mutate func(*Config)) *Scraper {
	t.Helper()

	cfg := Config{
		Transport:   transport,
		BackoffBase: 5 * time.Millisecond,
		BackoffMax:  20 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestRetryTransientThenSuccess(t *testing.T) {
	transport := &stubTransport{script: []stubResult{
		{status: 503},
		{status: 503},
		{status: 200, body: "recovered"},
	}}
	s := newTestScraper(t, transport, nil)

	start := time.Now()
	outcome := s.Scrape(context.Background(), "https://example.com/flaky")
	elapsed := time.Since(start)

	if !outcome.OK() {
		t.Fatalf("expected success after retries, got fault: %v", outcome.Fault)
	}
	if string(outcome.Page.Body) != "recovered" {
		t.Errorf("body = %q, want %q", outcome.Page.Body, "recovered")
	}
	if got := transport.callCount(); got != 3 {
		t.Errorf("transport calls = %d, want 3", got)
	}
	// Two backoffs at 5ms and 10ms base, minimum 80% of each with jitter.
	if elapsed < 10*time.Millisecond {
		t.Errorf("elapsed = %v, want backoff delays included", elapsed)
	}
}

func TestRetryClientErrorImmediate(t *testing.T) {
	transport := &stubTransport{script: []stubResult{{status: 404}}}
	s := newTestScraper(t, transport, nil)

	outcome := s.Scrape(context.Background(), "https://example.com/missing")

	if outcome.OK() {
		t.Fatal("expected failure for 404")
	}
	if outcome.Fault.Kind != KindClientError {
		t.Errorf("Fault.Kind = %q, want %q", outcome.Fault.Kind, KindClientError)
	}
	if outcome.Fault.StatusCode != 404 {
		t.Errorf("Fault.StatusCode = %d, want 404", outcome.Fault.StatusCode)
	}
	if got := transport.callCount(); got != 1 {
		t.Errorf("transport calls = %d, want exactly 1 (no retry on 4xx)", got)
	}
}

func TestRetryTooManyRequestsNotRetried(t *testing.T) {
	transport := &stubTransport{script: []stubResult{{status: 429}}}
	s := newTestScraper(t, transport, nil)

	outcome := s.Scrape(context.Background(), "https://example.com/throttled")

	if outcome.OK() {
		t.Fatal("expected failure for 429")
	}
	if outcome.Fault.Kind != KindClientError {
		t.Errorf("Fault.Kind = %q, want %q", outcome.Fault.Kind, KindClientError)
	}
	if got := transport.callCount(); got != 1 {
		t.Errorf("transport calls = %d, want exactly 1", got)
	}
}

func TestRetryExhausted(t *testing.T) {
	transport := &stubTransport{script: []stubResult{{status: 503}}}
	s := newTestScraper(t, transport, func(cfg *Config) {
		cfg.Retries = 2
	})

	outcome := s.Scrape(context.Background(), "https://example.com/down")

	if outcome.OK() {
		t.Fatal("expected failure after exhausting retries")
	}
	if outcome.Fault.Kind != KindExhaustedRetries {
		t.Errorf("Fault.Kind = %q, want %q", outcome.Fault.Kind, KindExhaustedRetries)
	}
	if outcome.Fault.StatusCode != 503 {
		t.Errorf("Fault.StatusCode = %d, want last status 503", outcome.Fault.StatusCode)
	}
	if !strings.Contains(outcome.Fault.Message, "exhausted 2 retries") {
		t.Errorf("Fault.Message = %q, want retry budget named", outcome.Fault.Message)
	}
	if got := transport.callCount(); got != 3 {
		t.Errorf("transport calls = %d, want 3 (1 initial + 2 retries)", got)
	}
}

func TestRetryNetworkErrorThenSuccess(t *testing.T) {
	transport := &stubTransport{script: []stubResult{
		{err: errors.New("connection refused")},
		{status: 200, body: "ok"},
	}}
	s := newTestScraper(t, transport, nil)

	outcome := s.Scrape(context.Background(), "https://example.com/unstable")

	if !outcome.OK() {
		t.Fatalf("expected success after network error retry, got fault: %v", outcome.Fault)
	}
	if got := transport.callCount(); got != 2 {
		t.Errorf("transport calls = %d, want 2", got)
	}
}

func TestRetryAttemptTimeout(t *testing.T) {
	transport := &stubTransport{script: []stubResult{{status: 200, delay: 200 * time.Millisecond}}}
	s := newTestScraper(t, transport, func(cfg *Config) {
		cfg.Timeout = 20 * time.Millisecond
		cfg.Retries = 1
		cfg.BackoffBase = time.Millisecond
		cfg.BackoffMax = 2 * time.Millisecond
	})

	outcome := s.Scrape(context.Background(), "https://example.com/slow")

	if outcome.OK() {
		t.Fatal("expected failure for slow origin")
	}
	if outcome.Fault.Kind != KindExhaustedRetries {
		t.Errorf("Fault.Kind = %q, want %q", outcome.Fault.Kind, KindExhaustedRetries)
	}
	if !strings.Contains(outcome.Fault.Message, "timeout") {
		t.Errorf("Fault.Message = %q, want last timeout error carried", outcome.Fault.Message)
	}
	if got := transport.callCount(); got != 2 {
		t.Errorf("transport calls = %d, want 2", got)
	}
}

func TestRetryCancelledDuringBackoff(t *testing.T) {
	transport := &stubTransport{script: []stubResult{{status: 503}}}
	s := newTestScraper(t, transport, func(cfg *Config) {
		cfg.BackoffBase = 500 * time.Millisecond
		cfg.BackoffMax = time.Second
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	outcome := s.Scrape(ctx, "https://example.com/down")
	elapsed := time.Since(start)

	if outcome.OK() {
		t.Fatal("expected failure on cancellation")
	}
	if !strings.Contains(outcome.Fault.Message, "cancelled during backoff") {
		t.Errorf("Fault.Message = %q, want cancellation reported", outcome.Fault.Message)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("elapsed = %v, want prompt return after cancel", elapsed)
	}
	if got := transport.callCount(); got != 1 {
		t.Errorf("transport calls = %d, want 1", got)
	}
}
