package fetch

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// fetchWithRetry runs one attempt plus up to Retries extra attempts for
// transient failures, with exponential backoff between them.
//
// The delay before retry n is BackoffBase * 2^(n-1), capped at BackoffMax,
// with ±20% jitter. Non-retryable failures return immediately without
// consuming the budget. A retryable failure on the last allowed attempt
// terminates as KindExhaustedRetries carrying the last error.
func (s *Scraper) fetchWithRetry(ctx context.Context, identifier string) (*Page, *attemptError) {
	var lastErr *attemptError
	backoff := s.config.BackoffBase

	for attempt := 0; attempt <= s.config.Retries; attempt++ {
		page, attErr := s.attempt(ctx, identifier)
		if attErr == nil {
			if attempt > 0 {
				s.logger.Info().
					Str("url", identifier).
					Int("attempt", attempt+1).
					Msg("Fetch succeeded after retry")
			}
			return page, nil
		}

		lastErr = attErr

		if !attErr.retryable() {
			return nil, attErr
		}

		if attempt == s.config.Retries {
			break
		}

		fetchRetriesTotal.WithLabelValues(string(attErr.kind)).Inc()

		// ±20% jitter keeps concurrent retries from lining up.
		delay := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		fetchRetryBackoffSeconds.WithLabelValues(string(attErr.kind)).Observe(delay.Seconds())

		s.logger.Warn().
			Str("url", identifier).
			Str("error_kind", string(attErr.kind)).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("Retrying fetch after backoff")

		select {
		case <-ctx.Done():
			return nil, &attemptError{
				kind:       lastErr.kind,
				statusCode: lastErr.statusCode,
				message:    fmt.Sprintf("cancelled during backoff after: %v", lastErr),
			}
		case <-time.After(delay):
		}

		backoff *= 2
		if backoff > s.config.BackoffMax {
			backoff = s.config.BackoffMax
		}
	}

	fetchRetryExhaustedTotal.WithLabelValues(string(lastErr.kind)).Inc()
	s.logger.Warn().
		Str("url", identifier).
		Str("error_kind", string(lastErr.kind)).
		Int("max_retries", s.config.Retries).
		Msg("Retry budget exhausted")

	return nil, &attemptError{
		kind:       KindExhaustedRetries,
		statusCode: lastErr.statusCode,
		message:    fmt.Sprintf("exhausted %d retries, last error: %v", s.config.Retries, lastErr),
	}
}

// attempt performs a single bounded fetch through the transport and
// classifies the result.
func (s *Scraper) attempt(ctx context.Context, identifier string) (*Page, *attemptError) {
	attemptCtx := ctx
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	resp, err := s.config.Transport.RoundTrip(attemptCtx, identifier, s.headers)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if attErr := classifyResponse(resp); attErr != nil {
		return nil, attErr
	}

	return &Page{
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		FetchedAt:  time.Now(),
	}, nil
}
