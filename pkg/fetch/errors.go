package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// attemptError is the internal error carried between one fetch attempt and
// the retry engine. It never crosses the package boundary: the orchestrator
// converts every terminal attemptError into an Outcome Fault.
type attemptError struct {
	kind       ErrorKind
	statusCode int
	message    string
}

func (e *attemptError) Error() string {
	if e.statusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.kind, e.statusCode, e.message)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

func (e *attemptError) retryable() bool {
	return e.kind.Retryable()
}

// classifyResponse maps an HTTP status to an attemptError, nil for
// non-error statuses. 5xx is transient; all 4xx fail immediately without
// consuming the retry budget.
func classifyResponse(resp *Response) *attemptError {
	switch {
	case resp.StatusCode >= 500:
		return &attemptError{
			kind:       KindServerError,
			statusCode: resp.StatusCode,
			message:    fmt.Sprintf("server error: %d", resp.StatusCode),
		}
	case resp.StatusCode >= 400:
		return &attemptError{
			kind:       KindClientError,
			statusCode: resp.StatusCode,
			message:    fmt.Sprintf("client error: %d", resp.StatusCode),
		}
	default:
		return nil
	}
}

// classifyTransportError maps a transport-level error to an attemptError.
// Deadline overruns become timeouts; everything else is a network failure.
// Both are transient.
func classifyTransportError(err error) *attemptError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &attemptError{
			kind:    KindTimeout,
			message: fmt.Sprintf("attempt exceeded deadline: %v", err),
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &attemptError{
			kind:    KindTimeout,
			message: fmt.Sprintf("attempt timed out: %v", err),
		}
	}

	return &attemptError{
		kind:    KindNetworkError,
		message: fmt.Sprintf("request failed: %v", err),
	}
}
