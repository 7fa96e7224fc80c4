package fetch

import (
	"fmt"
	"time"
)

// ErrorKind classifies a fetch failure. The kind alone decides whether the
// retry engine may try again.
type ErrorKind string

const (
	// KindInvalidInput marks a malformed identifier, rejected before any I/O.
	KindInvalidInput ErrorKind = "invalid_input"

	// KindTimeout marks an attempt that exceeded its per-attempt deadline.
	KindTimeout ErrorKind = "timeout"

	// KindNetworkError marks a transport-level failure.
	KindNetworkError ErrorKind = "network_error"

	// KindServerError marks a 5xx response.
	KindServerError ErrorKind = "server_error"

	// KindClientError marks a 4xx response.
	KindClientError ErrorKind = "client_error"

	// KindExhaustedRetries is the terminal state after the retry budget is
	// spent on retryable failures.
	KindExhaustedRetries ErrorKind = "exhausted_retries"
)

// Retryable reports whether a failure of this kind may be attempted again.
// Timeouts, network failures and 5xx responses are transient; validation
// and 4xx failures are not.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindTimeout, KindNetworkError, KindServerError:
		return true
	default:
		return false
	}
}

// Page is the payload of a successful fetch.
type Page struct {
	StatusCode int       `json:"status_code"`
	Body       []byte    `json:"body"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// Fault is the payload of a failed fetch.
type Fault struct {
	Kind       ErrorKind `json:"kind"`
	StatusCode int       `json:"status_code,omitempty"`
	Message    string    `json:"message"`
}

func (f *Fault) String() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", f.Kind, f.StatusCode, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Outcome is the result of fetching one identifier: exactly one of Page or
// Fault is set. Scrape never returns a Go error for ordinary failures;
// callers branch on OK and handle both variants.
type Outcome struct {
	Identifier string `json:"identifier"`
	Page       *Page  `json:"page,omitempty"`
	Fault      *Fault `json:"fault,omitempty"`
}

// OK reports whether the outcome is the success variant.
func (o Outcome) OK() bool {
	return o.Page != nil
}

// Success builds the success variant of an outcome.
func Success(identifier string, page Page) Outcome {
	return Outcome{
		Identifier: identifier,
		Page:       &page,
	}
}

// Failure builds the failure variant of an outcome.
func Failure(identifier string, kind ErrorKind, statusCode int, message string) Outcome {
	return Outcome{
		Identifier: identifier,
		Fault: &Fault{
			Kind:       kind,
			StatusCode: statusCode,
			Message:    message,
		},
	}
}
