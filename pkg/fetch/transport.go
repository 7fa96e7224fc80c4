package fetch

import (
	"context"
	"io"
	"net/http"
)

// Response is the minimal view of one completed network request the engine
// works with. The engine never inspects transport internals beyond it.
type Response struct {
	StatusCode int
	Body       []byte
}

// Transport performs one network fetch. It is the single collaborator
// contract the engine consumes; anything offering this operation works,
// whether the default HTTP client, a recording stub in tests, or a
// custom client.
//
// RoundTrip returns an error only for transport-level failures (connection
// refused, DNS, deadline). Error statuses come back as a Response; the
// engine classifies them.
type Transport interface {
	RoundTrip(ctx context.Context, identifier string, headers map[string]string) (*Response, error)
}

// HTTPTransport is the default Transport on net/http. The per-attempt
// deadline arrives through ctx, so the underlying client carries no
// timeout of its own.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates the default transport.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{},
	}
}

// RoundTrip issues a GET for the identifier with the given headers.
func (t *HTTPTransport) RoundTrip(ctx context.Context, identifier string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identifier, nil)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
