package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateIdentifier checks and normalizes a raw fetch target. It is a pure
// function: no network access, same input always yields the same verdict.
//
// Accepted inputs parse as absolute URLs with scheme http or https. The
// normalized form lowercases scheme and host, drops the default port and
// the fragment, and keeps path and query untouched. Two spellings of the
// same resource share one cache entry, while distinct query strings stay
// distinct.
func ValidateIdentifier(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("identifier is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("identifier does not parse as a URL: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("identifier scheme %q is not http or https", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("identifier %q is not an absolute URL", raw)
	}

	u.Scheme = scheme
	u.Host = strings.ToLower(u.Host)

	if host, port := u.Hostname(), u.Port(); port != "" {
		if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
			u.Host = host
		}
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}
