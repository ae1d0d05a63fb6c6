package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolver returns the backend origin, e.g. "http://localhost:7776".
// It must be cheap and must not block.
type Resolver func() string

// StaticResolver always returns origin.
func StaticResolver(origin string) Resolver {
	return func() string { return origin }
}

// NormalizeOrigin validates raw as an http(s) origin and returns it as
// scheme://host[:port] with no path or trailing slash.
func NormalizeOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("backend address is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", raw, err)
	}

	switch u.Scheme {
	case "http", "https":
	case "":
		return "", fmt.Errorf("%q has no scheme (want http:// or https://)", raw)
	default:
		return "", fmt.Errorf("unsupported scheme %q (want http or https)", u.Scheme)
	}

	if u.Host == "" || u.Hostname() == "" {
		return "", fmt.Errorf("%q has no host", raw)
	}

	if u.Path != "" && u.Path != "/" {
		return "", fmt.Errorf("%q has a path; give only the origin", raw)
	}

	return u.Scheme + "://" + u.Host, nil
}
