// Package urlparse splits a raw, scheme-qualified URL into the components
// the lookup commands report on.
package urlparse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/B3RT1337/lookup-bot/internal/apperr"
)

// ErrInvalidURL is returned for any input that is not an absolute URL with a
// host. Finer parse failures are deliberately not distinguished.
var ErrInvalidURL = fmt.Errorf("%w: invalid URL format", apperr.ErrInvalidInput)

// URL holds the parsed components of an absolute URL.
type URL struct {
	// Protocol is the scheme followed by a colon, e.g. "https:".
	Protocol string `json:"protocol"`
	Hostname string `json:"hostname"`
	// Path is the escaped path; "/" when the URL has none.
	Path string `json:"path"`
	// Query is the raw query string including the leading "?", or empty.
	Query string `json:"query"`
}

// Parse parses raw strictly: a scheme and a non-empty host are required.
func Parse(raw string) (*URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	p := &URL{
		Protocol: u.Scheme + ":",
		Hostname: u.Hostname(),
		Path:     u.EscapedPath(),
	}
	if p.Path == "" {
		p.Path = "/"
	}
	if u.RawQuery != "" {
		p.Query = "?" + u.RawQuery
	}
	return p, nil
}

// HasHTTPScheme reports whether s starts with http:// or https://.
func HasHTTPScheme(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
