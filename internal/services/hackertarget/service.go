// Package hackertarget enumerates subdomains through the HackerTarget
// host search API.
package hackertarget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/validate"
)

// Name is the service identifier.
const Name = "hackertarget"

// DefaultURL is the host search endpoint. The domain is sent as the "q" query parameter.
const DefaultURL = "https://api.hackertarget.com/hostsearch/"

// errorPrefixes mark plain-text error bodies the API returns with HTTP 200.
var errorPrefixes = []string{"error", "api count exceeded"}

// Service queries the host search API.
type Service struct {
	client  *req.Client
	baseURL string
	logger  *slog.Logger
}

// NewService creates a new host search service. An empty baseURL selects DefaultURL.
func NewService(client *req.Client, baseURL string, logger *slog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Service{client: client, baseURL: baseURL, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// Run queries the host search API for subdomains of domain.
// The response is one "host,ip" record per line.
func (s *Service) Run(ctx context.Context, domain string) (*services.Subdomains, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", domain).
		Get(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: host search request error for %q: %w", services.ErrRequestFailed, domain, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: host search returned HTTP %d for %q: %q",
			services.ErrRequestFailed, resp.StatusCode, domain, snippet(resp.String()))
	}

	body := strings.TrimSpace(resp.String())
	if isErrorBody(body) {
		return nil, fmt.Errorf("%w: host search rejected %q: %q", services.ErrRequestFailed, domain, snippet(body))
	}

	result := &services.Subdomains{Input: domain, Subdomains: s.parse(body)}
	s.logger.Debug("host search complete", "domain", domain, "subdomains", len(result.Subdomains))
	return result, nil
}

// parse extracts the host field of every record, dropping empty and
// duplicate entries. A first line whose host field is not a hostname is
// treated as a header.
func (s *Service) parse(body string) []string {
	var subs []string
	seen := make(map[string]struct{})
	for i, line := range strings.Split(body, "\n") {
		host, _, _ := strings.Cut(line, ",")
		host = output.StripANSI(strings.TrimSpace(host))
		if host == "" {
			continue
		}
		if i == 0 && !validate.IsDomain(host) {
			s.logger.Debug("host search: skipping header", "line", line)
			continue
		}
		if _, ok := seen[host]; ok {
			continue
		}
		seen[host] = struct{}{}
		subs = append(subs, host)
	}
	return subs
}

// isErrorBody reports whether body is one of the API's error sentences. Those
// are a single line that is neither a "host,ip" record nor a bare hostname.
func isErrorBody(body string) bool {
	if strings.ContainsAny(body, ",\n") || validate.IsDomain(body) {
		return false
	}
	lower := strings.ToLower(body)
	for _, prefix := range errorPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func snippet(body string) string {
	if len(body) > 200 {
		return body[:200] + "..."
	}
	return body
}
