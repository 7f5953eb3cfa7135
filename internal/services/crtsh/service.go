// Package crtsh enumerates subdomains from certificate transparency logs via
// the crt.sh JSON API.
package crtsh

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/validate"
)

// Name is the service identifier.
const Name = "crtsh"

// DefaultURL is the crt.sh search endpoint. The query uses the `%.domain`
// wildcard form to find all subdomains.
const DefaultURL = "https://crt.sh/"

// entry represents a single record returned by the crt.sh JSON API.
type entry struct {
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
}

// Service queries the crt.sh certificate transparency log API.
type Service struct {
	client  *req.Client
	baseURL string
	logger  *slog.Logger
}

// NewService creates a new crt.sh service. An empty baseURL selects DefaultURL.
func NewService(client *req.Client, baseURL string, logger *slog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Service{client: client, baseURL: baseURL, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// Run queries crt.sh for subdomains of domain. Results are de-duplicated and
// sorted; wildcards, the domain itself and foreign names are dropped.
func (s *Service) Run(ctx context.Context, domain string) (*services.Subdomains, error) {
	domain = output.StripANSI(domain)
	if !validate.IsDomain(domain) {
		return nil, fmt.Errorf("%w: must be a valid domain name: %q", services.ErrInvalidInput, domain)
	}

	var entries []entry
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"q": "%." + domain, "output": "json"}).
		SetSuccessResult(&entries).
		Get(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: crt.sh request error for %q: %w", services.ErrRequestFailed, domain, err)
	}
	if !resp.IsSuccessState() {
		body := resp.String()
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		return nil, fmt.Errorf("%w: crt.sh returned HTTP %d for %q: %q", services.ErrRequestFailed, resp.StatusCode, domain, body)
	}

	result := &services.Subdomains{Input: domain}
	seen := make(map[string]struct{})
	for _, e := range entries {
		for _, name := range []string{e.CommonName, e.NameValue} {
			for _, sub := range strings.Split(name, "\n") {
				sub = strings.ToLower(output.StripANSI(strings.TrimSpace(sub)))
				if sub == "" || !s.isSubdomain(sub, domain) {
					continue
				}
				if _, ok := seen[sub]; !ok {
					seen[sub] = struct{}{}
					result.Subdomains = append(result.Subdomains, sub)
				}
			}
		}
	}
	sort.Strings(result.Subdomains)
	s.logger.Debug("crt.sh search complete", "domain", domain, "subdomains", len(result.Subdomains))
	return result, nil
}

func (s *Service) isSubdomain(sub, domain string) bool {
	switch {
	case strings.HasPrefix(sub, "*"):
		s.logger.Debug("crt.sh: skipping wildcard", "sub", sub, "domain", domain)
		return false
	case sub == domain:
		return false
	case !strings.HasSuffix(sub, "."+domain):
		s.logger.Debug("crt.sh: skipping foreign domain", "sub", sub, "domain", domain)
		return false
	case !validate.IsDomain(sub):
		s.logger.Debug("crt.sh: skipping invalid format", "sub", sub, "domain", domain)
		return false
	}
	return true
}
