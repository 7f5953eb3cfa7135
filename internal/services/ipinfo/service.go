// Package ipinfo fetches geolocation details for an IP address from the
// ipinfo.io JSON API.
package ipinfo

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/services"
)

// Name is the service identifier.
const Name = "ipinfo"

// DefaultURL is the API base. Details are fetched from <base>/<ip>/json.
const DefaultURL = "https://ipinfo.io"

// response mirrors the fields of an ipinfo.io JSON document.
type response struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Org      string `json:"org"`
	Timezone string `json:"timezone"`
	Postal   string `json:"postal"`
	Network  string `json:"network"`
}

// Service queries the ipinfo.io API.
type Service struct {
	client  *req.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

// NewService creates a new ipinfo service. An empty baseURL selects DefaultURL;
// token is optional and sent as a bearer token when set.
func NewService(client *req.Client, baseURL, token string, logger *slog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Service{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		logger:  logger,
	}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// Run fetches geolocation details for ip. The input is not validated;
// the API's own rejection of malformed input surfaces as ErrRequestFailed.
func (s *Service) Run(ctx context.Context, ip string) (*services.IPDetails, error) {
	var body response
	r := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&body)
	if s.token != "" {
		r.SetBearerAuthToken(s.token)
	}

	resp, err := r.Get(s.baseURL + "/" + url.PathEscape(ip) + "/json")
	if err != nil {
		return nil, fmt.Errorf("%w: ipinfo request error for %q: %w", services.ErrRequestFailed, ip, err)
	}
	if !resp.IsSuccessState() {
		b := resp.String()
		if len(b) > 200 {
			b = b[:200] + "..."
		}
		return nil, fmt.Errorf("%w: ipinfo returned HTTP %d for %q: %q", services.ErrRequestFailed, resp.StatusCode, ip, b)
	}

	details := &services.IPDetails{
		IP:           output.StripANSI(body.IP),
		Hostname:     output.StripANSI(body.Hostname),
		City:         output.StripANSI(body.City),
		Region:       output.StripANSI(body.Region),
		Country:      output.StripANSI(body.Country),
		Coordinates:  output.StripANSI(body.Loc),
		Organization: output.StripANSI(body.Org),
		Timezone:     output.StripANSI(body.Timezone),
		PostalCode:   output.StripANSI(body.Postal),
		Network:      output.StripANSI(body.Network),
	}
	details.FillDefaults()
	s.logger.Debug("ipinfo lookup complete", "ip", ip, "country", details.Country)
	return details, nil
}
