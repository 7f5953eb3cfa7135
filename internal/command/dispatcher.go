package command

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/B3RT1337/lookup-bot/internal/apperr"
	"github.com/B3RT1337/lookup-bot/internal/metrics"
	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/services/dns"
	"github.com/B3RT1337/lookup-bot/internal/urlparse"
)

// RecordFetcher resolves DNS records and forward addresses. *dns.Service implements it.
type RecordFetcher interface {
	Run(ctx context.Context, host string) *dns.Result
	ResolveAddress(ctx context.Context, host string) (string, error)
}

// SubdomainEnumerator lists subdomains of a domain.
// *hackertarget.Service and *crtsh.Service implement it.
type SubdomainEnumerator interface {
	Name() string
	Run(ctx context.Context, domain string) (*services.Subdomains, error)
}

// IPDetailsFetcher returns geolocation details for an IP address.
// *ipinfo.Service and *geoip.Service implement it.
type IPDetailsFetcher interface {
	Name() string
	Run(ctx context.Context, ip string) (*services.IPDetails, error)
}

// Dispatcher routes commands to the lookup services. It holds no per-request
// state and is safe for concurrent use.
type Dispatcher struct {
	records    RecordFetcher
	subdomains SubdomainEnumerator
	ipDetails  IPDetailsFetcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a Dispatcher over the given services.
func New(records RecordFetcher, subdomains SubdomainEnumerator, ipDetails IPDetailsFetcher, m *metrics.Metrics, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		records:    records,
		subdomains: subdomains,
		ipDetails:  ipDetails,
		metrics:    m,
		logger:     logger,
	}
}

// Parse splits a command line into its verb and first argument. Extra
// arguments are ignored. An empty line or a verb other than the four known
// ones yields an error wrapping apperr.ErrUnknownCommand.
func Parse(command string) (verb, arg string, err error) {
	fields := strings.Fields(command)
	if len(fields) > 0 {
		verb = fields[0]
	}
	if len(fields) > 1 {
		arg = fields[1]
	}
	switch verb {
	case VerbHelp, VerbLookup, VerbGetSub, VerbIPLookup:
		return verb, arg, nil
	}
	return verb, arg, fmt.Errorf("%w: %q", apperr.ErrUnknownCommand, verb)
}

// Handle runs a single command line. The first whitespace-separated token is
// the verb; only the first argument after it is consulted.
func (d *Dispatcher) Handle(ctx context.Context, command string) Result {
	verb, arg, err := Parse(command)
	if errors.Is(err, apperr.ErrUnknownCommand) {
		d.logger.Debug("unknown command", "error", err)
		d.metrics.ObserveCommand("unknown", false)
		return fail(msgUnknown)
	}

	var res Result
	switch verb {
	case VerbHelp:
		res = ok(helpMessage)
	case VerbLookup:
		res = d.lookup(ctx, arg)
	case VerbGetSub:
		res = d.getSub(ctx, arg)
	case VerbIPLookup:
		res = d.ipLookup(ctx, arg)
	}
	d.metrics.ObserveCommand(verb, res.Success)
	return res
}

func (d *Dispatcher) lookup(ctx context.Context, raw string) Result {
	if raw == "" {
		return fail(msgLookupUsage)
	}
	target, err := urlparse.Parse(raw)
	if err != nil {
		return fail(msgInvalidURL)
	}

	lookupFailed := func(err error) Result {
		d.logger.Warn("lookup failed", "url", raw, "error", err)
		return fail(fmt.Sprintf("⚠️ Error during lookup for URL: %s. %s", esc(raw), esc(err.Error())))
	}

	start := time.Now()
	addr, err := d.records.ResolveAddress(ctx, target.Hostname)
	d.metrics.ObserveCollaborator(dns.Name, err, time.Since(start))
	if err != nil {
		return lookupFailed(err)
	}

	details, err := d.fetchIPDetails(ctx, addr)
	if err != nil {
		return lookupFailed(err)
	}

	start = time.Now()
	records := d.records.Run(ctx, target.Hostname)
	var recordsErr error
	if len(records.Errors) > 0 {
		recordsErr = fmt.Errorf("%w: %d record lookups failed for %q", services.ErrRequestFailed, len(records.Errors), target.Hostname)
	}
	d.metrics.ObserveCollaborator(dns.Name, recordsErr, time.Since(start))

	query := target.Query
	if query == "" {
		query = "None"
	}
	return ok(fmt.Sprintf(lookupTemplate,
		esc(raw),
		esc(target.Protocol),
		esc(target.Hostname),
		esc(target.Path),
		esc(query),
		esc(addr),
		esc(details.City), esc(details.Region), esc(details.Country),
		esc(records.Joined(dns.KindA)),
		esc(records.Joined(dns.KindAAAA)),
		esc(records.Joined(dns.KindMX)),
	))
}

func (d *Dispatcher) getSub(ctx context.Context, domain string) Result {
	if domain == "" {
		return fail(msgGetSubUsage)
	}
	if urlparse.HasHTTPScheme(domain) {
		target, err := urlparse.Parse(domain)
		if err != nil {
			return fail(msgInvalidURL)
		}
		domain = target.Hostname
	}

	start := time.Now()
	result, err := d.subdomains.Run(ctx, domain)
	d.metrics.ObserveCollaborator(d.subdomains.Name(), err, time.Since(start))
	if err != nil {
		d.logger.Warn("subdomain lookup failed", "domain", domain, "error", err)
		return fail(fmt.Sprintf("Unable to fetch subdomains for %s. %s", esc(domain), esc(err.Error())))
	}

	body := msgNoSubdomains
	if !result.IsEmpty() {
		escaped := make([]string, len(result.Subdomains))
		for i, sub := range result.Subdomains {
			escaped[i] = esc(sub)
		}
		body = strings.Join(escaped, "<br>")
	}
	return ok(fmt.Sprintf("<b>Subdomains for %s:</b><br>\n%s", esc(domain), body))
}

func (d *Dispatcher) ipLookup(ctx context.Context, ip string) Result {
	if ip == "" {
		return fail(msgIPLookupUsage)
	}

	details, err := d.fetchIPDetails(ctx, ip)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidInput) {
			d.logger.Warn("IP lookup failed", "ip", ip, "error", err)
		}
		return fail(fmt.Sprintf("Unable to fetch details for IP: %s. %s", esc(ip), esc(err.Error())))
	}

	return ok(fmt.Sprintf(ipLookupTemplate,
		esc(details.IP),
		esc(details.Hostname),
		esc(details.City),
		esc(details.Region),
		esc(details.Country),
		esc(details.Coordinates),
		esc(details.Timezone),
		esc(details.PostalCode),
		esc(details.Organization),
		esc(details.Network),
	))
}

func (d *Dispatcher) fetchIPDetails(ctx context.Context, ip string) (*services.IPDetails, error) {
	start := time.Now()
	details, err := d.ipDetails.Run(ctx, ip)
	d.metrics.ObserveCollaborator(d.ipDetails.Name(), err, time.Since(start))
	return details, err
}

func esc(s string) string {
	return html.EscapeString(s)
}
