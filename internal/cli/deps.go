package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/imroc/req/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/B3RT1337/lookup-bot/internal/command"
	"github.com/B3RT1337/lookup-bot/internal/config"
	"github.com/B3RT1337/lookup-bot/internal/httpclient"
	"github.com/B3RT1337/lookup-bot/internal/metrics"
	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/resolver"
	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/services/crtsh"
	dnssvc "github.com/B3RT1337/lookup-bot/internal/services/dns"
	"github.com/B3RT1337/lookup-bot/internal/services/geoip"
	"github.com/B3RT1337/lookup-bot/internal/services/hackertarget"
	"github.com/B3RT1337/lookup-bot/internal/services/ipinfo"
	"github.com/B3RT1337/lookup-bot/internal/worker"
)

// deps holds fully-resolved runtime dependencies for a subcommand.
type deps struct {
	logger *slog.Logger
	cfg    *config.Config
}

// buildDeps resolves config and logger.
func buildDeps(cmd *cobra.Command, stderr io.Writer) (*deps, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &deps{cfg: cfg, logger: newLogger(stderr, cfg)}, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// newHTTPClient creates a new HTTP client configured with the proxy, user-agent,
// timeout, logger, and verbosity from the resolved config.
func (d *deps) newHTTPClient() (*req.Client, error) {
	client, err := httpclient.New(d.cfg.Proxy, d.cfg.UserAgent, d.cfg.Timeout, d.logger, d.cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP client: %w", err)
	}
	return client, nil
}

// newResolver returns a DoH resolver for an https:// DNS server, an upstream
// resolver for any other configured DNS server, otherwise the system resolver
// (tunnelled through a SOCKS5 proxy if set).
func (d *deps) newResolver(client *req.Client) (services.DNSResolverInterface, error) {
	if resolver.IsDoHEndpoint(d.cfg.DNSServer) {
		d.logger.Debug("using DNS-over-HTTPS", "endpoint", d.cfg.DNSServer)
		return resolver.NewDoH(client, d.cfg.DNSServer), nil
	}
	if d.cfg.DNSServer != "" {
		d.logger.Debug("using upstream DNS server", "server", d.cfg.DNSServer)
		return resolver.NewUpstream(d.cfg.DNSServer, d.cfg.Timeout), nil
	}
	r, err := resolver.NewResolver(d.cfg.Proxy)
	if err != nil {
		return nil, fmt.Errorf("creating DNS resolver: %w", err)
	}
	return r, nil
}

// newIPDetails picks the local GeoIP database when configured, otherwise the
// HTTP geolocation service. The returned close function is never nil.
func (d *deps) newIPDetails(client *req.Client) (command.IPDetailsFetcher, func() error, error) {
	if d.cfg.GeoIPDB != "" {
		db, err := geoip.Open(d.cfg.GeoIPDB)
		if err != nil {
			return nil, nil, err
		}
		return geoip.NewService(db, d.logger), db.Close, nil
	}
	svc := ipinfo.NewService(client, d.cfg.IPInfoURL, d.cfg.IPInfoToken, d.logger)
	return svc, func() error { return nil }, nil
}

// newSubdomains returns the configured subdomain backend.
func (d *deps) newSubdomains(client *req.Client) command.SubdomainEnumerator {
	if d.cfg.SubdomainSource == config.SourceCrtsh {
		return crtsh.NewService(client, d.cfg.CrtshURL, d.logger)
	}
	return hackertarget.NewService(client, d.cfg.SubdomainURL, d.logger)
}

// newDispatcher wires every collaborator into a command dispatcher. Callers
// must invoke the returned close function when done.
func (d *deps) newDispatcher(m *metrics.Metrics) (*command.Dispatcher, func() error, error) {
	client, err := d.newHTTPClient()
	if err != nil {
		return nil, nil, err
	}
	res, err := d.newResolver(client)
	if err != nil {
		return nil, nil, err
	}
	ipDetails, closeFn, err := d.newIPDetails(client)
	if err != nil {
		return nil, nil, err
	}

	disp := command.New(
		dnssvc.NewService(res, d.logger),
		d.newSubdomains(client),
		ipDetails,
		m,
		d.logger,
	)
	return disp, closeFn, nil
}

// resolveInputs returns the positional args joined into one command, or reads
// one command per line from stdin when no args are provided. Returns an error
// if stdin is an interactive terminal with no args.
func resolveInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return []string{joinArgs(args)}, nil
	}
	r := cmd.InOrStdin()
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // uintptr→int is safe for file descriptors; they fit in int on all supported platforms
		return nil, fmt.Errorf("no input: pass a command or pipe commands on stdin")
	}
	inputs, err := worker.ReadInputs(r)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input: stdin contained no commands")
	}
	return inputs, nil
}

// writeResult formats and writes a result to stdout.
func writeResult(stdout io.Writer, d *deps, result any) error {
	if err := output.Write(stdout, output.Format(d.cfg.Output), result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
