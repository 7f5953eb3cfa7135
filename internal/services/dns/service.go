// Package dns resolves the address and mail-exchange records of a hostname
// through the resolver collaborator.
package dns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/services"
)

// Name is the service identifier.
const Name = "dns"

// Kind is a DNS record type fetched by the service.
type Kind string

// Record kinds fetched by Run, in display order.
const (
	KindA    Kind = "A"
	KindAAAA Kind = "AAAA"
	KindMX   Kind = "MX"
)

// Service performs DNS lookups using the injected resolver.
type Service struct {
	resolver services.DNSResolverInterface
	logger   *slog.Logger
}

// NewService creates a new DNS service with the given resolver and logger.
func NewService(resolver services.DNSResolverInterface, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return Name }

// Run fetches A, AAAA and MX records for host concurrently. It never fails:
// each kind is resolved independently, so one resolver error only affects
// its own kind and is reported in Result.Errors.
func (s *Service) Run(ctx context.Context, host string) *Result {
	kinds := []Kind{KindA, KindAAAA, KindMX}
	values := make([][]string, len(kinds))
	errs := make([]error, len(kinds))

	var wg sync.WaitGroup
	for i, kind := range kinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			values[i], errs[i] = s.lookup(ctx, kind, host)
		}()
	}
	wg.Wait()

	result := &Result{Input: output.StripANSI(host)}
	for i, kind := range kinds {
		result.set(kind, values[i], errs[i])
		if errs[i] != nil {
			s.logger.Warn("DNS lookup failed", "kind", kind, "host", host, "error", errs[i])
		}
	}
	return result
}

// ResolveAddress performs a forward lookup and returns the first address the
// resolver yields, whatever its family.
func (s *Service) ResolveAddress(ctx context.Context, host string) (string, error) {
	addrs, err := s.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %q: %w", services.ErrRequestFailed, host, err)
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("%w: resolving %q: no addresses returned", services.ErrRequestFailed, host)
	}
	return addrs[0].IP.String(), nil
}

func (s *Service) lookup(ctx context.Context, kind Kind, host string) ([]string, error) {
	if ip := net.ParseIP(host); ip != nil {
		return literalRecords(kind, ip), nil
	}

	var records []string
	var err error
	switch kind {
	case KindA, KindAAAA:
		network := "ip4"
		if kind == KindAAAA {
			network = "ip6"
		}
		var ips []net.IP
		ips, err = s.resolver.LookupIP(ctx, network, host)
		for _, ip := range ips {
			records = append(records, ip.String())
		}
	case KindMX:
		var mxs []*net.MX
		mxs, err = s.resolver.LookupMX(ctx, host)
		for _, mx := range mxs {
			records = append(records, output.StripANSI(strings.TrimSuffix(mx.Host, ".")))
		}
	default:
		return nil, fmt.Errorf("unsupported record kind %q", kind)
	}

	if isNotFound(err) {
		s.logger.Debug("no records", "kind", kind, "host", host)
		return nil, nil
	}
	return records, err
}

// literalRecords answers an IP literal host without the resolver: the address
// itself for its own family, nothing for the other family or MX.
func literalRecords(kind Kind, ip net.IP) []string {
	isV4 := ip.To4() != nil
	if (kind == KindA && isV4) || (kind == KindAAAA && !isV4) {
		return []string{ip.String()}
	}
	return nil
}

// isNotFound reports whether err means the name or record type does not exist,
// which is displayed as an empty record set rather than a failure. The system
// resolver reports a missing address family (IP literals, /etc/hosts entries)
// as an AddrError.
func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsNotFound
	}
	var addrErr *net.AddrError
	return errors.As(err, &addrErr)
}
