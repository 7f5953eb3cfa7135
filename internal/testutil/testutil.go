// Package testutil provides shared test helpers for service unit tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"net"

	"github.com/B3RT1337/lookup-bot/internal/services"
)

// MockResolver implements services.DNSResolverInterface for testing.
// Each field is a function so tests can set only the methods they need;
// unset methods return no records and no error.
type MockResolver struct {
	LookupIPFn     func(ctx context.Context, network, host string) ([]net.IP, error)
	LookupMXFn     func(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddrFn func(ctx context.Context, host string) ([]net.IPAddr, error)
}

var _ services.DNSResolverInterface = (*MockResolver)(nil)

// LookupIP implements DNSResolverInterface.
func (m *MockResolver) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	if m.LookupIPFn != nil {
		return m.LookupIPFn(ctx, network, host)
	}
	return nil, nil
}

// LookupMX implements DNSResolverInterface.
func (m *MockResolver) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	if m.LookupMXFn != nil {
		return m.LookupMXFn(ctx, name)
	}
	return nil, nil
}

// LookupIPAddr implements DNSResolverInterface.
func (m *MockResolver) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	if m.LookupIPAddrFn != nil {
		return m.LookupIPAddrFn(ctx, host)
	}
	return nil, nil
}

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
