package dns_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3RT1337/lookup-bot/internal/services"
	"github.com/B3RT1337/lookup-bot/internal/services/dns"
	"github.com/B3RT1337/lookup-bot/internal/testutil"
)

func fullResolver() *testutil.MockResolver {
	return &testutil.MockResolver{
		LookupIPFn: func(_ context.Context, network, _ string) ([]net.IP, error) {
			if network == "ip4" {
				return []net.IP{net.ParseIP("93.184.216.34"), net.ParseIP("93.184.216.35")}, nil
			}
			return []net.IP{net.ParseIP("2606:2800:21f:cb07:6820:80da:af6b:8b2c")}, nil
		},
		LookupMXFn: func(_ context.Context, _ string) ([]*net.MX, error) {
			return []*net.MX{{Host: "mail.example.com.", Pref: 10}, {Host: "backup.example.com.", Pref: 20}}, nil
		},
	}
}

func TestRun_AllKinds(t *testing.T) {
	svc := dns.NewService(fullResolver(), testutil.NopLogger())
	result := svc.Run(context.Background(), "example.com")

	assert.Equal(t, "example.com", result.Input)
	assert.Equal(t, []string{"93.184.216.34", "93.184.216.35"}, result.A)
	assert.Equal(t, []string{"2606:2800:21f:cb07:6820:80da:af6b:8b2c"}, result.AAAA)
	assert.Equal(t, []string{"mail.example.com", "backup.example.com"}, result.MX)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "93.184.216.34, 93.184.216.35", result.Joined(dns.KindA))
}

func TestRun_EmptyKindsUsePlaceholder(t *testing.T) {
	svc := dns.NewService(&testutil.MockResolver{}, testutil.NopLogger())
	result := svc.Run(context.Background(), "example.com")

	assert.Equal(t, []string{"No A records found"}, result.A)
	assert.Equal(t, []string{"No AAAA records found"}, result.AAAA)
	assert.Equal(t, []string{"No MX records found"}, result.MX)
	assert.Empty(t, result.Errors)
}

func TestRun_NotFoundIsEmpty(t *testing.T) {
	notFound := &net.DNSError{Err: "no such host", Name: "example.com", IsNotFound: true}
	resolver := fullResolver()
	resolver.LookupMXFn = func(_ context.Context, _ string) ([]*net.MX, error) {
		return nil, notFound
	}

	svc := dns.NewService(resolver, testutil.NopLogger())
	result := svc.Run(context.Background(), "example.com")

	assert.Equal(t, []string{dns.Placeholder(dns.KindMX)}, result.MX)
	assert.False(t, result.Failed(dns.KindMX))
	assert.Len(t, result.A, 2)
}

func TestRun_IPLiteralHost(t *testing.T) {
	tests := []struct {
		host string
		a    []string
		aaaa []string
	}{
		{"93.184.216.34", []string{"93.184.216.34"}, []string{dns.Placeholder(dns.KindAAAA)}},
		{"2001:db8::1", []string{dns.Placeholder(dns.KindA)}, []string{"2001:db8::1"}},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			var calls atomic.Int32
			resolver := &testutil.MockResolver{
				LookupIPFn: func(_ context.Context, _, _ string) ([]net.IP, error) {
					calls.Add(1)
					return nil, &net.AddrError{Err: "no suitable address found", Addr: tt.host}
				},
				LookupMXFn: func(_ context.Context, _ string) ([]*net.MX, error) {
					calls.Add(1)
					return nil, errors.New("unexpected MX query")
				},
			}

			result := dns.NewService(resolver, testutil.NopLogger()).Run(context.Background(), tt.host)
			assert.Equal(t, tt.a, result.A)
			assert.Equal(t, tt.aaaa, result.AAAA)
			assert.Equal(t, []string{dns.Placeholder(dns.KindMX)}, result.MX)
			assert.Empty(t, result.Errors)
			assert.Zero(t, calls.Load(), "IP literals must not reach the resolver")
		})
	}
}

func TestRun_MissingFamilyIsEmpty(t *testing.T) {
	// A name served from /etc/hosts with only an IPv4 entry.
	resolver := fullResolver()
	resolver.LookupIPFn = func(_ context.Context, network, host string) ([]net.IP, error) {
		if network == "ip6" {
			return nil, &net.AddrError{Err: "no suitable address found", Addr: host}
		}
		return []net.IP{net.ParseIP("10.0.0.5")}, nil
	}

	result := dns.NewService(resolver, testutil.NopLogger()).Run(context.Background(), "vm")
	assert.Equal(t, []string{"10.0.0.5"}, result.A)
	assert.Equal(t, []string{dns.Placeholder(dns.KindAAAA)}, result.AAAA)
	assert.False(t, result.Failed(dns.KindAAAA))
	assert.Empty(t, result.Errors)
}

func TestRun_FailureIsolatedPerKind(t *testing.T) {
	resolver := fullResolver()
	resolver.LookupIPFn = func(_ context.Context, network, _ string) ([]net.IP, error) {
		if network == "ip6" {
			return nil, &net.DNSError{Err: "server misbehaving", Name: "example.com", IsTemporary: true}
		}
		return []net.IP{net.ParseIP("93.184.216.34")}, nil
	}

	svc := dns.NewService(resolver, testutil.NopLogger())
	result := svc.Run(context.Background(), "example.com")

	assert.Equal(t, []string{"93.184.216.34"}, result.A)
	assert.Equal(t, []string{"AAAA lookup failed"}, result.AAAA)
	assert.Equal(t, []string{"mail.example.com", "backup.example.com"}, result.MX)
	require.True(t, result.Failed(dns.KindAAAA))
	assert.Contains(t, result.Errors[dns.KindAAAA], "server misbehaving")
	assert.False(t, result.Failed(dns.KindA))
}

func TestRun_QueriesEachKindOnce(t *testing.T) {
	var ipCalls, mxCalls atomic.Int32
	resolver := &testutil.MockResolver{
		LookupIPFn: func(_ context.Context, _, host string) ([]net.IP, error) {
			assert.Equal(t, "example.org", host)
			ipCalls.Add(1)
			return nil, nil
		},
		LookupMXFn: func(_ context.Context, host string) ([]*net.MX, error) {
			assert.Equal(t, "example.org", host)
			mxCalls.Add(1)
			return nil, nil
		},
	}

	dns.NewService(resolver, testutil.NopLogger()).Run(context.Background(), "example.org")
	assert.Equal(t, int32(2), ipCalls.Load())
	assert.Equal(t, int32(1), mxCalls.Load())
}

func TestResolveAddress(t *testing.T) {
	resolver := &testutil.MockResolver{
		LookupIPAddrFn: func(_ context.Context, host string) ([]net.IPAddr, error) {
			assert.Equal(t, "example.com", host)
			return []net.IPAddr{{IP: net.ParseIP("2606:2800:21f:cb07:6820:80da:af6b:8b2c")}, {IP: net.ParseIP("93.184.216.34")}}, nil
		},
	}
	addr, err := dns.NewService(resolver, testutil.NopLogger()).ResolveAddress(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "2606:2800:21f:cb07:6820:80da:af6b:8b2c", addr)
}

func TestResolveAddress_Errors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, string) ([]net.IPAddr, error)
		want string
	}{
		{
			name: "resolver error",
			fn: func(context.Context, string) ([]net.IPAddr, error) {
				return nil, errors.New("lookup example.invalid: no such host")
			},
			want: "no such host",
		},
		{
			name: "no addresses",
			fn: func(context.Context, string) ([]net.IPAddr, error) {
				return nil, nil
			},
			want: "no addresses returned",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := dns.NewService(&testutil.MockResolver{LookupIPAddrFn: tc.fn}, testutil.NopLogger())
			addr, err := svc.ResolveAddress(context.Background(), "example.invalid")
			require.Error(t, err)
			assert.ErrorIs(t, err, services.ErrRequestFailed)
			assert.Contains(t, err.Error(), tc.want)
			assert.Empty(t, addr)
		})
	}
}

func TestService_Name(t *testing.T) {
	assert.Equal(t, "dns", dns.NewService(&testutil.MockResolver{}, testutil.NopLogger()).Name())
}
