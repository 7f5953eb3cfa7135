// Package services defines the collaborator interfaces and shared result
// types used by the lookup services and the command dispatcher.
package services

import (
	"context"
	"net"
)

// DNSResolverInterface abstracts the resolver collaborator.
// *net.Resolver satisfies this interface directly, as does resolver.Upstream.
type DNSResolverInterface interface {
	// LookupIP resolves host for network "ip4" (A) or "ip6" (AAAA).
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	// LookupIPAddr is the forward lookup; the first address is used as-is.
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}
