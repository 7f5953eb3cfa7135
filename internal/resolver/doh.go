package resolver

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"
)

const dnsMessageType = "application/dns-message"

// IsDoHEndpoint reports whether server names a DNS-over-HTTPS endpoint rather
// than a host[:port] name server.
func IsDoHEndpoint(server string) bool {
	return strings.HasPrefix(server, "https://")
}

// dohTransport sends RFC 8484 GET queries. Queries travel through the req
// client, so its proxy and timeout apply.
type dohTransport struct {
	client   *req.Client
	endpoint string
}

// NewDoH creates a resolver that queries endpoint, e.g.
// https://dns.quad9.net/dns-query, using client.
func NewDoH(client *req.Client, endpoint string) *Upstream {
	return &Upstream{transport: &dohTransport{client: client, endpoint: endpoint}}
}

func (d *dohTransport) Exchange(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
	// ID 0 keeps identical queries cacheable by HTTP intermediaries.
	q := m.Copy()
	q.Id = 0
	wire, err := q.Pack()
	if err != nil {
		return nil, fmt.Errorf("packing DNS query: %w", err)
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Accept", dnsMessageType).
		SetQueryParam("dns", base64.RawURLEncoding.EncodeToString(wire)).
		Get(d.endpoint)
	if err != nil {
		return nil, fmt.Errorf("DoH request: %w", err)
	}
	if !resp.IsSuccessState() {
		body := resp.String()
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		return nil, fmt.Errorf("DoH endpoint returned HTTP %d: %q", resp.StatusCode, body)
	}

	reply := new(dns.Msg)
	if err := reply.Unpack(resp.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to parse DNS response: %w", err)
	}
	return reply, nil
}

func (d *dohTransport) String() string { return d.endpoint }
