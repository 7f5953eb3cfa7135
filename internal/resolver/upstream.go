package resolver

import (
	"context"
	"errors"
	"net"
	"sort"
	"time"

	"github.com/miekg/dns"
)

// transport carries one DNS message to a name server and back.
type transport interface {
	Exchange(ctx context.Context, m *dns.Msg) (*dns.Msg, error)
	String() string
}

// Upstream resolves names by sending raw DNS messages to a single name
// server, over UDP/TCP (NewUpstream) or DNS-over-HTTPS (NewDoH).
type Upstream struct {
	transport transport
}

// wireTransport tries UDP first and retries truncated answers over TCP.
type wireTransport struct {
	server string
	udp    *dns.Client
	tcp    *dns.Client
}

func (w *wireTransport) Exchange(ctx context.Context, m *dns.Msg) (*dns.Msg, error) {
	resp, _, err := w.udp.ExchangeContext(ctx, m, w.server)
	if err == nil && resp.Truncated {
		resp, _, err = w.tcp.ExchangeContext(ctx, m, w.server)
	}
	return resp, err
}

func (w *wireTransport) String() string { return w.server }

// NewUpstream creates a resolver for server, given as host or host:port
// (port 53 when omitted). A zero timeout keeps the miekg/dns defaults.
func NewUpstream(server string, timeout time.Duration) *Upstream {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &Upstream{transport: &wireTransport{
		server: server,
		udp:    &dns.Client{Net: "udp", Timeout: timeout},
		tcp:    &dns.Client{Net: "tcp", Timeout: timeout},
	}}
}

// Server returns the name server queried.
func (u *Upstream) Server() string { return u.transport.String() }

// LookupIP returns the A ("ip4"), AAAA ("ip6") or both ("ip") addresses of host.
func (u *Upstream) LookupIP(ctx context.Context, network, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	var qtypes []uint16
	switch network {
	case "ip4":
		qtypes = []uint16{dns.TypeA}
	case "ip6":
		qtypes = []uint16{dns.TypeAAAA}
	case "ip":
		qtypes = []uint16{dns.TypeA, dns.TypeAAAA}
	default:
		return nil, &net.DNSError{Err: "unsupported network " + network, Name: host, Server: u.Server()}
	}

	var ips []net.IP
	var firstErr error
	for _, qtype := range qtypes {
		answers, err := u.exchange(ctx, host, qtype)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, rr := range answers {
			switch v := rr.(type) {
			case *dns.A:
				ips = append(ips, v.A)
			case *dns.AAAA:
				ips = append(ips, v.AAAA)
			}
		}
	}
	if len(ips) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, u.notFound(host)
	}
	return ips, nil
}

// LookupIPAddr returns the A and AAAA addresses of host, IPv4 first.
func (u *Upstream) LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := u.LookupIP(ctx, "ip", host)
	if err != nil {
		return nil, err
	}
	addrs := make([]net.IPAddr, len(ips))
	for i, ip := range ips {
		addrs[i] = net.IPAddr{IP: ip}
	}
	return addrs, nil
}

// LookupMX returns the MX records of name sorted by preference.
func (u *Upstream) LookupMX(ctx context.Context, name string) ([]*net.MX, error) {
	answers, err := u.exchange(ctx, name, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	var mxs []*net.MX
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			mxs = append(mxs, &net.MX{Host: mx.Mx, Pref: mx.Preference})
		}
	}
	if len(mxs) == 0 {
		return nil, u.notFound(name)
	}
	sort.SliceStable(mxs, func(i, j int) bool { return mxs[i].Pref < mxs[j].Pref })
	return mxs, nil
}

func (u *Upstream) exchange(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.SetEdns0(4096, false)

	resp, err := u.transport.Exchange(ctx, msg)
	if err != nil {
		var netErr net.Error
		timeout := errors.As(err, &netErr) && netErr.Timeout()
		return nil, &net.DNSError{Err: err.Error(), Name: name, Server: u.Server(), IsTimeout: timeout, IsTemporary: timeout}
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		return resp.Answer, nil
	case dns.RcodeNameError:
		return nil, u.notFound(name)
	default:
		return nil, &net.DNSError{
			Err:         "server returned " + dns.RcodeToString[resp.Rcode],
			Name:        name,
			Server:      u.Server(),
			IsTemporary: resp.Rcode == dns.RcodeServerFailure,
		}
	}
}

func (u *Upstream) notFound(name string) *net.DNSError {
	return &net.DNSError{Err: "no such host", Name: name, Server: u.Server(), IsNotFound: true}
}
