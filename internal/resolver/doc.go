// Package resolver builds the DNS resolver collaborator: the system resolver
// (tunnelled through a SOCKS5 proxy when one is configured, to prevent DNS
// leaks), or an Upstream that sends raw DNS messages to one name server over
// UDP/TCP or DNS-over-HTTPS.
package resolver
