package services

import (
	"github.com/B3RT1337/lookup-bot/internal/apperr"
)

// ErrInvalidInput is re-exported from apperr so service callers need a single import.
var ErrInvalidInput = apperr.ErrInvalidInput

// ErrRequestFailed is re-exported from apperr so service callers need a single import.
var ErrRequestFailed = apperr.ErrRequestFailed

// NotAvailable is rendered for any geolocation field the source did not provide.
const NotAvailable = "N/A"

// IPDetails is the geolocation summary for a single IP address or host.
// Every field holds NotAvailable when the source has no value for it.
type IPDetails struct {
	IP           string `json:"ip"`
	Hostname     string `json:"hostname"`
	City         string `json:"city"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	Coordinates  string `json:"loc"`
	Organization string `json:"org"`
	Timezone     string `json:"timezone"`
	PostalCode   string `json:"postal"`
	Network      string `json:"network"`
}

// FillDefaults replaces every empty field with NotAvailable.
func (d *IPDetails) FillDefaults() {
	for _, f := range []*string{
		&d.IP, &d.Hostname, &d.City, &d.Region, &d.Country,
		&d.Coordinates, &d.Organization, &d.Timezone, &d.PostalCode, &d.Network,
	} {
		if *f == "" {
			*f = NotAvailable
		}
	}
}

// Subdomains holds the subdomains a source reported for a single domain.
type Subdomains struct {
	Input      string   `json:"input"`
	Subdomains []string `json:"subdomains,omitempty"`
}

// IsEmpty reports whether no subdomains were found.
func (r *Subdomains) IsEmpty() bool {
	return len(r.Subdomains) == 0
}
