package dns

import (
	"fmt"
	"strings"
)

// Result holds the DNS records of a single hostname as displayed to the user.
// A kind with no records holds the one-element placeholder
// "No <kind> records found"; a kind whose lookup failed holds
// "<kind> lookup failed" and the failure text is kept in Errors.
type Result struct {
	Input  string          `json:"input"`
	A      []string        `json:"a"`
	AAAA   []string        `json:"aaaa"`
	MX     []string        `json:"mx"`
	Errors map[Kind]string `json:"errors,omitempty"`
}

// Placeholder returns the display value used when kind has no records.
func Placeholder(kind Kind) string {
	return fmt.Sprintf("No %s records found", kind)
}

// FailedPlaceholder returns the display value used when the kind's lookup failed.
func FailedPlaceholder(kind Kind) string {
	return fmt.Sprintf("%s lookup failed", kind)
}

// Records returns the display values for kind.
func (r *Result) Records(kind Kind) []string {
	switch kind {
	case KindA:
		return r.A
	case KindAAAA:
		return r.AAAA
	case KindMX:
		return r.MX
	}
	return nil
}

// Joined returns the display values for kind joined by ", ".
func (r *Result) Joined(kind Kind) string {
	return strings.Join(r.Records(kind), ", ")
}

// Failed reports whether the lookup for kind failed.
func (r *Result) Failed(kind Kind) bool {
	_, ok := r.Errors[kind]
	return ok
}

func (r *Result) set(kind Kind, values []string, err error) {
	switch {
	case err != nil:
		if r.Errors == nil {
			r.Errors = make(map[Kind]string)
		}
		r.Errors[kind] = err.Error()
		values = []string{FailedPlaceholder(kind)}
	case len(values) == 0:
		values = []string{Placeholder(kind)}
	}

	switch kind {
	case KindA:
		r.A = values
	case KindAAAA:
		r.AAAA = values
	case KindMX:
		r.MX = values
	}
}
