// Package validate provides shared input validation helpers.
package validate

import (
	"regexp"
	"strings"
)

// labelsRegexp matches dot-separated LDH labels ending in an alphabetic TLD.
var labelsRegexp = regexp.MustCompile(`^([a-zA-Z0-9_]([a-zA-Z0-9\-_]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)

// IsDomain reports whether s is a hostname with at least two labels. A single
// trailing dot is accepted. Underscores are allowed since service names such
// as _dmarc.example.com appear in host search results.
func IsDomain(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	return labelsRegexp.MatchString(s)
}
