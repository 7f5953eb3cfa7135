package output_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/B3RT1337/lookup-bot/internal/output"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string", "hello world", "hello world"},
		{"red color", "\x1b[31mred\x1b[0m", "red"},
		{"multiple sequences", "\x1b[1m\x1b[31merror\x1b[0m", "error"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.StripANSI(tc.input))
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "No subdomains found.", "No subdomains found."},
		{"bold label", "<b>Host:</b> example.com<br>", "Host: example.com"},
		{"double break keeps blank line", "<b>Title</b><br><br>\n    <b>A:</b> 1<br>", "Title\n\nA: 1"},
		{"self-closing break", "a<br/>b<BR />c", "a\nb\nc"},
		{"layout newlines collapse", "\n   first\n   line<br>\n   second\n", "first    line\nsecond"},
		{"entities unescaped", "<i>Usage:</i> a &amp; b &lt;c&gt;", "Usage: a & b <c>"},
		{"ansi removed", "\x1b[31mred\x1b[0m<br>", "red"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, output.HTMLToText(tc.input))
		})
	}
}
