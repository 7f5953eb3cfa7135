package output

import (
	"html"
	"regexp"
	"strings"
)

var (
	ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	lineBreak  = regexp.MustCompile(`(?i)<br\s*/?>`)
	markupTag  = regexp.MustCompile(`<[^>]*>`)
)

// StripANSI removes ANSI escape sequences from external data before it is displayed.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// HTMLToText converts the light markup used in command messages (bold and
// italic tags, <br> line breaks, escaped entities) into plain terminal text.
// Source newlines are layout only; <br> is the sole line separator.
func HTMLToText(s string) string {
	s = strings.NewReplacer("\r", "", "\n", " ").Replace(s)
	s = lineBreak.ReplaceAllString(s, "\n")
	s = markupTag.ReplaceAllString(s, "")
	s = StripANSI(html.UnescapeString(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
