package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// unicodeReplacer maps typographic characters to plain ASCII equivalents.
var unicodeReplacer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
)

// Text cleans scraped text: decodes HTML entities, strips tags, normalizes
// typographic punctuation to ASCII, drops control characters, and collapses
// whitespace. Returns "" when nothing survives cleaning.
func Text(raw string) string {
	if raw == "" {
		return ""
	}

	s := html.UnescapeString(raw)
	s = tagPattern.ReplaceAllString(s, " ")
	s = unicodeReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
