package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dateLayouts are tried before falling back to fuzzy parsing; these cover
// the formats the scrapers actually produce.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// datePrefixes are label fragments scrapers often leave attached to dates.
var datePrefixes = []string{
	"deadline:", "deadline", "due:", "due", "apply by", "by",
	"application deadline:", "applications due",
}

// dateInText pulls a date-looking substring out of surrounding prose.
var dateInText = regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})`)

// Date parses a loosely formatted date into its ISO form (YYYY-MM-DD) and a
// display form ("January 15, 2025", no leading zero on the day).
func Date(raw string) (string, string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", fmt.Errorf("empty date")
	}

	lower := strings.ToLower(s)
	for _, prefix := range datePrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			lower = strings.ToLower(s)
		}
	}

	if t, ok := parseDate(s); ok {
		return format(t)
	}

	// Last resort: pick a date-shaped substring out of surrounding text.
	if m := dateInText.FindString(s); m != "" {
		if t, ok := parseDate(m); ok {
			return format(t)
		}
	}

	return "", "", fmt.Errorf("unparseable date: %q", raw)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func format(t time.Time) (string, string, error) {
	return t.Format("2006-01-02"), t.Format("January 2, 2006"), nil
}
