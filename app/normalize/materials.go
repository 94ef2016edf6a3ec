package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// letterPatterns extract an explicit recommendation-letter count. Patterns
// are tried in order; the first match wins.
var letterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s+letters?\s+of\s+(?:recommendation|reference)`),
	regexp.MustCompile(`(?i)(\d+)\s+(?:recommendation|reference)\s+letters?`),
	regexp.MustCompile(`(?i)(one|two|three|four|five)\s+letters?\s+of\s+(?:recommendation|reference)`),
	regexp.MustCompile(`(?i)(one|two|three|four|five)\s+(?:recommendation|reference)\s+letters?`),
}

// paperPatterns extract a research-paper requirement. The matched phrase is
// kept verbatim so "job market paper + 2 additional papers" survives intact.
var paperPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)job\s+market\s+paper\s*(?:\+|and|plus)\s*\d+\s+(?:additional\s+)?papers?`),
	regexp.MustCompile(`(?i)job\s+market\s+paper`),
	regexp.MustCompile(`(?i)\d+\s+(?:research|recent|representative)\s+papers?`),
	regexp.MustCompile(`(?i)(?:research|writing)\s+samples?`),
}

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
}

// LetterCount extracts an explicit letters-of-recommendation count from
// text. The boolean reports whether any pattern matched.
func LetterCount(text string) (int, bool) {
	for _, pattern := range letterPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
		if n, ok := wordNumbers[strings.ToLower(m[1])]; ok {
			return n, true
		}
	}
	return 0, false
}

// PaperRequirement extracts a research-paper requirement phrase from text.
// The boolean reports whether any pattern matched.
func PaperRequirement(text string) (string, bool) {
	for _, pattern := range paperPatterns {
		if m := pattern.FindString(text); m != "" {
			return strings.ToLower(m), true
		}
	}
	return "", false
}
