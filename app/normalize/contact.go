package normalize

import (
	"fmt"
	"strings"
)

// Email lowercases and trims a contact email. It must contain an "@" with a
// "." somewhere after it; anything else is rejected.
func Email(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty email")
	}

	at := strings.Index(s, "@")
	if at <= 0 || !strings.Contains(s[at:], ".") {
		return "", fmt.Errorf("invalid email: %q", raw)
	}

	return s, nil
}
