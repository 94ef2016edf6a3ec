package normalize

import (
	"fmt"
	"net/url"
	"strings"
)

// URL trims and validates a link, resolving relative links against base when
// one is supplied. A result lacking either scheme or host is rejected.
func URL(raw, base string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty URL")
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL %q: %w", raw, err)
	}

	if !u.IsAbs() && base != "" {
		b, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("failed to parse base URL %q: %w", base, err)
		}
		u = b.ResolveReference(u)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("URL missing scheme or host: %q", raw)
	}

	return u.String(), nil
}
