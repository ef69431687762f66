package fastparser

import "strings"

// URL is a request target split into its parts. Path is the host string when
// the target has no path segment ("https://example.com" -> Path "example.com").
type URL struct {
	Raw      string
	Scheme   string
	Host     string
	Path     string
	Query    string
	Fragment string
}

// ParseURL decomposes a target without validating it.
func ParseURL(raw string) URL {
	u := URL{Raw: raw}
	rest := raw

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}

	// A "://" only counts as the scheme separator before any '/' or '?'.
	if i := strings.Index(rest, "://"); i > 0 && !strings.ContainsAny(rest[:i], "/?") {
		u.Scheme = rest[:i]
		rest = rest[i+3:]
	}

	end := strings.IndexAny(rest, "/?")
	if end < 0 {
		u.Host = rest
		u.Path = rest
		return u
	}

	u.Host = rest[:end]
	rest = rest[end:]
	if rest[0] == '?' {
		u.Path = u.Host
		u.Query = rest[1:]
		return u
	}

	u.Path, u.Query, _ = strings.Cut(rest, "?")
	return u
}
