package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeURL lowercases the scheme and host of an absolute URL and keeps
// path and query untouched, since image CDNs are case sensitive there.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}
