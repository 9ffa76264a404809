package frontier

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for use as a dedup/visited key.
// The fragment is stripped and a single trailing slash is removed, so
// "http://a.com/docs/#intro" and "http://a.com/docs" share one key.
// Query parameters are not reordered and percent-encoding is left
// untouched; callers that need query-order-insensitive dedup must
// normalize upstream.
func NormalizeURL(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		rawURL = rawURL[:idx]
	}
	if strings.HasSuffix(rawURL, "/") && !strings.HasSuffix(rawURL, "://") {
		rawURL = rawURL[:len(rawURL)-1]
	}
	return rawURL
}

// Host returns the hostname of a URL, without port. Returns the empty
// string if the URL cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// ResolveLink resolves a raw href against a base URL. Returns the empty
// string if either cannot be parsed or the href has a non-HTTP scheme
// (javascript:, mailto:, tel:, data:).
func ResolveLink(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
