package frontier

import (
	"context"
	"time"
)

// RobotsPolicy holds the parsed robots.txt rules for one host.
// The engine caches one policy per hostname and never fetches or
// parses robots.txt itself.
type RobotsPolicy struct {
	// AllowedPaths are path prefixes explicitly permitted.
	AllowedPaths []string

	// DisallowedPaths are path prefixes that block crawling unless an
	// allowed prefix also matches.
	DisallowedPaths []string

	// CrawlDelay is the host-requested minimum request interval.
	// Zero means the host requested none.
	CrawlDelay time.Duration
}

// RobotsSource retrieves the robots policy for a host.
type RobotsSource interface {
	// Policy fetches and parses robots.txt for the host.
	// Returns ENOTFOUND if the host serves no robots.txt.
	Policy(ctx context.Context, scheme, host string) (*RobotsPolicy, error)
}

// SeedSource discovers seed URLs for a crawl, for example from a
// site's sitemap.
type SeedSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
