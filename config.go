package frontier

import "time"

// Default configuration values used when the corresponding Config field
// is zero.
const (
	DefaultUserAgent = "frontier/1.0"
	DefaultTimeout   = 10 * time.Second
)

// Config holds the immutable crawl configuration supplied when a
// crawler engine is constructed.
type Config struct {
	// MaxPages bounds the total number of fetch attempts recorded.
	MaxPages int

	// MaxDepth bounds link expansion: links found at MaxDepth are not
	// enqueued. Seeds are always depth 0.
	MaxDepth int

	// Delay is the minimum interval between requests to the same host.
	// A cached robots crawl-delay takes precedence when larger.
	Delay time.Duration

	// RespectRobots enables robots.txt rule evaluation for hosts with a
	// cached policy. Hosts without a cached policy are never blocked.
	RespectRobots bool

	// AllowedDomains restricts the crawl to the listed hosts.
	// Empty means any host is in scope.
	AllowedDomains []string

	// ExcludedPatterns rejects any URL containing one of these
	// substrings.
	ExcludedPatterns []string

	// UserAgent identifies the crawler to servers and robots.txt groups.
	UserAgent string

	// Timeout bounds a single page fetch. Enforced by the fetcher, not
	// the engine.
	Timeout time.Duration
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	if c.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	if c.Timeout < 0 {
		return Errorf(EINVALID, "timeout must not be negative")
	}
	return nil
}
