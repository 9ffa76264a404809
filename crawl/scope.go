package crawl

import (
	"net/url"
	"strings"

	"github.com/fwojciec/frontier"
)

// IsAllowed evaluates the scope and policy checks for a URL, in order:
// domain allow-list, exclusion patterns, then robots rules for hosts
// with a cached policy. Hosts without a cached policy are never blocked
// (fail-open): absence of robots information must not stall a crawl.
func (c *Crawler) IsAllowed(rawURL string) bool {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	allowed, _ := c.evaluateLocked(rawURL)
	return allowed
}

// evaluate is IsAllowed plus the status a driver would classify a
// rejection as.
func (c *Crawler) evaluate(rawURL string) (bool, frontier.Status) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.evaluateLocked(rawURL)
}

// evaluateLocked reports whether the URL is in scope and, when it is
// not, the status a driver would classify the skip as. Callers must
// hold state.mu.
func (c *Crawler) evaluateLocked(rawURL string) (bool, frontier.Status) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, frontier.StatusSkipped
	}

	if len(c.allowed) > 0 {
		if _, ok := c.allowed[u.Hostname()]; !ok {
			return false, frontier.StatusSkipped
		}
	}

	for _, pattern := range c.cfg.ExcludedPatterns {
		if pattern != "" && strings.Contains(rawURL, pattern) {
			return false, frontier.StatusSkipped
		}
	}

	if c.cfg.RespectRobots {
		if policy, ok := c.state.robots[u.Hostname()]; ok {
			if !robotsAllows(policy, u.Path) {
				return false, frontier.StatusRobotsBlocked
			}
		}
	}

	return true, frontier.StatusSuccess
}

// robotsAllows applies the cached policy to a path: the first matching
// disallowed prefix decides, with any allowed-path prefix match acting
// as a full override. Real robots.txt parsers use longest-prefix-match
// instead; this first-match rule is the documented contract here.
func robotsAllows(policy *frontier.RobotsPolicy, path string) bool {
	for _, disallowed := range policy.DisallowedPaths {
		if disallowed == "" || !strings.HasPrefix(path, disallowed) {
			continue
		}
		for _, allowed := range policy.AllowedPaths {
			if allowed != "" && strings.HasPrefix(path, allowed) {
				return true
			}
		}
		return false
	}
	return true
}
