package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/frontier"
	"golang.org/x/time/rate"
)

// ShouldWait returns how long a caller should delay before fetching the
// URL to respect per-host politeness. The effective delay is the larger
// of the configured delay and the host's cached robots crawl-delay,
// measured from the host's last recorded result. Advisory only: the
// engine never blocks; the caller is expected to sleep for the returned
// duration before fetching.
func (c *Crawler) ShouldWait(rawURL string) time.Duration {
	host := frontier.Host(rawURL)

	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	last, ok := c.state.lastRequest[host]
	if !ok {
		return 0
	}

	effective := c.cfg.Delay
	if policy, ok := c.state.robots[host]; ok && policy.CrawlDelay > effective {
		effective = policy.CrawlDelay
	}

	wait := effective - time.Since(last)
	if wait < 0 {
		return 0
	}
	return wait
}

// DomainLimiter provides per-domain rate limiting using token buckets.
// The Runner uses it for auxiliary traffic (robots.txt and sitemap
// fetches) that falls outside the engine's own ShouldWait accounting.
// It is safe for concurrent use.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second per domain, with a burst of 1 (no bursting).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
