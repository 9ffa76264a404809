// Package crawl provides the crawl-frontier engine: FIFO URL
// scheduling with depth and page bounds, scope and robots policy
// checks, per-host politeness, and URL/content deduplication.
// The engine performs no I/O; an embedding driver (see Runner) fetches
// pages and feeds results back.
package crawl

import (
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/frontier"
)

// Crawler is a single crawl's scheduling and policy engine. All state
// is owned by the instance and guarded by one coarse mutex, so a pool
// of workers may drive it concurrently.
type Crawler struct {
	cfg     frontier.Config
	allowed map[string]struct{}

	state engineState
}

// New creates a Crawler with empty state. Returns EINVALID if the
// configuration is malformed.
func New(cfg frontier.Config) (*Crawler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedDomains))
	for _, d := range cfg.AllowedDomains {
		allowed[d] = struct{}{}
	}

	c := &Crawler{
		cfg:     cfg,
		allowed: allowed,
	}
	c.state.reset()
	return c, nil
}

// Config returns a copy of the crawl configuration.
func (c *Crawler) Config() frontier.Config {
	return c.cfg
}

// AddSeeds normalizes and enqueues the given URLs at depth 0, skipping
// any already seen. Returns the number of newly added URLs. Idempotent:
// re-adding a seed is a no-op.
func (c *Crawler) AddSeeds(urls []string) int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	added := 0
	for _, rawURL := range urls {
		u := frontier.NormalizeURL(rawURL)
		if u == "" || c.state.visited.contains(u) {
			continue
		}
		c.state.visited.add(u)
		c.state.queue.push(entry{url: u, depth: 0})
		added++
	}
	return added
}

// HasNext reports whether the frontier holds another URL and the page
// budget has not been exhausted.
func (c *Crawler) HasNext() bool {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.hasNextLocked()
}

func (c *Crawler) hasNextLocked() bool {
	return c.state.queue.len() > 0 && len(c.state.results) < c.cfg.MaxPages
}

// NextURL pops the head of the frontier. ok is false when the frontier
// is empty or the page budget is exhausted; that is the normal
// termination signal, not an error. The caller is responsible for the
// IsAllowed and ShouldWait checks before fetching.
func (c *Crawler) NextURL() (url string, depth int, ok bool) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	if !c.hasNextLocked() {
		return "", 0, false
	}
	e, _ := c.state.queue.pop()
	return e.url, e.depth, true
}

// FrontierSize returns the number of URLs waiting in the queue.
func (c *Crawler) FrontierSize() int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.queue.len()
}

// VisitedCount returns the number of distinct normalized URLs ever
// enqueued.
func (c *Crawler) VisitedCount() int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return c.state.visited.len()
}

// PagesCrawled returns the number of recorded fetch attempts.
func (c *Crawler) PagesCrawled() int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	return len(c.state.results)
}

// Results returns the recorded results in recording order.
func (c *Crawler) Results() []*frontier.Result {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	out := make([]*frontier.Result, len(c.state.results))
	copy(out, c.state.results)
	return out
}

// SetRobotsPolicy caches the robots policy for a host, replacing any
// existing entry. Last write wins; policies are never merged.
func (c *Crawler) SetRobotsPolicy(host string, policy *frontier.RobotsPolicy) {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.robots[host] = policy
}

// IsDuplicateContent reports whether content with this body has already
// been recorded under any URL. Pure query: the hash set only grows as a
// side effect of RecordResult.
func (c *Crawler) IsDuplicateContent(content string) bool {
	hash := HashContent(content)
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	_, ok := c.state.contentHashes[hash]
	return ok
}

// RecordResult ingests one fetch attempt: it appends the result to the
// log, stamps the host's last-request time, registers the content hash,
// and, for successful results under the depth bound, expands the
// result's links into the frontier. This is the only way the frontier
// grows after seeding.
func (c *Crawler) RecordResult(res *frontier.Result) {
	now := time.Now()

	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	c.state.results = append(c.state.results, res)

	if host := frontier.Host(res.URL); host != "" {
		c.state.lastRequest[host] = now
	}

	if res.ContentHash != "" {
		c.state.contentHashes[res.ContentHash] = struct{}{}
	}

	if res.Status != frontier.StatusSuccess || res.Depth >= c.cfg.MaxDepth {
		return
	}

	for _, href := range res.Links {
		resolved := frontier.ResolveLink(res.URL, href)
		if resolved == "" {
			continue
		}
		u := frontier.NormalizeURL(resolved)
		if c.state.visited.contains(u) {
			continue
		}
		if allowed, _ := c.evaluateLocked(u); !allowed {
			continue
		}
		c.state.visited.add(u)
		c.state.queue.push(entry{url: u, depth: res.Depth + 1})
	}
}

// Stats aggregates the engine's counters and per-status result counts.
func (c *Crawler) Stats() *frontier.Stats {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	counts := make(map[frontier.Status]int)
	for _, res := range c.state.results {
		counts[res.Status]++
	}

	return &frontier.Stats{
		PagesCrawled:        len(c.state.results),
		FrontierRemaining:   c.state.queue.len(),
		UniqueURLsSeen:      c.state.visited.len(),
		UniqueContentHashes: len(c.state.contentHashes),
		StatusCounts:        counts,
	}
}

// Clear resets all engine state to empty, as at construction.
func (c *Crawler) Clear() {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()
	c.state.reset()
}

// HashContent computes the hex xxHash digest of content, the key used
// for cross-URL duplicate detection.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
