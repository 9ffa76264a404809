package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_ShouldWait_zero_for_unseen_host(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, frontier.Config{MaxPages: 10, Delay: time.Second})

	assert.Zero(t, c.ShouldWait("http://a.com/first"))
}

func TestCrawler_ShouldWait_after_recent_request(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, frontier.Config{MaxPages: 10, Delay: 200 * time.Millisecond})

	c.RecordResult(&frontier.Result{URL: "http://a.com/1", Status: frontier.StatusSuccess})

	wait := c.ShouldWait("http://a.com/2")
	assert.Greater(t, wait, time.Duration(0))
	assert.LessOrEqual(t, wait, 200*time.Millisecond)

	// A different host is unaffected.
	assert.Zero(t, c.ShouldWait("http://b.com/1"))

	time.Sleep(220 * time.Millisecond)
	assert.Zero(t, c.ShouldWait("http://a.com/2"))
}

func TestCrawler_ShouldWait_uses_robots_crawl_delay_when_larger(t *testing.T) {
	t.Parallel()

	c := newCrawler(t, frontier.Config{MaxPages: 10, Delay: 10 * time.Millisecond})
	c.SetRobotsPolicy("a.com", &frontier.RobotsPolicy{CrawlDelay: 500 * time.Millisecond})

	c.RecordResult(&frontier.Result{URL: "http://a.com/1", Status: frontier.StatusSuccess})

	// Robots crawl-delay (500ms) dominates the configured 10ms delay.
	wait := c.ShouldWait("http://a.com/2")
	assert.Greater(t, wait, 200*time.Millisecond)
}

func TestDomainLimiter_rate_limits_per_domain(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(20) // 50ms between requests
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "a.com"))
	require.NoError(t, limiter.Wait(ctx, "a.com"))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}

func TestDomainLimiter_domains_are_independent(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(1)
	ctx := context.Background()

	// First request per domain is immediate.
	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "a.com"))
	require.NoError(t, limiter.Wait(ctx, "b.com"))
	require.NoError(t, limiter.Wait(ctx, "c.com"))

	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestDomainLimiter_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	limiter := crawl.NewDomainLimiter(0.1) // 10s between requests
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "a.com"))
	assert.Error(t, limiter.Wait(ctx, "a.com"))
}
