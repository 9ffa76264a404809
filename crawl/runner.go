package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/frontier"
	"golang.org/x/sync/errgroup"
)

// idlePoll is how long an idle worker sleeps before re-checking the
// frontier while other workers are still in flight.
const idlePoll = 25 * time.Millisecond

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Depth int
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Summary holds the outcome of a crawl run.
type Summary struct {
	Crawled int
	Saved   int
	Failed  int
	Skipped int
	Stats   *frontier.Stats
}

// Runner drives a Crawler through the standard loop: pop a URL, check
// scope and robots, honor the politeness delay, fetch, extract, and
// record the result. It implements the embedding contract the engine
// expects from its driver, with an errgroup worker pool; Concurrency 1
// reproduces the reference single-driver loop.
type Runner struct {
	Engine    *Crawler
	Fetcher   frontier.Fetcher
	Extractor frontier.Extractor

	// Converter, when set, turns extracted content HTML into markdown
	// before hashing and storage.
	Converter frontier.Converter

	// Robots, when set and the engine respects robots, is consulted
	// once per host before its first fetch.
	Robots frontier.RobotsSource

	// Store, when set, persists successful non-duplicate pages.
	Store frontier.PageStore

	// Limiter rate-limits auxiliary robots traffic.
	Limiter *DomainLimiter

	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
	Progress    ProgressFunc

	crawlID  string
	inflight atomic.Int64

	saved   atomic.Int64
	failed  atomic.Int64
	skipped atomic.Int64

	robotsMu   sync.Mutex
	robotsSeen map[string]struct{}
}

// Run seeds the engine and drives it until the frontier is exhausted or
// the page budget is reached. Returns an error only when the context is
// canceled or the store fails to open a crawl session; individual fetch
// failures are recorded as results and never stop the run.
func (r *Runner) Run(ctx context.Context, seeds []string) (*Summary, error) {
	r.Engine.AddSeeds(seeds)
	r.robotsSeen = make(map[string]struct{})

	if r.Store != nil {
		seedURL := ""
		if len(seeds) > 0 {
			seedURL = seeds[0]
		}
		id, err := r.Store.BeginCrawl(ctx, seedURL)
		if err != nil {
			return nil, err
		}
		r.crawlID = id
	}

	r.emit(ProgressEvent{Type: ProgressStarted})

	workers := r.Concurrency
	if workers <= 0 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			return r.worker(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := r.Engine.Stats()
	if r.Store != nil {
		if err := r.Store.FinishCrawl(ctx, r.crawlID, stats); err != nil {
			r.logf("finish crawl", "err", err)
		}
	}

	r.emit(ProgressEvent{Type: ProgressFinished})

	return &Summary{
		Crawled: stats.PagesCrawled,
		Saved:   int(r.saved.Load()),
		Failed:  int(r.failed.Load()),
		Skipped: int(r.skipped.Load()),
		Stats:   stats,
	}, nil
}

// worker loops popping URLs until the engine is drained and no other
// worker is mid-page. A worker seeing an empty frontier while a peer is
// still expanding links polls briefly instead of exiting.
func (r *Runner) worker(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		u, depth, ok := r.Engine.NextURL()
		if !ok {
			if r.inflight.Load() == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(idlePoll):
			}
			continue
		}

		r.inflight.Add(1)
		r.process(ctx, u, depth)
		r.inflight.Add(-1)
	}
}

func (r *Runner) process(ctx context.Context, pageURL string, depth int) {
	r.ensureRobots(ctx, pageURL)

	if allowed, status := r.Engine.evaluate(pageURL); !allowed {
		r.Engine.RecordResult(&frontier.Result{
			URL:    pageURL,
			Status: status,
			Depth:  depth,
		})
		r.skipped.Add(1)
		r.emit(ProgressEvent{Type: ProgressSkipped, URL: pageURL, Depth: depth})
		return
	}

	if wait := r.Engine.ShouldWait(pageURL); wait > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetryDelays(ctx, pageURL, r.Fetcher.Fetch, nil, delays)
	if err != nil {
		r.recordFailure(pageURL, depth, 0, frontier.StatusError, err)
		return
	}

	if page.StatusCode == 429 {
		r.recordFailure(pageURL, depth, page.StatusCode, frontier.StatusRateLimited,
			frontier.Errorf(frontier.EINTERNAL, "HTTP 429 for %s", pageURL))
		return
	}
	if page.StatusCode < 200 || page.StatusCode >= 300 {
		r.recordFailure(pageURL, depth, page.StatusCode, frontier.StatusError,
			frontier.Errorf(frontier.EINTERNAL, "HTTP %d for %s", page.StatusCode, pageURL))
		return
	}

	extracted, err := r.Extractor.Extract(page.Body)
	if err != nil {
		r.recordFailure(pageURL, depth, page.StatusCode, frontier.StatusError, err)
		return
	}

	content := extracted.ContentHTML
	if r.Converter != nil && content != "" {
		if md, err := r.Converter.Convert(content); err == nil {
			content = md
		} else {
			r.logf("markdown conversion", "url", pageURL, "err", err)
		}
	}

	var hash string
	var duplicate bool
	if content != "" {
		hash = HashContent(content)
		duplicate = r.Engine.IsDuplicateContent(content)
	}

	res := &frontier.Result{
		URL:           pageURL,
		Status:        frontier.StatusSuccess,
		StatusCode:    page.StatusCode,
		ContentType:   page.ContentType,
		ContentLength: len(page.Body),
		Title:         extracted.Title,
		TextContent:   content,
		Links:         extracted.Links,
		Depth:         depth,
		FetchTime:     page.FetchTime,
		ContentHash:   hash,
	}
	r.Engine.RecordResult(res)

	if r.Store != nil && !duplicate {
		err := r.Store.SavePage(ctx, &frontier.CrawlPage{
			CrawlID:     r.crawlID,
			URL:         pageURL,
			Title:       res.Title,
			Content:     res.TextContent,
			ContentHash: res.ContentHash,
			Depth:       depth,
			StatusCode:  res.StatusCode,
			FetchTime:   res.FetchTime,
		})
		if err != nil {
			r.logf("save page", "url", pageURL, "err", err)
		} else {
			r.saved.Add(1)
		}
	}

	r.emit(ProgressEvent{Type: ProgressCompleted, URL: pageURL, Depth: depth})
}

// ensureRobots fetches and caches the robots policy for the URL's host
// on first encounter. Fetch or parse failures are logged and otherwise
// ignored: robots enforcement is fail-open.
func (r *Runner) ensureRobots(ctx context.Context, pageURL string) {
	if r.Robots == nil || !r.Engine.Config().RespectRobots {
		return
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return
	}
	host := u.Hostname()

	r.robotsMu.Lock()
	if _, ok := r.robotsSeen[host]; ok {
		r.robotsMu.Unlock()
		return
	}
	r.robotsSeen[host] = struct{}{}
	r.robotsMu.Unlock()

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, host); err != nil {
			return
		}
	}

	policy, err := r.Robots.Policy(ctx, u.Scheme, u.Host)
	if err != nil {
		if frontier.ErrorCode(err) != frontier.ENOTFOUND {
			r.logf("robots fetch", "host", host, "err", err)
		}
		return
	}
	r.Engine.SetRobotsPolicy(host, policy)
}

func (r *Runner) recordFailure(pageURL string, depth, statusCode int, status frontier.Status, cause error) {
	msg := ""
	if cause != nil {
		msg = frontier.ErrorMessage(cause)
		if strings.TrimSpace(msg) == "" || msg == "Internal error." {
			msg = cause.Error()
		}
	}
	r.Engine.RecordResult(&frontier.Result{
		URL:        pageURL,
		Status:     status,
		StatusCode: statusCode,
		Depth:      depth,
		Error:      msg,
	})
	r.failed.Add(1)
	r.emit(ProgressEvent{Type: ProgressFailed, URL: pageURL, Depth: depth, Error: cause})
}

func (r *Runner) emit(event ProgressEvent) {
	if r.Progress != nil {
		r.Progress(event)
	}
}

func (r *Runner) logf(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Info(msg, args...)
	}
}
