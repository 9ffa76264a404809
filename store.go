package frontier

import (
	"context"
	"time"
)

// CrawlPage is a successfully crawled page as persisted by a PageStore.
type CrawlPage struct {
	ID          string        `json:"id"`
	CrawlID     string        `json:"crawlId"`
	URL         string        `json:"url"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	ContentHash string        `json:"contentHash"`
	Depth       int           `json:"depth"`
	StatusCode  int           `json:"statusCode"`
	FetchTime   time.Duration `json:"fetchTime"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *CrawlPage) Validate() error {
	if p.CrawlID == "" {
		return Errorf(EINVALID, "page crawl ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageFilter selects pages for FindPages.
type PageFilter struct {
	CrawlID *string `json:"crawlId"`
	URL     *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageStore persists crawl sessions and their pages.
type PageStore interface {
	// BeginCrawl registers a new crawl session for the seed URL and
	// returns its ID.
	BeginCrawl(ctx context.Context, seedURL string) (string, error)

	// SavePage persists one crawled page.
	SavePage(ctx context.Context, page *CrawlPage) error

	// FinishCrawl records the final statistics for a crawl session.
	// Returns ENOTFOUND if the crawl does not exist.
	FinishCrawl(ctx context.Context, crawlID string, stats *Stats) error

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*CrawlPage, error)
}
