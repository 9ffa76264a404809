package mock

import (
	"context"

	"github.com/fwojciec/frontier"
)

var _ frontier.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of frontier.PageStore.
type PageStore struct {
	BeginCrawlFn  func(ctx context.Context, seedURL string) (string, error)
	SavePageFn    func(ctx context.Context, page *frontier.CrawlPage) error
	FinishCrawlFn func(ctx context.Context, crawlID string, stats *frontier.Stats) error
	FindPagesFn   func(ctx context.Context, filter frontier.PageFilter) ([]*frontier.CrawlPage, error)
}

func (s *PageStore) BeginCrawl(ctx context.Context, seedURL string) (string, error) {
	return s.BeginCrawlFn(ctx, seedURL)
}

func (s *PageStore) SavePage(ctx context.Context, page *frontier.CrawlPage) error {
	return s.SavePageFn(ctx, page)
}

func (s *PageStore) FinishCrawl(ctx context.Context, crawlID string, stats *frontier.Stats) error {
	return s.FinishCrawlFn(ctx, crawlID, stats)
}

func (s *PageStore) FindPages(ctx context.Context, filter frontier.PageFilter) ([]*frontier.CrawlPage, error) {
	return s.FindPagesFn(ctx, filter)
}
