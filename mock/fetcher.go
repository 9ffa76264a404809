// Package mock provides function-field mocks of the frontier service
// interfaces for use in tests.
package mock

import (
	"context"

	"github.com/fwojciec/frontier"
)

var _ frontier.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of frontier.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*frontier.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*frontier.Page, error) {
	return f.FetchFn(ctx, url)
}
