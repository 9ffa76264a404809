// Package slog provides logging decorators for frontier services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/frontier"
)

// Ensure LoggingFetcher implements frontier.Fetcher.
var _ frontier.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   frontier.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next frontier.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *frontier.Page, err error) {
	defer func(begin time.Time) {
		status := 0
		size := 0
		if page != nil {
			status = page.StatusCode
			size = len(page.Body)
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
