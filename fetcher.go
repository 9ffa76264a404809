package frontier

import (
	"context"
	"time"
)

// Page is the raw outcome of one HTTP fetch.
type Page struct {
	// StatusCode is the HTTP response status.
	StatusCode int

	// ContentType is the media type from the Content-Type header.
	ContentType string

	// Body is the response body decoded to UTF-8.
	Body string

	// FetchTime is the wall-clock duration of the request.
	FetchTime time.Duration
}

// Fetcher retrieves pages over the network. Implementations own
// transport concerns: timeouts, TLS, redirects, header handling.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)
}
