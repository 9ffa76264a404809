// Package http provides HTTP-based implementations of the frontier
// collaborator interfaces: the page fetcher, the robots.txt source,
// and sitemap seed discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/frontier"
	"golang.org/x/net/html/charset"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20 // 8 MiB

// Ensure Fetcher implements frontier.Fetcher at compile time.
var _ frontier.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP requests. It does not
// execute JavaScript; dynamic sites are out of scope.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to frontier.DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to frontier.DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   frontier.DefaultTimeout,
		userAgent: frontier.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Client returns the underlying HTTP client, shared with the robots
// and sitemap services so connection pools are reused.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// Fetch retrieves the page at url. Transport failures return an error;
// HTTP-level failures return a Page carrying the status code so the
// caller can classify them (429 vs other errors).
func (f *Fetcher) Fetch(ctx context.Context, url string) (*frontier.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, frontier.Errorf(frontier.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	begin := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	page := &frontier.Page{
		StatusCode:  resp.StatusCode,
		ContentType: contentType(resp),
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		// Decode to UTF-8 based on headers and content sniffing.
		reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		page.Body = string(body)
	}

	page.FetchTime = time.Since(begin)
	return page, nil
}

// contentType returns the media type of a response without parameters.
func contentType(resp *http.Response) string {
	ct := resp.Header.Get("Content-Type")
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = ct[:idx]
	}
	return strings.TrimSpace(ct)
}
