package frontier

import "time"

// Status is the terminal classification of a single fetch attempt.
// The engine records whatever status the caller supplies; its own
// allow/wait checks are advisory gates, not statuses.
type Status string

// Fetch attempt classifications.
const (
	StatusSuccess       Status = "success"
	StatusRateLimited   Status = "rate_limited"
	StatusRobotsBlocked Status = "robots_blocked"
	StatusError         Status = "error"
	StatusSkipped       Status = "skipped"
	StatusMaxDepth      Status = "max_depth"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusRateLimited, StatusRobotsBlocked,
		StatusError, StatusSkipped, StatusMaxDepth:
		return true
	}
	return false
}

// Result describes one fetch attempt. It is produced by the external
// fetcher/extractor pair and passed to the engine exactly once via
// RecordResult.
type Result struct {
	URL    string `json:"url"`
	Status Status `json:"status"`

	// StatusCode is the HTTP status, or 0 if the URL was never fetched.
	StatusCode int `json:"statusCode"`

	ContentType   string `json:"contentType"`
	ContentLength int    `json:"contentLength"`
	Title         string `json:"title"`
	TextContent   string `json:"textContent"`

	// Links holds raw hrefs as found in the page, not yet resolved
	// against URL.
	Links []string `json:"links"`

	Depth     int           `json:"depth"`
	FetchTime time.Duration `json:"fetchTime"`

	// ContentHash is a hex digest of the page content, empty if the
	// fetch produced none.
	ContentHash string `json:"contentHash"`

	// Error carries the failure description for non-success statuses.
	Error string `json:"error"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "result URL required")
	}
	if !r.Status.Valid() {
		return Errorf(EINVALID, "unknown status %q", r.Status)
	}
	if r.Depth < 0 {
		return Errorf(EINVALID, "result depth must not be negative")
	}
	return nil
}

// Stats aggregates the observable state of a crawl.
type Stats struct {
	PagesCrawled        int            `json:"pagesCrawled"`
	FrontierRemaining   int            `json:"frontierRemaining"`
	UniqueURLsSeen      int            `json:"uniqueUrlsSeen"`
	UniqueContentHashes int            `json:"uniqueContentHashes"`
	StatusCounts        map[Status]int `json:"statusCounts"`
}
