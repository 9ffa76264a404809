package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ frontier.PageStore = (*PageStore)(nil)

// PageStore implements frontier.PageStore using SQLite.
type PageStore struct {
	db *DB
}

// NewPageStore creates a new PageStore.
func NewPageStore(db *DB) *PageStore {
	return &PageStore{db: db}
}

// BeginCrawl registers a new crawl session and returns its ID.
func (s *PageStore) BeginCrawl(ctx context.Context, seedURL string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, seed_url, started_at)
		VALUES (?, ?, ?)
	`, id, seedURL, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return id, nil
}

// SavePage persists one crawled page.
func (s *PageStore) SavePage(ctx context.Context, page *frontier.CrawlPage) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, crawl_id, url, title, content, content_hash, depth, status_code, fetch_time_ms, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.CrawlID, page.URL, page.Title, page.Content, page.ContentHash,
		page.Depth, page.StatusCode, page.FetchTime.Milliseconds(),
		page.FetchedAt.Format(time.RFC3339))

	return err
}

// FinishCrawl records the final statistics for a crawl session.
func (s *PageStore) FinishCrawl(ctx context.Context, crawlID string, stats *frontier.Stats) error {
	counts, err := json.Marshal(stats.StatusCounts)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE crawls
		SET finished_at = ?, pages_crawled = ?, unique_urls = ?, unique_hashes = ?, status_counts = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), stats.PagesCrawled, stats.UniqueURLsSeen,
		stats.UniqueContentHashes, string(counts), crawlID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return frontier.Errorf(frontier.ENOTFOUND, "crawl not found")
	}
	return nil
}

// FindPages retrieves pages matching the filter, most recent first.
func (s *PageStore) FindPages(ctx context.Context, filter frontier.PageFilter) ([]*frontier.CrawlPage, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, url, title, content, content_hash, depth, status_code, fetch_time_ms, fetched_at FROM pages WHERE 1=1")

	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*frontier.CrawlPage
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// FindCrawlStats returns the persisted statistics for a crawl session.
func (s *PageStore) FindCrawlStats(ctx context.Context, crawlID string) (*frontier.Stats, error) {
	var stats frontier.Stats
	var counts string

	err := s.db.QueryRowContext(ctx, `
		SELECT pages_crawled, unique_urls, unique_hashes, status_counts
		FROM crawls
		WHERE id = ?
	`, crawlID).Scan(&stats.PagesCrawled, &stats.UniqueURLsSeen, &stats.UniqueContentHashes, &counts)

	if err == sql.ErrNoRows {
		return nil, frontier.Errorf(frontier.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(counts), &stats.StatusCounts); err != nil {
		return nil, fmt.Errorf("failed to parse status counts: %w", err)
	}

	return &stats, nil
}

func scanPage(rows *sql.Rows) (*frontier.CrawlPage, error) {
	var page frontier.CrawlPage
	var fetchTimeMS int64
	var fetchedAt string

	if err := rows.Scan(&page.ID, &page.CrawlID, &page.URL, &page.Title, &page.Content,
		&page.ContentHash, &page.Depth, &page.StatusCode, &fetchTimeMS, &fetchedAt); err != nil {
		return nil, err
	}

	page.FetchTime = time.Duration(fetchTimeMS) * time.Millisecond

	var err error
	page.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &page, nil
}
