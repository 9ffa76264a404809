package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *sqlite.PageStore {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewPageStore(db)
}

func TestPageStore_BeginCrawl(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	id1, err := store.BeginCrawl(ctx, "http://a.com")
	require.NoError(t, err)
	assert.NotEmpty(t, id1)

	id2, err := store.BeginCrawl(ctx, "http://b.com")
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestPageStore_SavePage_and_FindPages(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	crawlID, err := store.BeginCrawl(ctx, "http://a.com")
	require.NoError(t, err)

	page := &frontier.CrawlPage{
		CrawlID:     crawlID,
		URL:         "http://a.com/docs",
		Title:       "Docs",
		Content:     "# Docs\n\nSome content.",
		ContentHash: "deadbeef",
		Depth:       1,
		StatusCode:  200,
		FetchTime:   42 * time.Millisecond,
	}
	require.NoError(t, store.SavePage(ctx, page))
	assert.NotEmpty(t, page.ID)

	found, err := store.FindPages(ctx, frontier.PageFilter{CrawlID: &crawlID})
	require.NoError(t, err)
	require.Len(t, found, 1)

	got := found[0]
	assert.Equal(t, page.ID, got.ID)
	assert.Equal(t, crawlID, got.CrawlID)
	assert.Equal(t, "http://a.com/docs", got.URL)
	assert.Equal(t, "Docs", got.Title)
	assert.Equal(t, "# Docs\n\nSome content.", got.Content)
	assert.Equal(t, "deadbeef", got.ContentHash)
	assert.Equal(t, 1, got.Depth)
	assert.Equal(t, 200, got.StatusCode)
	assert.Equal(t, 42*time.Millisecond, got.FetchTime)
	assert.False(t, got.FetchedAt.IsZero())
}

func TestPageStore_SavePage_validates(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	err := store.SavePage(ctx, &frontier.CrawlPage{URL: "http://a.com"})
	assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))

	err = store.SavePage(ctx, &frontier.CrawlPage{CrawlID: "x"})
	assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))
}

func TestPageStore_FindPages_filters(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	crawlA, err := store.BeginCrawl(ctx, "http://a.com")
	require.NoError(t, err)
	crawlB, err := store.BeginCrawl(ctx, "http://b.com")
	require.NoError(t, err)

	for _, u := range []string{"http://a.com/1", "http://a.com/2"} {
		require.NoError(t, store.SavePage(ctx, &frontier.CrawlPage{CrawlID: crawlA, URL: u}))
	}
	require.NoError(t, store.SavePage(ctx, &frontier.CrawlPage{CrawlID: crawlB, URL: "http://b.com/1"}))

	byCrawl, err := store.FindPages(ctx, frontier.PageFilter{CrawlID: &crawlA})
	require.NoError(t, err)
	assert.Len(t, byCrawl, 2)

	u := "http://b.com/1"
	byURL, err := store.FindPages(ctx, frontier.PageFilter{URL: &u})
	require.NoError(t, err)
	require.Len(t, byURL, 1)
	assert.Equal(t, crawlB, byURL[0].CrawlID)

	limited, err := store.FindPages(ctx, frontier.PageFilter{CrawlID: &crawlA, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestPageStore_FinishCrawl(t *testing.T) {
	t.Parallel()

	store := openStore(t)
	ctx := context.Background()

	crawlID, err := store.BeginCrawl(ctx, "http://a.com")
	require.NoError(t, err)

	stats := &frontier.Stats{
		PagesCrawled:        5,
		UniqueURLsSeen:      7,
		UniqueContentHashes: 4,
		StatusCounts: map[frontier.Status]int{
			frontier.StatusSuccess: 4,
			frontier.StatusError:   1,
		},
	}
	require.NoError(t, store.FinishCrawl(ctx, crawlID, stats))

	got, err := store.FindCrawlStats(ctx, crawlID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.PagesCrawled)
	assert.Equal(t, 7, got.UniqueURLsSeen)
	assert.Equal(t, 4, got.UniqueContentHashes)
	assert.Equal(t, stats.StatusCounts, got.StatusCounts)
}

func TestPageStore_FinishCrawl_unknown_crawl(t *testing.T) {
	t.Parallel()

	store := openStore(t)

	err := store.FinishCrawl(context.Background(), "no-such-crawl", &frontier.Stats{})
	assert.Equal(t, frontier.ENOTFOUND, frontier.ErrorCode(err))
}

func TestPageStore_FindCrawlStats_unknown_crawl(t *testing.T) {
	t.Parallel()

	store := openStore(t)

	_, err := store.FindCrawlStats(context.Background(), "no-such-crawl")
	assert.Equal(t, frontier.ENOTFOUND, frontier.ErrorCode(err))
}
