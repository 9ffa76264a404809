package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	frontierhttp "github.com/fwojciec/frontier/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	fetcher := frontierhttp.NewFetcher(frontierhttp.WithUserAgent("test-agent"))

	page, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 200, page.StatusCode)
	assert.Equal(t, "text/html", page.ContentType)
	assert.Equal(t, "<html><body>hello</body></html>", page.Body)
	assert.Greater(t, page.FetchTime.Nanoseconds(), int64(0))
}

func TestFetcher_Fetch_non_2xx_returns_page_not_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	fetcher := frontierhttp.NewFetcher()

	page, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	// The caller classifies HTTP-level failures from the status code;
	// the body is not read for them.
	assert.Equal(t, 429, page.StatusCode)
	assert.Empty(t, page.Body)
}

func TestFetcher_Fetch_transport_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	fetcher := frontierhttp.NewFetcher()

	_, err := fetcher.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetcher_Fetch_decodes_non_utf8(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write([]byte("caf\xe9")) // "café" in Latin-1
	}))
	defer srv.Close()

	fetcher := frontierhttp.NewFetcher()

	page, err := fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", page.Body)
}

func TestFetcher_Fetch_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := frontierhttp.NewFetcher()

	_, err := fetcher.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
