package goquery_test

import (
	"testing"

	"github.com/fwojciec/frontier"
	"github.com/fwojciec/frontier/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	html := `<html>
<head><title>Test Page</title></head>
<body>
<nav><a href="/nav">Nav</a></nav>
<main>
<h1>Welcome</h1>
<p>Some content.</p>
<a href="/docs">Docs</a>
<a href="https://other.example/x">External</a>
</main>
</body>
</html>`

	e := goquery.NewExtractor()
	extracted, err := e.Extract(html)
	require.NoError(t, err)

	assert.Equal(t, "Test Page", extracted.Title)
	assert.Contains(t, extracted.ContentHTML, "<main>")
	assert.Contains(t, extracted.ContentHTML, "Some content.")

	// All anchors in the document, raw and unresolved.
	assert.Equal(t, []string{"/nav", "/docs", "https://other.example/x"}, extracted.Links)
}

func TestExtractor_Extract_title_falls_back_to_h1(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	extracted, err := e.Extract(`<html><body><h1>Heading Title</h1></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, "Heading Title", extracted.Title)
}

func TestExtractor_Extract_content_selector_priority(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()

	// <article> wins over body when no <main> is present.
	extracted, err := e.Extract(`<html><body><div>outer</div><article>inner</article></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "<article>inner</article>", extracted.ContentHTML)
}

func TestExtractor_Extract_skips_non_http_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="mailto:x@a.com">mail</a>
<a href="javascript:void(0)">js</a>
<a href="tel:+123">tel</a>
<a href="/keep">keep</a>
</body></html>`

	e := goquery.NewExtractor()
	extracted, err := e.Extract(html)
	require.NoError(t, err)

	assert.Equal(t, []string{"/keep"}, extracted.Links)
}

func TestExtractor_Extract_dedups_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<a href="/x">one</a>
<a href="/x">two</a>
<a href="/y">three</a>
</body></html>`

	e := goquery.NewExtractor()
	extracted, err := e.Extract(html)
	require.NoError(t, err)

	assert.Equal(t, []string{"/x", "/y"}, extracted.Links)
}

func TestExtractor_Extract_empty_input(t *testing.T) {
	t.Parallel()

	e := goquery.NewExtractor()
	_, err := e.Extract("")
	assert.Equal(t, frontier.EINVALID, frontier.ErrorCode(err))
}
