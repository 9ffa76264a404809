// Package goquery provides a CSS-selector based implementation of
// frontier.Extractor for pulling titles, content, and outbound links
// from fetched HTML.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/frontier"
)

// Compile-time interface verification.
var _ frontier.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order for the main content region; the
// first match wins. Falls back to <body>.
var contentSelectors = []string{"main", "article", "#content", ".content", "body"}

// Extractor extracts page structure with goquery. Unlike the
// trafilatura extractor it performs no boilerplate analysis, which
// makes it fast and predictable for well-structured sites.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns the title, the main content
// region, and every anchor href exactly as written in the document.
// Links are returned raw and unresolved; the engine resolves them
// against the page URL during expansion.
func (e *Extractor) Extract(html string) (*frontier.Extracted, error) {
	if html == "" {
		return nil, frontier.Errorf(frontier.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, frontier.Errorf(frontier.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	var contentHTML string
	for _, sel := range contentSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if h, err := goquery.OuterHtml(node); err == nil {
			contentHTML = h
		}
		break
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})

	return &frontier.Extracted{
		Title:       title,
		ContentHTML: contentHTML,
		Links:       links,
	}, nil
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
