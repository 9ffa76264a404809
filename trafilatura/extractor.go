// Package trafilatura provides a frontier.Extractor that uses main
// content extraction to strip boilerplate before text is hashed and
// stored.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/frontier"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements frontier.Extractor at compile time.
var _ frontier.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
// Outbound links are collected from the whole document, not just the
// content region, so navigation links still feed the frontier.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the title, the main content
// as clean HTML, and every raw anchor href in the document.
func (e *Extractor) Extract(rawHTML string) (*frontier.Extracted, error) {
	if rawHTML == "" {
		return nil, frontier.Errorf(frontier.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	links, err := collectHrefs(rawHTML)
	if err != nil {
		return nil, err
	}

	return &frontier.Extracted{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		Links:       links,
	}, nil
}

// collectHrefs walks the parsed document and returns raw, deduplicated
// href attribute values in document order.
func collectHrefs(rawHTML string) ([]string, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var links []string
	for n := range root.Descendants() {
		if n.Type != html.ElementNode || n.Data != "a" {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			href := strings.TrimSpace(attr.Val)
			if href == "" {
				break
			}
			if _, dup := seen[href]; dup {
				break
			}
			seen[href] = struct{}{}
			links = append(links, href)
			break
		}
	}
	return links, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
