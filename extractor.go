package frontier

// Extracted holds the content pulled out of a fetched HTML page.
type Extracted struct {
	// Title is the page title from metadata.
	Title string

	// ContentHTML is the main content region as clean HTML, with
	// boilerplate (nav, footer, sidebar) removed.
	ContentHTML string

	// Links holds raw hrefs as they appear in the document,
	// unresolved. The engine resolves them against the page URL during
	// link expansion.
	Links []string
}

// Extractor pulls title, main content, and outbound links from HTML.
type Extractor interface {
	Extract(html string) (*Extracted, error)
}
