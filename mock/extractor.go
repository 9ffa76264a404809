package mock

import "github.com/fwojciec/frontier"

var _ frontier.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of frontier.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*frontier.Extracted, error)
}

func (e *Extractor) Extract(html string) (*frontier.Extracted, error) {
	return e.ExtractFn(html)
}

var _ frontier.Converter = (*Converter)(nil)

// Converter is a mock implementation of frontier.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
