package mock

import "github.com/fwojciec/insight"

var _ insight.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of insight.Extractor.
type Extractor struct {
	ExtractFn func(page *insight.RawPage) (*insight.PageRecord, error)
}

func (e *Extractor) Extract(page *insight.RawPage) (*insight.PageRecord, error) {
	return e.ExtractFn(page)
}

var _ insight.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of insight.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*insight.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*insight.ExtractResult, error) {
	return e.ExtractFn(html)
}
