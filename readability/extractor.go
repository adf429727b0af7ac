// Package readability implements insight.ContentExtractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/insight"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements insight.ContentExtractor at compile time.
var _ insight.ContentExtractor = (*Extractor)(nil)

// Extractor isolates the main article of a competitor page using the
// Readability scoring heuristics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main article as HTML. Returns EPARSE for
// empty input or unreadable documents.
func (e *Extractor) Extract(rawHTML string) (*insight.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, insight.Errorf(insight.EPARSE, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, insight.Errorf(insight.EPARSE, "extract article: %v", err)
	}

	return &insight.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
