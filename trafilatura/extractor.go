// Package trafilatura implements insight.ContentExtractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/insight"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements insight.ContentExtractor at compile time.
var _ insight.ContentExtractor = (*Extractor)(nil)

// Extractor isolates the main content of a competitor page, dropping
// navigation, footers, sidebars and reader comments.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
		},
	}
}

// Extract returns the page's main content as HTML. Returns EPARSE for
// empty input or when trafilatura cannot find any content.
func (e *Extractor) Extract(rawHTML string) (*insight.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, insight.Errorf(insight.EPARSE, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, insight.Errorf(insight.EPARSE, "extract main content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		if contentHTML, err = renderNode(result.ContentNode); err != nil {
			return nil, insight.Errorf(insight.EPARSE, "render main content: %v", err)
		}
	}

	return &insight.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
