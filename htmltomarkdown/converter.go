// Package htmltomarkdown implements insight.Converter with html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/insight"
)

// Ensure Converter implements insight.Converter at compile time.
var _ insight.Converter = (*Converter)(nil)

// removedTags carry no outline-worthy text and only inflate the
// summarization context.
var removedTags = []string{"img", "picture", "svg", "nav", "form", "button"}

// Converter renders main-content HTML as Markdown for summarization.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	for _, tag := range removedTags {
		conv.Register.TagType(tag, converter.TagTypeRemove, converter.PriorityStandard)
	}
	return &Converter{conv: conv}
}

// Convert transforms HTML content into trimmed Markdown.
// Returns EPARSE for empty input or conversion failures.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", insight.Errorf(insight.EPARSE, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", insight.Errorf(insight.EPARSE, "convert to markdown: %v", err)
	}

	return strings.TrimSpace(result), nil
}
