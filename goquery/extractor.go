// Package goquery implements insight.Extractor using CSS selectors over
// a parsed HTML tree.
package goquery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/insight"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements insight.Extractor at compile time.
var _ insight.Extractor = (*Extractor)(nil)

// Extractor derives a PageRecord from fetched HTML.
// Extractor is safe for concurrent use.
type Extractor struct {
	text  insight.TextPolicy
	links insight.LinkPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTextPolicy selects which text makes up PageRecord.RawText.
// Defaults to insight.TextParagraphs.
func WithTextPolicy(p insight.TextPolicy) Option {
	return func(e *Extractor) {
		e.text = p
	}
}

// WithLinkPolicy selects how anchors are classified.
// Defaults to insight.LinkSubstring.
func WithLinkPolicy(p insight.LinkPolicy) Option {
	return func(e *Extractor) {
		e.links = p
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		text:  insight.TextParagraphs,
		links: insight.LinkSubstring,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the page and derives its structural fields.
func (e *Extractor) Extract(page *insight.RawPage) (*insight.PageRecord, error) {
	if page == nil || strings.TrimSpace(page.HTML) == "" {
		return nil, insight.Errorf(insight.EPARSE, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, insight.Errorf(insight.EPARSE, "failed to parse HTML: %v", err)
	}

	internal, external, err := e.countLinks(doc, page.URL)
	if err != nil {
		return nil, err
	}

	var raw string
	switch e.text {
	case insight.TextDocument:
		raw = documentText(doc)
	default:
		raw = paragraphText(doc)
	}

	return &insight.PageRecord{
		URL:               page.URL,
		Title:             doc.Find("title").First().Text(),
		MetaDescription:   doc.Find(`meta[name="description"]`).First().AttrOr("content", ""),
		Headings:          headings(doc),
		WordCount:         len(strings.Fields(raw)),
		InternalLinkCount: internal,
		ExternalLinkCount: external,
		RawText:           raw,
		ContentHash:       fmt.Sprintf("%016x", xxhash.Sum64String(raw)),
	}, nil
}

// headings returns the trimmed text of every h1-h3 in document order.
func headings(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("h1, h2, h3").Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}

// paragraphText joins the trimmed text of every <p>, skipping empty ones.
func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

// documentText joins every visible text node of the document.
func documentText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hiddenElement(n) {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// hiddenElement reports whether n's text is never rendered.
func hiddenElement(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	}
	return false
}

func (e *Extractor) countLinks(doc *goquery.Document, pageURL string) (internal, external int, err error) {
	var base *url.URL
	if e.links != insight.LinkSubstring {
		base, err = url.Parse(pageURL)
		if err != nil || base.Host == "" {
			return 0, 0, insight.Errorf(insight.EPARSE, "invalid page URL %q", pageURL)
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")

		var isInternal bool
		switch e.links {
		case insight.LinkHost, insight.LinkDomain:
			target, ok := resolveHTTP(base, href)
			if !ok {
				return
			}
			if e.links == insight.LinkHost {
				isInternal = sameHost(base, target)
			} else {
				isInternal = sameDomain(base, target)
			}
		default:
			isInternal = strings.Contains(href, pageURL)
		}

		if isInternal {
			internal++
		} else {
			external++
		}
	})

	return internal, external, nil
}
