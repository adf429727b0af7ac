package insight

import "strings"

// RawPage is the fetched, unparsed body of a competitor URL.
type RawPage struct {
	URL  string
	HTML string
}

// PageRecord is the structured extraction result for one fetched URL.
// It is immutable once built by an Extractor.
type PageRecord struct {
	URL               string   `json:"url"`
	Title             string   `json:"title"`
	MetaDescription   string   `json:"metaDescription"`
	Headings          []string `json:"headings"`
	WordCount         int      `json:"wordCount"`
	InternalLinkCount int      `json:"internalLinkCount"`
	ExternalLinkCount int      `json:"externalLinkCount"`
	RawText           string   `json:"rawText"`

	// Language is the detected ISO 639-1 code of RawText, if detection ran.
	Language string `json:"language,omitempty"`

	// ContentMarkdown is the page's main content as Markdown, with
	// navigation and other boilerplate removed. Empty unless main
	// content extraction is enabled.
	ContentMarkdown string `json:"contentMarkdown,omitempty"`

	// ContentHash identifies RawText in exports.
	ContentHash string `json:"contentHash"`
}

// SummaryContext returns the text sent to the summarization service.
// Main content Markdown is preferred over the raw paragraph text.
func (r *PageRecord) SummaryContext() string {
	if strings.TrimSpace(r.ContentMarkdown) != "" {
		return r.ContentMarkdown
	}
	return r.RawText
}

// TextPolicy selects which parts of a document make up PageRecord.RawText.
type TextPolicy string

// TextPolicy constants.
const (
	// TextParagraphs joins the trimmed text of every <p> element.
	TextParagraphs TextPolicy = "paragraphs"
	// TextDocument joins every visible text node of the document.
	TextDocument TextPolicy = "document"
)

// LinkPolicy selects how anchors are classified as internal or external.
type LinkPolicy string

// LinkPolicy constants.
const (
	// LinkSubstring treats an href as internal when it contains the page URL.
	LinkSubstring LinkPolicy = "substring"
	// LinkHost treats an href as internal when it resolves to the page's host.
	LinkHost LinkPolicy = "host"
	// LinkDomain treats an href as internal when it resolves to the page's
	// registrable domain, so subdomains count as internal.
	LinkDomain LinkPolicy = "domain"
)

// Extractor parses fetched HTML into a PageRecord.
type Extractor interface {
	// Extract parses the page and derives its structural fields.
	// Returns EPARSE if the HTML cannot be parsed; never a partial record.
	Extract(page *RawPage) (*PageRecord, error)
}
