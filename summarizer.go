package insight

import "context"

// SummaryMode selects how outlines are requested from the summarization service.
type SummaryMode string

// SummaryMode constants.
const (
	// SummaryOff skips summarization entirely.
	SummaryOff SummaryMode = "off"
	// SummaryPerDocument issues one request per page. A failure empties
	// only that page's outline.
	SummaryPerDocument SummaryMode = "per-document"
	// SummaryBatch issues one request for every page. A failure empties
	// every outline in the report.
	SummaryBatch SummaryMode = "batch"
)

// Summarizer produces a structured SEO content outline from page text.
type Summarizer interface {
	// Summarize returns an outline for a single summarization context.
	// Returns ESERVICE on auth failure, exhausted quota or network fault.
	Summarize(ctx context.Context, context string) (string, error)
}

// BatchSummarizer produces outlines for several contexts in one request.
type BatchSummarizer interface {
	// SummarizeBatch returns one outline per context, in input order.
	// Returns ESERVICE if the service fails or returns a different
	// number of outlines than contexts.
	SummarizeBatch(ctx context.Context, contexts []string) ([]string, error)
}
