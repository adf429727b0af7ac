package insight

import (
	"context"
	"io"
	"slices"
	"time"
)

// Report is the assembled output of one analysis run.
type Report struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"createdAt"`
	SummaryMode SummaryMode     `json:"summaryMode"`
	Pages       []*PageReport   `json:"pages"`
	Skipped     []*Skipped      `json:"skipped"`
	Diagnostics []string        `json:"diagnostics"`
	Frequencies *FrequencyTable `json:"frequencies"`
	Relevance   *RelevanceTable `json:"relevance"`
}

// PageReport annotates a PageRecord with its analysis results.
type PageReport struct {
	Record      *PageRecord     `json:"record"`
	Frequencies *FrequencyTable `json:"frequencies"`
	Outline     string          `json:"outline"`

	// ContextTokens is the model token count of the summarization
	// context, or zero if it was not counted.
	ContextTokens int `json:"contextTokens,omitempty"`
}

// Skipped records a URL that produced no PageRecord.
type Skipped struct {
	URL    string `json:"url"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// NewSkipped records url as skipped because of err.
func NewSkipped(url string, err error) *Skipped {
	return &Skipped{
		URL:    url,
		Code:   ErrorCode(err),
		Reason: ErrorMessage(err),
	}
}

// Assemble joins records with their frequency tables and with outlines
// keyed by URL. freqs is parallel to records. A record without an outline
// gets an empty outline. The aggregate table is the sum of freqs. Records
// are not copied or modified.
func Assemble(records []*PageRecord, freqs []*FrequencyTable, outlines map[string]string) *Report {
	byPosition := make([]string, len(records))
	for i, rec := range records {
		byPosition[i] = outlines[rec.URL]
	}
	return AssemblePages(records, freqs, byPosition)
}

// AssemblePages is Assemble with outlines parallel to records, so a URL
// listed twice keeps the outline of each occurrence. Missing entries give
// an empty outline.
func AssemblePages(records []*PageRecord, freqs []*FrequencyTable, outlines []string) *Report {
	r := &Report{
		Pages:       make([]*PageReport, 0, len(records)),
		Frequencies: SumFrequencies(freqs...),
	}
	for i, rec := range records {
		var ft *FrequencyTable
		if i < len(freqs) {
			ft = freqs[i]
		}
		if ft == nil {
			ft = NewFrequencyTable()
		}
		var outline string
		if i < len(outlines) {
			outline = outlines[i]
		}
		r.Pages = append(r.Pages, &PageReport{
			Record:      rec,
			Frequencies: ft,
			Outline:     outline,
		})
	}
	return r
}

// OutlinesFromBatch aligns a batched summarization result with records for
// AssemblePages. Returns ESERVICE if the counts differ, since outlines
// could otherwise be attributed to the wrong page.
func OutlinesFromBatch(records []*PageRecord, outlines []string) ([]string, error) {
	if len(records) != len(outlines) {
		return nil, Errorf(ESERVICE, "summarization returned %d outlines for %d pages", len(outlines), len(records))
	}
	return slices.Clone(outlines), nil
}

// ReportColumns are the per-page columns shared by tabular exports.
var ReportColumns = []string{"URL", "Meta Title", "Meta Description", "Headers", "Word Count", "Outline"}

// ReportEncoder serializes a report to a writer.
type ReportEncoder interface {
	Encode(w io.Writer, r *Report) error
}

// ReportStore writes finished reports to a database file. It is an
// export target; reports are never read back.
type ReportStore interface {
	// SaveReport stores r. Returns EINVALID if r has no ID.
	SaveReport(ctx context.Context, r *Report) error
}
