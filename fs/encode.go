// Package fs provides file exports of analysis reports.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fwojciec/insight"
)

// Ensure encoders implement insight.ReportEncoder at compile time.
var (
	_ insight.ReportEncoder = (*CSVEncoder)(nil)
	_ insight.ReportEncoder = (*TextEncoder)(nil)
	_ insight.ReportEncoder = (*JSONEncoder)(nil)
)

// CSVEncoder writes one row per analyzed page.
type CSVEncoder struct{}

// Encode writes the header and one row per page in report order.
func (CSVEncoder) Encode(w io.Writer, r *insight.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(insight.ReportColumns); err != nil {
		return err
	}
	for _, page := range r.Pages {
		rec := page.Record
		row := []string{
			rec.URL,
			rec.Title,
			rec.MetaDescription,
			insight.FormatHeadings(rec.Headings),
			strconv.Itoa(rec.WordCount),
			page.Outline,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// TextEncoder writes a plain-text report with one block per URL.
type TextEncoder struct {
	// TopK is the number of top terms listed per page.
	// Defaults to insight.DefaultTopKTerms.
	TopK int
}

// Encode writes one block per page followed by skipped URLs and
// diagnostics.
func (e TextEncoder) Encode(w io.Writer, r *insight.Report) error {
	topK := e.TopK
	if topK <= 0 {
		topK = insight.DefaultTopKTerms
	}

	var sb strings.Builder
	for i, page := range r.Pages {
		if i > 0 {
			sb.WriteString("\n")
		}
		rec := page.Record
		fmt.Fprintf(&sb, "URL: %s\n", rec.URL)
		fmt.Fprintf(&sb, "Meta Title: %s\n", rec.Title)
		fmt.Fprintf(&sb, "Meta Description: %s\n", rec.MetaDescription)
		fmt.Fprintf(&sb, "Headers: %s\n", insight.FormatHeadings(rec.Headings))
		fmt.Fprintf(&sb, "Word Count: %d\n", rec.WordCount)
		fmt.Fprintf(&sb, "Top Words: %s\n", insight.FormatTerms(page.Frequencies.Top(topK)))
		if page.Outline != "" {
			sb.WriteString("Outline:\n")
			sb.WriteString(page.Outline)
			sb.WriteString("\n")
		}
	}

	if len(r.Skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(&sb, "- %s: %s\n", s.URL, s.Reason)
		}
	}
	if len(r.Diagnostics) > 0 {
		sb.WriteString("\nDiagnostics:\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// JSONEncoder writes the full report as indented JSON.
type JSONEncoder struct{}

// Encode writes r as JSON.
func (JSONEncoder) Encode(w io.Writer, r *insight.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
