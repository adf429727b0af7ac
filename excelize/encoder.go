// Package excelize exports analysis reports as XLSX workbooks.
package excelize

import (
	"io"
	"unicode/utf8"

	"github.com/fwojciec/insight"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	PagesSheet     = "Pages"
	TermsSheet     = "Terms"
	RelevanceSheet = "Relevance"
)

// TruncatedMarker ends a cell value cut to the workbook cell limit.
const TruncatedMarker = " [truncated]"

var _ insight.ReportEncoder = (*Encoder)(nil)

// Encoder writes a report as a workbook with one sheet per table: the
// per-page rows, the aggregate term frequencies and the relevance scores.
type Encoder struct {
	// TopK limits the Relevance sheet. Defaults to insight.DefaultRelevanceTopK.
	TopK int
}

// Encode writes the workbook to w.
func (e Encoder) Encode(w io.Writer, r *insight.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PagesSheet); err != nil {
		return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
	}

	header := make([]any, 0, len(insight.ReportColumns))
	for _, h := range insight.ReportColumns {
		header = append(header, h)
	}
	rows := [][]any{header}
	for _, page := range r.Pages {
		rec := page.Record
		rows = append(rows, []any{
			cellText(rec.URL),
			cellText(rec.Title),
			cellText(rec.MetaDescription),
			cellText(insight.FormatHeadings(rec.Headings)),
			rec.WordCount,
			cellText(page.Outline),
		})
	}
	if err := writeRows(f, PagesSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(TermsSheet); err != nil {
		return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
	}
	rows = [][]any{{"Term", "Count"}}
	for _, tc := range r.Frequencies.Top(0) {
		rows = append(rows, []any{cellText(tc.Term), tc.Count})
	}
	if err := writeRows(f, TermsSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(RelevanceSheet); err != nil {
		return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
	}
	topK := e.TopK
	if topK <= 0 {
		topK = insight.DefaultRelevanceTopK
	}
	rows = [][]any{{"Term", "Score"}}
	for _, ts := range r.Relevance.Top(topK) {
		rows = append(rows, []any{cellText(ts.Term), ts.Score})
	}
	if err := writeRows(f, RelevanceSheet, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return insight.Errorf(insight.EINTERNAL, "xlsx: %v", err)
		}
	}
	return nil
}

// cellText cuts s to excelize.TotalCellChars characters, ending it with
// TruncatedMarker. Longer values make excelize reject the whole row.
func cellText(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	keep := excelize.TotalCellChars - utf8.RuneCountInString(TruncatedMarker)
	return string([]rune(s)[:keep]) + TruncatedMarker
}
