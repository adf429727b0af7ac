package insight

import (
	"strconv"
	"strings"
)

// FormatHeadings joins headings for single-line display.
func FormatHeadings(headings []string) string {
	return strings.Join(headings, ", ")
}

// FormatTerms formats top terms as "term (count)" separated by commas.
func FormatTerms(terms []TermCount) string {
	if len(terms) == 0 {
		return ""
	}

	parts := make([]string, 0, len(terms))
	for _, tc := range terms {
		parts = append(parts, tc.Term+" ("+strconv.Itoa(tc.Count)+")")
	}
	return strings.Join(parts, ", ")
}

// FormatSummaryContext formats a page for the summarization service.
// Uses title if available, falls back to the URL. Empty fields are omitted.
func FormatSummaryContext(rec *PageRecord) string {
	var sb strings.Builder

	header := rec.Title
	if header == "" {
		header = rec.URL
	}
	sb.WriteString("## Page: " + header + "\n")
	sb.WriteString("URL: " + rec.URL + "\n")
	if rec.MetaDescription != "" {
		sb.WriteString("Meta description: " + rec.MetaDescription + "\n")
	}
	if len(rec.Headings) > 0 {
		sb.WriteString("Headings:\n")
		for _, h := range rec.Headings {
			sb.WriteString("- " + h + "\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(rec.SummaryContext())

	return sb.String()
}
