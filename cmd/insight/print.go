package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/fs"
	"github.com/rivo/uniseg"
)

// chartWidth is the length of the longest frequency bar.
const chartWidth = 30

// printReport writes the per-page blocks followed by the aggregate word
// frequency chart and the relevance ranking.
func printReport(w io.Writer, r *insight.Report, topK int) error {
	if err := (fs.TextEncoder{TopK: topK}).Encode(w, r); err != nil {
		return err
	}

	var sb strings.Builder
	if top := r.Frequencies.Top(topK); len(top) > 0 {
		sb.WriteString("\nWord Frequency:\n")
		writeChart(&sb, top)
	}
	if top := r.Relevance.Top(insight.DefaultRelevanceTopK); len(top) > 0 {
		sb.WriteString("\nRelevance:\n")
		width := 0
		for _, ts := range top {
			width = max(width, uniseg.StringWidth(ts.Term))
		}
		for _, ts := range top {
			fmt.Fprintf(&sb, "  %s  %.3f\n", pad(ts.Term, width), ts.Score)
		}
	}

	var tokens []string
	for _, page := range r.Pages {
		if page.ContextTokens > 0 {
			tokens = append(tokens, fmt.Sprintf("  %s  %s\n", page.Record.URL, formatTokens(page.ContextTokens)))
		}
	}
	if len(tokens) > 0 {
		sb.WriteString("\nSummarization Context:\n")
		for _, line := range tokens {
			sb.WriteString(line)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// writeChart draws one bar per term scaled to the highest count.
func writeChart(sb *strings.Builder, top []insight.TermCount) {
	width, highest := 0, 0
	for _, tc := range top {
		width = max(width, uniseg.StringWidth(tc.Term))
		highest = max(highest, tc.Count)
	}
	for _, tc := range top {
		n := max(1, tc.Count*chartWidth/highest)
		fmt.Fprintf(sb, "  %s  %s %d\n", pad(tc.Term, width), strings.Repeat("█", n), tc.Count)
	}
}

// pad right-pads s with spaces to width terminal columns.
func pad(s string, width int) string {
	if n := width - uniseg.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// formatTokens formats a token count in human-readable form.
func formatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
