package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/insight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tokens int
		want   string
	}{
		{0, "~0 tokens"},
		{999, "~999 tokens"},
		{1000, "~1k tokens"},
		{1499, "~1k tokens"},
		{1500, "~2k tokens"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTokens(tt.tokens))
	}
}

func TestPad(t *testing.T) {
	t.Parallel()

	t.Run("pads by display width", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "shoe  ", pad("shoe", 6))
		assert.Equal(t, "靴    ", pad("靴", 6))
		assert.Equal(t, "sneakers", pad("sneakers", 4))
	})
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	t.Run("scales bars to the most frequent term", func(t *testing.T) {
		t.Parallel()

		freqs := insight.CountTokens([]string{"shoe", "shoe", "shoe", "boot"})
		r := &insight.Report{
			Pages:       []*insight.PageReport{{Record: &insight.PageRecord{URL: "https://a.example/"}, Frequencies: freqs, ContextTokens: 1200}},
			Frequencies: freqs,
			Relevance:   insight.NewRelevanceTable(),
		}

		var buf bytes.Buffer
		require.NoError(t, printReport(&buf, r, 10))

		out := buf.String()
		assert.Contains(t, out, "Word Frequency:\n  shoe  "+strings.Repeat("█", chartWidth)+" 3\n  boot  "+strings.Repeat("█", 10)+" 1\n")
		assert.NotContains(t, out, "Relevance:")
		assert.Contains(t, out, "Summarization Context:\n  https://a.example/  ~1k tokens\n")
	})
}
