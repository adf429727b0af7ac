package excelize_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/insight"
	insightxlsx "github.com/fwojciec/insight/excelize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testReport() *insight.Report {
	shoes := insight.CountTokens([]string{"running", "shoes", "running"})
	boots := insight.CountTokens([]string{"boots"})
	rel := insight.NewRelevanceTable()
	rel.Add("running", 1.3862943611198906)
	rel.Add("shoes", 0.6931471805599453)
	rel.Add("boots", 0.6931471805599453)
	return &insight.Report{
		Pages: []*insight.PageReport{
			{
				Record: &insight.PageRecord{
					URL:             "https://a.example/shoes",
					Title:           "Running Shoes",
					MetaDescription: "Reviewed",
					Headings:        []string{"Road", "Trail"},
					WordCount:       120,
				},
				Frequencies: shoes,
				Outline:     "# Shoes",
			},
			{
				Record:      &insight.PageRecord{URL: "https://b.example/boots", Title: "Boots", WordCount: 40},
				Frequencies: boots,
			},
		},
		Frequencies: insight.SumFrequencies(shoes, boots),
		Relevance:   rel,
	}
}

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("writes pages, terms and relevance sheets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := insightxlsx.Encoder{}.Encode(&buf, testReport())
		require.NoError(t, err)

		f := openWorkbook(t, buf.Bytes())
		assert.Equal(t, []string{"Pages", "Terms", "Relevance"}, f.GetSheetList())
	})

	t.Run("writes one page row per record", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, insightxlsx.Encoder{}.Encode(&buf, testReport()))

		rows, err := openWorkbook(t, buf.Bytes()).GetRows(insightxlsx.PagesSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, insight.ReportColumns, rows[0])
		assert.Equal(t, []string{
			"https://a.example/shoes", "Running Shoes", "Reviewed", "Road, Trail", "120", "# Shoes",
		}, rows[1])
		assert.Equal(t, "https://b.example/boots", rows[2][0])
		assert.Equal(t, "40", rows[2][4])
	})

	t.Run("writes aggregate term counts in descending order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, insightxlsx.Encoder{}.Encode(&buf, testReport()))

		rows, err := openWorkbook(t, buf.Bytes()).GetRows(insightxlsx.TermsSheet)
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Term", "Count"},
			{"running", "2"},
			{"shoes", "1"},
			{"boots", "1"},
		}, rows)
	})

	t.Run("limits relevance rows to top k", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, insightxlsx.Encoder{TopK: 2}.Encode(&buf, testReport()))

		rows, err := openWorkbook(t, buf.Bytes()).GetRows(insightxlsx.RelevanceSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Term", "Score"}, rows[0])
		assert.Equal(t, "running", rows[1][0])
		score, err := strconv.ParseFloat(rows[1][1], 64)
		require.NoError(t, err)
		assert.InDelta(t, 1.386, score, 0.001)
		assert.Equal(t, "shoes", rows[2][0])
	})

	t.Run("truncates cells longer than the workbook limit", func(t *testing.T) {
		t.Parallel()

		r := testReport()
		r.Pages[0].Outline = strings.Repeat("é", excelize.TotalCellChars+100)
		r.Pages[1].Outline = strings.Repeat("b", excelize.TotalCellChars)

		var buf bytes.Buffer
		err := insightxlsx.Encoder{}.Encode(&buf, r)
		require.NoError(t, err)

		f := openWorkbook(t, buf.Bytes())
		rows, err := f.GetRows(insightxlsx.PagesSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)

		long := rows[1][5]
		assert.Equal(t, excelize.TotalCellChars, utf8.RuneCountInString(long))
		assert.True(t, strings.HasSuffix(long, insightxlsx.TruncatedMarker))
		assert.True(t, strings.HasPrefix(long, "éé"))
		assert.Equal(t, "https://a.example/shoes", rows[1][0])
		assert.Equal(t, r.Pages[1].Outline, rows[2][5])
	})

	t.Run("writes headers only for an empty report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, insightxlsx.Encoder{}.Encode(&buf, &insight.Report{}))

		rows, err := openWorkbook(t, buf.Bytes()).GetRows(insightxlsx.PagesSheet)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}
