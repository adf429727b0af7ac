package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveReport measures storing a report the size of a typical
// competitor comparison in file-based and in-memory databases.
func BenchmarkSaveReport(b *testing.B) {
	b.Run("file", func(b *testing.B) {
		benchmarkSaveReport(b, filepath.Join(b.TempDir(), "bench.db"))
	})

	b.Run("memory", func(b *testing.B) {
		benchmarkSaveReport(b, ":memory:")
	})
}

func benchmarkSaveReport(b *testing.B, path string) {
	b.Helper()

	db := sqlite.NewDB(path)
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewReportStore(db)
	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := benchReport(fmt.Sprintf("report-%d", i))
		if err := store.SaveReport(ctx, r); err != nil {
			b.Fatal(err)
		}
	}
}

func benchReport(id string) *insight.Report {
	const pages, termsPerPage = 10, 200

	r := &insight.Report{ID: id, CreatedAt: time.Now(), Relevance: insight.NewRelevanceTable()}
	freqs := make([]*insight.FrequencyTable, 0, pages)
	for p := 0; p < pages; p++ {
		ft := insight.NewFrequencyTable()
		for t := 0; t < termsPerPage; t++ {
			term := fmt.Sprintf("term%d", t)
			ft.Add(term, t%7+1)
			r.Relevance.Add(term, float64(t)/10)
		}
		freqs = append(freqs, ft)
		r.Pages = append(r.Pages, &insight.PageReport{
			Record:      &insight.PageRecord{URL: fmt.Sprintf("https://site%d.example/page", p), WordCount: 900},
			Frequencies: ft,
		})
	}
	r.Frequencies = insight.SumFrequencies(freqs...)
	return r
}
