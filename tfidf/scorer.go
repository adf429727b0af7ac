// Package tfidf implements insight.Scorer with term frequency weighted by
// inverse document frequency, summed over the document set.
package tfidf

import (
	"math"

	"github.com/fwojciec/insight"
)

// Ensure Scorer implements insight.Scorer at compile time.
var _ insight.Scorer = (*Scorer)(nil)

// Scorer computes aggregate TF-IDF scores.
//
// For a vocabulary term t over N documents:
//
//	score(t) = Σ_d tf(t, d) · ln(N / df(t))
//
// where tf is the raw count of t in d and df is the number of documents
// containing t. A term present in every document scores zero, so a single
// document yields all-zero scores.
type Scorer struct {
	analyzer insight.Analyzer
}

// NewScorer creates a Scorer that tokenizes documents with a.
func NewScorer(a insight.Analyzer) *Scorer {
	return &Scorer{analyzer: a}
}

// Score returns the relevance table for documents. The vocabulary is the
// union of surviving tokens in order of first appearance. Returns
// EINSUFFICIENT for an empty document set.
func (s *Scorer) Score(documents []string, stopwords insight.StopwordSet) (*insight.RelevanceTable, error) {
	if len(documents) == 0 {
		return nil, insight.Errorf(insight.EINSUFFICIENT, "relevance scoring needs at least one document")
	}

	tfs := make([]*insight.FrequencyTable, len(documents))
	df := insight.NewFrequencyTable()
	for i, doc := range documents {
		tfs[i] = insight.Frequencies(s.analyzer, doc, stopwords)
		for _, term := range tfs[i].Terms() {
			df.Add(term, 1)
		}
	}

	n := float64(len(documents))
	table := insight.NewRelevanceTable()
	for _, term := range df.Terms() {
		idf := math.Log(n / float64(df.Count(term)))
		var score float64
		for _, tf := range tfs {
			score += float64(tf.Count(term)) * idf
		}
		table.Add(term, score)
	}
	return table, nil
}
