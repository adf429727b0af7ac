package insight

import (
	"cmp"
	"encoding/json"
	"slices"
)

// DefaultRelevanceTopK is the number of relevance terms shown in reports.
const DefaultRelevanceTopK = 20

// TermScore is a term with its cross-document relevance score.
type TermScore struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// RelevanceTable maps vocabulary terms to aggregate TF-IDF scores.
// Terms keep the order in which they entered the vocabulary.
type RelevanceTable struct {
	scores map[string]float64
	order  []string
}

// NewRelevanceTable returns an empty table.
func NewRelevanceTable() *RelevanceTable {
	return &RelevanceTable{scores: make(map[string]float64)}
}

// Add adds delta to the score of term, appending term to the vocabulary
// on first use.
func (t *RelevanceTable) Add(term string, delta float64) {
	if _, ok := t.scores[term]; !ok {
		t.order = append(t.order, term)
	}
	t.scores[term] += delta
}

// Score returns the score of term and whether it is in the vocabulary.
func (t *RelevanceTable) Score(term string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	s, ok := t.scores[term]
	return s, ok
}

// Len returns the vocabulary size.
func (t *RelevanceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Terms returns the vocabulary in first-appearance order.
func (t *RelevanceTable) Terms() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Top returns the k highest scoring terms, descending. Ties keep vocabulary
// order. k <= 0 returns every term.
func (t *RelevanceTable) Top(k int) []TermScore {
	if t == nil {
		return nil
	}
	entries := make([]TermScore, 0, len(t.order))
	for _, term := range t.order {
		entries = append(entries, TermScore{Term: term, Score: t.scores[term]})
	}
	slices.SortStableFunc(entries, func(a, b TermScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if k > 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries
}

// MarshalJSON encodes the table as a list of entries in vocabulary order.
func (t *RelevanceTable) MarshalJSON() ([]byte, error) {
	entries := make([]TermScore, 0, t.Len())
	if t != nil {
		for _, term := range t.order {
			entries = append(entries, TermScore{Term: term, Score: t.scores[term]})
		}
	}
	return json.Marshal(entries)
}

// Scorer computes cross-document term importance.
type Scorer interface {
	// Score builds a RelevanceTable over documents, filtering stopwords.
	// Returns EINSUFFICIENT if documents is empty.
	Score(documents []string, stopwords StopwordSet) (*RelevanceTable, error)
}
