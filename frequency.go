package insight

import (
	"encoding/json"
	"slices"
)

// StopwordSet is a set of lowercased tokens excluded from analysis.
type StopwordSet map[string]struct{}

// NewStopwordSet returns a set containing the given words.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether word is a stopword. A nil set contains nothing.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// UnionStopwords returns a set containing every word of sets.
func UnionStopwords(sets ...StopwordSet) StopwordSet {
	u := NewStopwordSet()
	for _, s := range sets {
		for w := range s {
			u[w] = struct{}{}
		}
	}
	return u
}

// Analyzer splits text into normalized tokens.
type Analyzer interface {
	// Tokens returns the lowercased, alphanumeric tokens of text that are
	// not in stopwords, in source order.
	Tokens(text string, stopwords StopwordSet) []string
}

// LanguageDetector identifies the natural language of a text.
type LanguageDetector interface {
	// Detect returns the lowercase ISO 639-1 code of the text's language.
	// Returns false if the language cannot be determined reliably.
	Detect(text string) (locale string, ok bool)
}

// TermCount is a token with its occurrence count.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// FrequencyTable maps normalized tokens to occurrence counts and remembers
// the order in which tokens were first seen.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable returns an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Frequencies tokenizes text with a and counts the surviving tokens.
func Frequencies(a Analyzer, text string, stopwords StopwordSet) *FrequencyTable {
	return CountTokens(a.Tokens(text, stopwords))
}

// CountTokens builds a table from tokens in source order.
func CountTokens(tokens []string) *FrequencyTable {
	t := NewFrequencyTable()
	for _, tok := range tokens {
		t.Add(tok, 1)
	}
	return t
}

// SumFrequencies returns the element-wise sum of tables. First-occurrence
// order follows the order of tables, then each table's own order.
// Nil tables are treated as empty.
func SumFrequencies(tables ...*FrequencyTable) *FrequencyTable {
	sum := NewFrequencyTable()
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, term := range t.order {
			sum.Add(term, t.counts[term])
		}
	}
	return sum
}

// Add increases the count of term by n. Non-positive n is ignored.
func (t *FrequencyTable) Add(term string, n int) {
	if n <= 0 {
		return
	}
	if _, ok := t.counts[term]; !ok {
		t.order = append(t.order, term)
	}
	t.counts[term] += n
}

// Count returns the count for term, or zero if absent.
func (t *FrequencyTable) Count(term string) int {
	if t == nil {
		return 0
	}
	return t.counts[term]
}

// Len returns the number of distinct terms.
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	var total int
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Terms returns the distinct terms in first-occurrence order.
func (t *FrequencyTable) Terms() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Top returns the k entries with the highest count, descending. Ties keep
// first-occurrence order. k <= 0 returns every entry.
func (t *FrequencyTable) Top(k int) []TermCount {
	if t == nil {
		return nil
	}
	entries := make([]TermCount, 0, len(t.order))
	for _, term := range t.order {
		entries = append(entries, TermCount{Term: term, Count: t.counts[term]})
	}
	slices.SortStableFunc(entries, func(a, b TermCount) int {
		return b.Count - a.Count
	})
	if k > 0 && k < len(entries) {
		entries = entries[:k]
	}
	return entries
}

// MarshalJSON encodes the table as a list of entries in first-occurrence order.
func (t *FrequencyTable) MarshalJSON() ([]byte, error) {
	entries := make([]TermCount, 0, t.Len())
	if t != nil {
		for _, term := range t.order {
			entries = append(entries, TermCount{Term: term, Count: t.counts[term]})
		}
	}
	return json.Marshal(entries)
}
