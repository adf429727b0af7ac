// Package uniseg implements insight.Analyzer using Unicode text
// segmentation (UAX #29 word boundaries).
package uniseg

import (
	"strings"
	"unicode"

	"github.com/fwojciec/insight"
	"github.com/rivo/uniseg"
)

// Ensure Analyzer implements insight.Analyzer at compile time.
var _ insight.Analyzer = (*Analyzer)(nil)

// Analyzer splits text on Unicode word boundaries and keeps lowercased
// tokens made only of letters and digits.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Tokens returns the surviving tokens of text in source order.
func (a *Analyzer) Tokens(text string, stopwords insight.StopwordSet) []string {
	var tokens []string
	var word string
	state := -1
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		tok := strings.ToLower(word)
		if !alphanumeric(tok) || stopwords.Contains(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// alphanumeric reports whether s is non-empty and every rune is a letter
// or a number. Tokens with apostrophes, hyphens or decimal points fail.
func alphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
