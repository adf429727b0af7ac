package mock

import "github.com/fwojciec/insight"

var _ insight.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of insight.Analyzer.
type Analyzer struct {
	TokensFn func(text string, stopwords insight.StopwordSet) []string
}

func (a *Analyzer) Tokens(text string, stopwords insight.StopwordSet) []string {
	return a.TokensFn(text, stopwords)
}

var _ insight.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of insight.Scorer.
type Scorer struct {
	ScoreFn func(documents []string, stopwords insight.StopwordSet) (*insight.RelevanceTable, error)
}

func (s *Scorer) Score(documents []string, stopwords insight.StopwordSet) (*insight.RelevanceTable, error) {
	return s.ScoreFn(documents, stopwords)
}

var _ insight.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of insight.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) (string, bool)
}

func (d *LanguageDetector) Detect(text string) (string, bool) {
	return d.DetectFn(text)
}
