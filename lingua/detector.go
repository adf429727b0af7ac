// Package lingua implements insight.LanguageDetector using the lingua
// n-gram language models.
package lingua

import (
	"strings"

	"github.com/fwojciec/insight"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements insight.LanguageDetector at compile time.
var _ insight.LanguageDetector = (*Detector)(nil)

// Languages are the languages the detector chooses between. Each has an
// embedded stopword list.
var Languages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

// minRelativeDistance rejects texts whose top two candidates score too
// close to call.
const minRelativeDistance = 0.1

// Detector identifies page language among Languages.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector. Models load lazily on first use.
func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			WithMinimumRelativeDistance(minRelativeDistance).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of text's language, lowercased.
func (d *Detector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
