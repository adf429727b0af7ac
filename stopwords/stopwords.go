// Package stopwords provides embedded stopword lists keyed by ISO 639-1
// locale code.
package stopwords

import (
	"embed"
	"slices"
	"strings"

	"github.com/fwojciec/insight"
)

//go:embed lists/*.txt
var lists embed.FS

// ForLocale returns the stopword set for locale. The special locale
// insight.LocaleNone returns an empty set. Returns EINVALID for unknown
// locales.
func ForLocale(locale string) (insight.StopwordSet, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if locale == insight.LocaleNone {
		return insight.NewStopwordSet(), nil
	}

	data, err := lists.ReadFile("lists/" + locale + ".txt")
	if err != nil {
		return nil, insight.Errorf(insight.EINVALID, "no stopword list for locale %q (available: %s)",
			locale, strings.Join(Locales(), ", "))
	}

	set := insight.NewStopwordSet()
	for _, line := range strings.Split(string(data), "\n") {
		if word := strings.TrimSpace(line); word != "" {
			set[word] = struct{}{}
		}
	}
	return set, nil
}

// Locales returns the locales with an embedded list, sorted.
func Locales() []string {
	entries, err := lists.ReadDir("lists")
	if err != nil {
		return nil
	}
	locales := make([]string, 0, len(entries))
	for _, e := range entries {
		locales = append(locales, strings.TrimSuffix(e.Name(), ".txt"))
	}
	slices.Sort(locales)
	return locales
}
