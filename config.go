package insight

import (
	"slices"
	"time"
)

// Configuration defaults.
const (
	DefaultRequestTimeout = 10 * time.Second
	DefaultMinURLCount    = 3
	DefaultStopwordLocale = "en"
	DefaultTopKTerms      = 10
	DefaultConcurrency    = 4
	DefaultCacheSize      = 128
	DefaultModel          = "gemini-2.5-flash"

	// DefaultUserAgent identifies requests as a desktop browser to reduce
	// the rate at which competitor sites block them.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Stopword locale values with special meaning.
const (
	LocaleAuto = "auto"
	LocaleNone = "none"
)

// Main content extractors.
const (
	MainContentNone        = ""
	MainContentTrafilatura = "trafilatura"
	MainContentReadability = "readability"
)

// Config holds the options of an analysis run.
type Config struct {
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	MinURLCount       int           `yaml:"min_url_count"`
	StopwordLocale    string        `yaml:"stopword_locale"`
	TopKTerms         int           `yaml:"top_k_terms"`
	ParagraphOnlyText bool          `yaml:"paragraph_only_text"`

	Concurrency int         `yaml:"concurrency"`
	SummaryMode SummaryMode `yaml:"summary_mode"`
	LinkPolicy  LinkPolicy  `yaml:"link_mode"`
	UserAgent   string      `yaml:"user_agent"`
	CacheSize   int         `yaml:"cache_size"`
	Model       string      `yaml:"model"`
	Browser     bool        `yaml:"browser"`
	MainContent string      `yaml:"main_content"`
}

// DefaultConfig returns the configuration used when no option is set.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:    DefaultRequestTimeout,
		MinURLCount:       DefaultMinURLCount,
		StopwordLocale:    DefaultStopwordLocale,
		TopKTerms:         DefaultTopKTerms,
		ParagraphOnlyText: true,
		Concurrency:       DefaultConcurrency,
		SummaryMode:       SummaryPerDocument,
		LinkPolicy:        LinkSubstring,
		UserAgent:         DefaultUserAgent,
		CacheSize:         DefaultCacheSize,
		Model:             DefaultModel,
	}
}

// TextPolicy returns the raw text policy selected by ParagraphOnlyText.
func (c *Config) TextPolicy() TextPolicy {
	if c.ParagraphOnlyText {
		return TextParagraphs
	}
	return TextDocument
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return Errorf(EINVALID, "request timeout must be positive")
	}
	if c.MinURLCount < 1 {
		return Errorf(EINVALID, "minimum URL count must be at least 1")
	}
	if c.StopwordLocale == "" {
		return Errorf(EINVALID, "stopword locale required")
	}
	if c.TopKTerms < 1 {
		return Errorf(EINVALID, "top-k terms must be at least 1")
	}
	if c.Concurrency < 1 {
		return Errorf(EINVALID, "concurrency must be at least 1")
	}
	if !slices.Contains([]SummaryMode{SummaryOff, SummaryPerDocument, SummaryBatch}, c.SummaryMode) {
		return Errorf(EINVALID, "unknown summary mode %q", c.SummaryMode)
	}
	if !slices.Contains([]LinkPolicy{LinkSubstring, LinkHost, LinkDomain}, c.LinkPolicy) {
		return Errorf(EINVALID, "unknown link mode %q", c.LinkPolicy)
	}
	if !slices.Contains([]string{MainContentNone, MainContentTrafilatura, MainContentReadability}, c.MainContent) {
		return Errorf(EINVALID, "unknown main content extractor %q", c.MainContent)
	}
	if c.CacheSize < 0 {
		return Errorf(EINVALID, "cache size must not be negative")
	}
	return nil
}
