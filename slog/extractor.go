package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingExtractor implements insight.Extractor.
var _ insight.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   insight.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next insight.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(page *insight.RawPage) (rec *insight.PageRecord, err error) {
	defer func(begin time.Time) {
		var url string
		if page != nil {
			url = page.URL
		}
		var words, headings int
		if rec != nil {
			words = rec.WordCount
			headings = len(rec.Headings)
		}
		e.logger.Info("extract",
			"url", url,
			"words", words,
			"headings", headings,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(page)
}
