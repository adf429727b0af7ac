package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/insight"
)

// Ensure LoggingSummarizer implements both summarizer interfaces.
var (
	_ insight.Summarizer      = (*LoggingSummarizer)(nil)
	_ insight.BatchSummarizer = (*LoggingSummarizer)(nil)
)

// LoggingSummarizer wraps the summarization service with logging. Either
// wrapped service may be nil if the caller never uses that mode.
type LoggingSummarizer struct {
	next   insight.Summarizer
	batch  insight.BatchSummarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next insight.Summarizer, batch insight.BatchSummarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, batch: batch, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
func (s *LoggingSummarizer) Summarize(ctx context.Context, context string) (outline string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"context_bytes", len(context),
			"outline_bytes", len(outline),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, context)
}

// SummarizeBatch delegates to the wrapped batch summarizer and logs the
// operation.
func (s *LoggingSummarizer) SummarizeBatch(ctx context.Context, contexts []string) (outlines []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize batch",
			"contexts", len(contexts),
			"outlines", len(outlines),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.batch.SummarizeBatch(ctx, contexts)
}
