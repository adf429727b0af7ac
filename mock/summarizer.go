package mock

import (
	"context"

	"github.com/fwojciec/insight"
)

var _ insight.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of insight.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, context string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, context string) (string, error) {
	return s.SummarizeFn(ctx, context)
}

var _ insight.BatchSummarizer = (*BatchSummarizer)(nil)

// BatchSummarizer is a mock implementation of insight.BatchSummarizer.
type BatchSummarizer struct {
	SummarizeBatchFn func(ctx context.Context, contexts []string) ([]string, error)
}

func (s *BatchSummarizer) SummarizeBatch(ctx context.Context, contexts []string) ([]string, error) {
	return s.SummarizeBatchFn(ctx, contexts)
}
