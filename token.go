package insight

import "context"

// TokenCounter counts model tokens in a summarization context.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
