package gemini

import (
	"context"

	"github.com/fwojciec/insight"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ insight.TokenCounter = (*TokenCounter)(nil)

// TokenCounter reports the model token size of summarization contexts
// using the local Gemini tokenizer, without an API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. An empty model selects
// DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, insight.Errorf(insight.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, insight.Errorf(insight.EINTERNAL, "count tokens: %v", err)
	}

	return int(result.TotalTokens), nil
}
