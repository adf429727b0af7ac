package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// newTestClient returns a Gemini client that talks to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *genai.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     "test-key",
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: srv.Client(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL: srv.URL,
		},
	})
	require.NoError(t, err)
	return client
}

// textResponse writes a generateContent response with a single text part.
func textResponse(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
}

// errorResponse writes a Gemini API error body with the given status.
func errorResponse(w http.ResponseWriter, code int, status, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"status":  status,
		},
	})
}

func TestSummarizer_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("returns the model outline", func(t *testing.T) {
		t.Parallel()

		bodies := make(chan string, 1)
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			bodies <- string(b)
			textResponse(w, "  # Trail Running Shoes\n- Fit\n")
		})

		s := gemini.NewSummarizer(client, "")
		outline, err := s.Summarize(context.Background(), "Trail shoes need grip.")

		require.NoError(t, err)
		assert.Equal(t, "# Trail Running Shoes\n- Fit", outline)
		assert.Contains(t, <-bodies, "Trail shoes need grip.")
	})

	t.Run("rejects an empty context without calling the service", func(t *testing.T) {
		t.Parallel()

		var called atomic.Bool
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called.Store(true)
			textResponse(w, "outline")
		})

		s := gemini.NewSummarizer(client, "")
		_, err := s.Summarize(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
		assert.False(t, called.Load())
	})

	t.Run("maps authentication failures to ESERVICE", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			errorResponse(w, http.StatusForbidden, "PERMISSION_DENIED", "API key not valid")
		})

		s := gemini.NewSummarizer(client, "")
		_, err := s.Summarize(context.Background(), "page text")

		require.Error(t, err)
		assert.Equal(t, insight.ESERVICE, insight.ErrorCode(err))
		assert.Contains(t, insight.ErrorMessage(err), "authentication")
	})

	t.Run("maps quota exhaustion to ESERVICE", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			errorResponse(w, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", "quota exceeded")
		})

		s := gemini.NewSummarizer(client, "")
		_, err := s.Summarize(context.Background(), "page text")

		require.Error(t, err)
		assert.Equal(t, insight.ESERVICE, insight.ErrorCode(err))
		assert.Contains(t, insight.ErrorMessage(err), "quota")
	})
}

func TestSummarizer_SummarizeBatch(t *testing.T) {
	t.Parallel()

	t.Run("returns one outline per context in order", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, `["# First", " # Second "]`)
		})

		s := gemini.NewSummarizer(client, "")
		outlines, err := s.SummarizeBatch(context.Background(), []string{"one", "two"})

		require.NoError(t, err)
		assert.Equal(t, []string{"# First", "# Second"}, outlines)
	})

	t.Run("fails with ESERVICE when the outline count differs", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, `["# Only one"]`)
		})

		s := gemini.NewSummarizer(client, "")
		_, err := s.SummarizeBatch(context.Background(), []string{"one", "two"})

		require.Error(t, err)
		assert.Equal(t, insight.ESERVICE, insight.ErrorCode(err))
		assert.Contains(t, insight.ErrorMessage(err), "1 outlines for 2 pages")
	})

	t.Run("fails with ESERVICE on a malformed response", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			textResponse(w, "not json")
		})

		s := gemini.NewSummarizer(client, "")
		_, err := s.SummarizeBatch(context.Background(), []string{"one"})

		require.Error(t, err)
		assert.Equal(t, insight.ESERVICE, insight.ErrorCode(err))
	})

	t.Run("returns nil for no contexts", func(t *testing.T) {
		t.Parallel()

		s := gemini.NewSummarizer(nil, "")
		outlines, err := s.SummarizeBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Nil(t, outlines)
	})
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "content outline")
	require.NotNil(t, config.Temperature)
}

func TestBuildBatchConfig_ConstrainsResponseToStringArray(t *testing.T) {
	t.Parallel()

	config := gemini.BuildBatchConfig()

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Type)
	require.NotNil(t, config.ResponseSchema.Items)
	assert.Equal(t, genai.TypeString, config.ResponseSchema.Items.Type)
}

func TestBuildBatchPrompt_NumbersPages(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildBatchPrompt([]string{"alpha", "beta"})

	assert.Contains(t, prompt, "<index>1</index>\n<content>alpha</content>")
	assert.Contains(t, prompt, "<index>2</index>\n<content>beta</content>")
	assert.Contains(t, prompt, "exactly 2 strings")
	assert.Less(t, strings.Index(prompt, "alpha"), strings.Index(prompt, "beta"))
}

func TestBuildOutlinePrompt_WrapsContext(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildOutlinePrompt("## Page: Shoes")

	assert.True(t, strings.HasPrefix(prompt, "<page>\n## Page: Shoes\n</page>"))
}
