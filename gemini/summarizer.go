// Package gemini implements the summarization boundary with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/insight"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = insight.DefaultModel

// Ensure Summarizer implements both summarization interfaces at compile time.
var (
	_ insight.Summarizer      = (*Summarizer)(nil)
	_ insight.BatchSummarizer = (*Summarizer)(nil)
)

// Summarizer asks Gemini for SEO content outlines.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer. An empty model selects DefaultModel.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize returns an outline for one page's summarization context.
func (s *Summarizer) Summarize(ctx context.Context, context string) (string, error) {
	if strings.TrimSpace(context) == "" {
		return "", insight.Errorf(insight.EINVALID, "summarization context required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildOutlinePrompt(context)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", serviceError(err)
	}
	if result == nil {
		return "", insight.Errorf(insight.ESERVICE, "gemini returned nil result")
	}
	return strings.TrimSpace(result.Text()), nil
}

// SummarizeBatch returns one outline per context from a single request.
// The response is constrained to a JSON array of strings.
func (s *Summarizer) SummarizeBatch(ctx context.Context, contexts []string) ([]string, error) {
	if len(contexts) == 0 {
		return nil, nil
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildBatchPrompt(contexts)}},
		}},
		BuildBatchConfig(),
	)
	if err != nil {
		return nil, serviceError(err)
	}
	if result == nil {
		return nil, insight.Errorf(insight.ESERVICE, "gemini returned nil result")
	}

	var outlines []string
	if err := json.Unmarshal([]byte(result.Text()), &outlines); err != nil {
		return nil, insight.Errorf(insight.ESERVICE, "decode batch outlines: %v", err)
	}
	if len(outlines) != len(contexts) {
		return nil, insight.Errorf(insight.ESERVICE, "gemini returned %d outlines for %d pages", len(outlines), len(contexts))
	}
	for i := range outlines {
		outlines[i] = strings.TrimSpace(outlines[i])
	}
	return outlines, nil
}

const systemInstruction = "You are an SEO content strategist. Given the text of a competitor web page, " +
	"produce a structured content outline a writer could use to create a better page on the same topic. " +
	"Use Markdown headings for sections and short bullet points for the key points of each section. " +
	"Base the outline only on the provided page content."

// BuildConfig returns the GenerateContentConfig for single outline requests.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		Temperature: &temp,
	}
}

// BuildBatchConfig returns the GenerateContentConfig for batch requests.
// The response is a JSON array with one outline string per page.
func BuildBatchConfig() *genai.GenerateContentConfig {
	config := BuildConfig()
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return config
}

// BuildOutlinePrompt builds the user prompt for a single page.
func BuildOutlinePrompt(context string) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(context)
	sb.WriteString("\n</page>\n\n")
	sb.WriteString("Create a structured content outline for this page.")
	return sb.String()
}

// BuildBatchPrompt builds the user prompt for several pages. Pages are
// numbered so the model can keep outlines in input order.
func BuildBatchPrompt(contexts []string) string {
	var sb strings.Builder
	sb.WriteString("<pages>\n")
	for i, c := range contexts {
		sb.WriteString("<page>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<content>%s</content>\n", c)
		sb.WriteString("</page>\n")
	}
	sb.WriteString("</pages>\n\n")
	fmt.Fprintf(&sb, "Create a structured content outline for each of the %d pages. "+
		"Respond with a JSON array of exactly %d strings, one outline per page, in page order.",
		len(contexts), len(contexts))
	return sb.String()
}

// serviceError translates a Gemini client error to ESERVICE, naming auth
// and quota failures.
func serviceError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return insight.Errorf(insight.ESERVICE, "gemini authentication failed: %v", err)
	case http.StatusTooManyRequests:
		return insight.Errorf(insight.ESERVICE, "gemini quota exhausted: %v", err)
	case 0:
		return insight.Errorf(insight.ESERVICE, "gemini request failed: %v", err)
	default:
		return insight.Errorf(insight.ESERVICE, "gemini returned HTTP %d: %v", code, err)
	}
}
