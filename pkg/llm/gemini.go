package llm

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GeminiClient completes prompts with Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (client *GeminiClient, err error) {
	if apiKey == "" {
		err = errors.New("API key is required")
		return client, err
	}
	if model == "" {
		model = GeminiModel
	}

	var gc *genai.Client
	gc, err = genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		err = errors.Wrap(err, "failed to create Gemini client")
		return client, err
	}

	client = &GeminiClient{
		client: gc,
		model:  model,
	}
	return client, err
}

// Complete generates a single candidate and joins its text parts.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	model := c.client.GenerativeModel(c.model)
	//nolint:gosec // token limits are small
	model.SetMaxOutputTokens(int32(maxTokens))
	model.SetCandidateCount(1)

	var resp *genai.GenerateContentResponse
	resp, err = model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		err = &CompletionFailure{Provider: ProviderGemini, Reason: "API request failed", Cause: err}
		return text, err
	}

	text = extractGeminiText(resp)
	if strings.TrimSpace(text) == "" {
		err = &CompletionFailure{Provider: ProviderGemini, Reason: "empty response"}
		text = ""
		return text, err
	}

	return text, err
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() (err error) {
	if c.client != nil {
		err = c.client.Close()
	}
	return err
}

func extractGeminiText(resp *genai.GenerateContentResponse) (text string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return text
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return text
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	text = sb.String()
	return text
}
