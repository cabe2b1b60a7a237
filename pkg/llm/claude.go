package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// ClaudeClient completes prompts with the Anthropic Messages API.
type ClaudeClient struct {
	client anthropic.Client
	model  string
}

// NewClaudeClient creates a new Claude API client. Extra options are
// appended after the defaults, so tests can point it at another base URL.
func NewClaudeClient(apiKey, model string, opts ...option.RequestOption) (client *ClaudeClient) {
	if model == "" {
		model = ClaudeModel
	}

	defaults := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(120 * time.Second),
	}

	client = &ClaudeClient{
		client: anthropic.NewClient(append(defaults, opts...)...),
		model:  model,
	}
	return client
}

// Complete sends prompt as a single user message and joins the text blocks of the reply.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	var msg *anthropic.Message
	msg, err = c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		failure := &CompletionFailure{Provider: ProviderAnthropic, Reason: "API request failed", Cause: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			failure.Reason = fmt.Sprintf("API request failed with status %d", apiErr.StatusCode)
		}
		err = failure
		return text, err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text = sb.String()
	if strings.TrimSpace(text) == "" {
		err = &CompletionFailure{Provider: ProviderAnthropic, Reason: "empty response", Raw: string(msg.StopReason)}
		text = ""
		return text, err
	}

	return text, err
}

// Close is a no-op for the SDK client.
func (c *ClaudeClient) Close() (err error) {
	return err
}
