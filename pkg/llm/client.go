package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Completer returns a single text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (text string, err error)
	Close() error
}

// NewCompleter creates the client for the named provider.
// An empty model selects the provider default.
func NewCompleter(ctx context.Context, provider, apiKey, model string) (completer Completer, err error) {
	if apiKey == "" {
		err = errors.Errorf("no API key configured for provider %q", provider)
		return completer, err
	}

	switch NormalizeProvider(provider) {
	case ProviderOpenAI, "":
		completer = NewOpenAIClient(apiKey, model)
	case ProviderAnthropic:
		completer = NewClaudeClient(apiKey, model)
	case ProviderGemini:
		completer, err = NewGeminiClient(ctx, apiKey, model)
	default:
		err = errors.Errorf("unknown provider %q (want %s, %s or %s)", provider, ProviderOpenAI, ProviderAnthropic, ProviderGemini)
	}

	return completer, err
}

// NormalizeProvider lowercases a provider name and resolves the "claude" alias.
func NormalizeProvider(provider string) (name string) {
	name = strings.ToLower(strings.TrimSpace(provider))
	if name == providerClaudeAlias {
		name = ProviderAnthropic
	}
	return name
}

// OpenAIClient represents an OpenAI chat completions client.
type OpenAIClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
	endpoint   string
}

// NewOpenAIClient creates a new OpenAI client.
func NewOpenAIClient(apiKey, model string) (client *OpenAIClient) {
	if model == "" {
		model = OpenAIModel
	}
	client = &OpenAIClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: OpenAIEndpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	return client
}

// Complete sends prompt as a single user message.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	chatReq := ChatRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}

	var reqBody []byte
	reqBody, err = json.Marshal(chatReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = &CompletionFailure{Provider: ProviderOpenAI, Reason: "HTTP request failed", Cause: err}
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = &CompletionFailure{Provider: ProviderOpenAI, Reason: "failed to read response body", Cause: err}
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = &CompletionFailure{
			Provider: ProviderOpenAI,
			Reason:   fmt.Sprintf("API request failed with status %d", resp.StatusCode),
			Raw:      string(respBody),
		}
		return text, err
	}

	var chatResp ChatResponse
	err = json.Unmarshal(respBody, &chatResp)
	if err != nil {
		err = &CompletionFailure{Provider: ProviderOpenAI, Reason: "failed to parse response", Raw: string(respBody), Cause: err}
		return text, err
	}

	if chatResp.Error != nil {
		err = &CompletionFailure{Provider: ProviderOpenAI, Reason: chatResp.Error.Type + ": " + chatResp.Error.Message, Raw: string(respBody)}
		return text, err
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		err = &CompletionFailure{Provider: ProviderOpenAI, Reason: "empty response", Raw: string(respBody)}
		return text, err
	}

	text = chatResp.Choices[0].Message.Content
	return text, err
}

// Close is a no-op; the HTTP client holds no resources.
func (c *OpenAIClient) Close() (err error) {
	return err
}
