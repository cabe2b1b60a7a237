package llm

// Provider names accepted by NewCompleter.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	providerClaudeAlias = "claude"
)

// Default models per provider.
const (
	OpenAIModel = "gpt-4o-mini"
	ClaudeModel = "claude-sonnet-4-20250514"
	GeminiModel = "gemini-2.5-flash"
)

// OpenAIEndpoint is the base URL of the OpenAI API.
const OpenAIEndpoint = "https://api.openai.com/v1"

// ChatRequest represents the OpenAI chat completions request format.
type ChatRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []Message `json:"messages"`
}

// Message represents a message in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse represents the relevant fields of an OpenAI response.
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
	Error   *APIError    `json:"error,omitempty"`
}

// ChatChoice is one completion alternative.
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// APIError is the error object some providers embed in the body.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Usage represents token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}
