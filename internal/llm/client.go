package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Message is a single turn of a chat-completions conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles recognized by the completions API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Options tune a single generation request.
type Options struct {
	// Temperature controls sampling randomness. Zero means "use the API default".
	Temperature float64
	// MaxTokens caps the reply length. Zero means no explicit cap.
	MaxTokens int
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent sends a single-prompt request and returns the reply text
	GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts Options) (string, error)
	// Chat requests the next assistant turn for an ordered conversation
	Chat(ctx context.Context, messages []Message, tier ModelTier, opts Options) (string, error)
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	// case ProviderGemini:
	//     return NewGeminiClient(config, apiKey)
	// case ProviderAnthropic:
	//     return NewClaudeClient(config, apiKey)
	default:
		return NewOpenAIClient(config, apiKey)
	}
}

// UpstreamError is a failure reported by (or while reaching) the reasoning
// service. StatusCode is zero for transport-level failures.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("reasoning service error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("reasoning service unreachable: %s", e.Message)
}

// OpenAIClient implements Client against the OpenAI chat-completions API.
type OpenAIClient struct {
	apiKey     string
	config     *Config
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAIClient{
		apiKey: apiKey,
		config: config,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// chatResponse is the subset of the completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// GenerateContent sends a single user prompt and returns the reply text.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts Options) (string, error) {
	return c.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, tier, opts)
}

// Chat requests the next assistant turn for an ordered conversation.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, tier ModelTier, opts Options) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.sendRequest(ctx, chatRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Message: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *OpenAIClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// sendRequest posts a chat-completions request and decodes the response.
func (c *OpenAIClient) sendRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
	}

	if chatResp.Error != nil {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: chatResp.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	return &chatResp, nil
}
