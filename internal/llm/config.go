// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and future multi-provider support.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: conversation, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: evaluation, profile synthesis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is the OpenAI provider
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider (future)
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider (future)
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	BaseURL  string
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently OpenAI)
func DefaultConfig() *Config {
	return DefaultOpenAIConfig()
}

// DefaultOpenAIConfig returns the default OpenAI configuration
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		BaseURL:  "https://api.openai.com/v1",
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithBaseURL returns a copy of the config pointing at a different API base.
// Used to route requests through OpenAI-compatible proxies.
func (c *Config) WithBaseURL(baseURL string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		BaseURL:  baseURL,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	return newConfig
}

// WithModel returns a copy of the config with every tier pinned to one
// model. Used for the OPENAI_MODEL override; an empty model is a no-op.
func (c *Config) WithModel(model string) *Config {
	if model == "" {
		return c
	}
	newConfig := &Config{
		Provider: c.Provider,
		BaseURL:  c.BaseURL,
		Models:   make(map[ModelTier]string, len(c.Models)),
	}
	for k := range c.Models {
		newConfig.Models[k] = model
	}
	return newConfig
}
