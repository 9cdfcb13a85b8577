// Package config provides configuration loading and validation for the interview platform server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration loaded from the environment.
// The reasoning-service API key is deliberately optional: when it is absent
// the AI-backed routes answer 503 while mock/static routes stay available.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// APIKey is the reasoning-service credential (OPENAI_API_KEY).
	APIKey string

	// BaseURL is the chat-completions API base (OPENAI_BASE_URL).
	BaseURL string

	// Model, when set, pins every chat model tier to one model
	// (OPENAI_MODEL). Empty keeps the per-tier defaults.
	Model string

	// RealtimeURL is the websocket endpoint of the streaming reasoning
	// service (OPENAI_REALTIME_URL).
	RealtimeURL string

	// RealtimeModel is the model requested when opening a realtime session.
	RealtimeModel string

	// RealtimeVoice is the voice used for synthesized audio.
	RealtimeVoice string
}

// Load reads configuration from environment variables, applying defaults
// for everything except the API key.
func Load() *Config {
	return &Config{
		Port:          getEnvInt("PORT", 3000),
		APIKey:        os.Getenv("OPENAI_API_KEY"),
		BaseURL:       getEnvString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:         os.Getenv("OPENAI_MODEL"),
		RealtimeURL:   getEnvString("OPENAI_REALTIME_URL", "wss://api.openai.com/v1/realtime"),
		RealtimeModel: getEnvString("OPENAI_REALTIME_MODEL", "gpt-4o-realtime-preview"),
		RealtimeVoice: getEnvString("OPENAI_REALTIME_VOICE", "alloy"),
	}
}

// Validate checks that the configuration has usable values.
// A missing API key is not an error here; routes degrade per-request instead.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: invalid port %d", c.Port)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config error: base URL must not be empty")
	}
	if c.RealtimeURL == "" {
		return fmt.Errorf("config error: realtime URL must not be empty")
	}
	return nil
}

// HasAPIKey reports whether a reasoning-service credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
