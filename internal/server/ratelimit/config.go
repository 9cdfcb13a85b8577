package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// EndpointConfig sets the per-window limit and burst capacity for one
// endpoint. A limit of zero means unlimited. Paths ending in "/" match by
// prefix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter-wide settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads limiter settings from the environment, falling back to
// the built-in endpoint tiers.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 120),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint tiers. Endpoints that fan
// out to the reasoning service get the strictest limits; the dialogue
// endpoint is called once per conversation turn and gets more headroom.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/resume", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
		{Path: "/resume/analyze", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/interview/turn", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/interview/evaluate", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		{Path: "/ws", Method: "GET", Limit: 10, Window: time.Minute, Burst: 3},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
