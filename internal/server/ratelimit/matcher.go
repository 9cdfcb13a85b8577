package ratelimit

import "strings"

// MatchEndpoint resolves the endpoint configuration for a request. Health
// probes are always unlimited. Exact matches win over prefix matches; a nil
// return means the caller should apply the default limit.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && (path == "/health" || path == "/api/health") {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
