// Package server provides the HTTP and WebSocket API for the interview platform.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/interview-platform/internal/extraction"
	"github.com/jonathan/interview-platform/internal/llm"
)

// ErrServiceUnavailable is returned by AI-backed routes when no
// reasoning-service credential is configured.
var ErrServiceUnavailable = errors.New("reasoning service is not configured")

// HTTPStatus maps a pipeline error to the appropriate HTTP status code.
// Input-validation failures are 400, a missing credential is 503, and
// upstream reasoning-service failures are 502.
func HTTPStatus(err error) int {
	var (
		unsupported  *extraction.UnsupportedFormatError
		failed       *extraction.ExtractionFailedError
		insufficient *extraction.InsufficientContentError
		upstream     *llm.UpstreamError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &failed), errors.As(err, &insufficient):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the machine-readable code used in error response bodies.
func errorCode(err error) string {
	var (
		unsupported  *extraction.UnsupportedFormatError
		failed       *extraction.ExtractionFailedError
		insufficient *extraction.InsufficientContentError
		upstream     *llm.UpstreamError
	)
	switch {
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &failed):
		return "extraction_failed"
	case errors.As(err, &insufficient):
		return "insufficient_content"
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "internal_error"
	}
}
