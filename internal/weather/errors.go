package weather

import (
	"fmt"
	"net/http"
	"time"
)

// Kind categorizes a gateway error for HTTP mapping.
type Kind int

const (
	// KindInternal is the default for unexpected failures.
	KindInternal Kind = iota
	// KindInvalidInput indicates the request failed validation.
	KindInvalidInput
	// KindRateLimited indicates the caller exceeded a request budget.
	KindRateLimited
	// KindNotFound indicates the requested city does not exist upstream.
	KindNotFound
	// KindUpstreamUnavailable indicates a timeout or network failure reaching upstream.
	KindUpstreamUnavailable
	// KindUpstreamMisconfigured indicates the upstream rejected our credentials.
	KindUpstreamMisconfigured
	// KindUpstreamError indicates any other upstream failure.
	KindUpstreamError
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is a typed gateway error. Message is safe to show to callers;
// Err carries the internal cause and is logged, never serialized.
type Error struct {
	Kind       Kind
	Message    string
	Err        error
	Details    []FieldError
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case KindUpstreamMisconfigured, KindUpstreamError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Label is the machine-readable error name used in the response envelope.
func (e *Error) Label() string {
	switch e.Kind {
	case KindInvalidInput:
		return "Validation failed"
	case KindRateLimited:
		return "Too many requests"
	case KindNotFound:
		return "City not found"
	case KindUpstreamUnavailable:
		return "Failed to fetch weather data"
	case KindUpstreamMisconfigured:
		return "API configuration error"
	case KindUpstreamError:
		return "Failed to fetch weather data"
	default:
		return "Internal server error"
	}
}

// ErrInvalidInput builds a validation error with field-level details.
func ErrInvalidInput(details ...FieldError) *Error {
	return &Error{
		Kind:    KindInvalidInput,
		Message: "request parameters are invalid",
		Details: details,
	}
}

// ErrRateLimited builds a rate-limit error carrying a retry-after hint.
func ErrRateLimited(retryAfter time.Duration) *Error {
	return &Error{
		Kind:       KindRateLimited,
		Message:    "too many requests, please try again later",
		RetryAfter: retryAfter,
	}
}
