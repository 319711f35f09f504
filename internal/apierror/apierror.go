// Package apierror provides the error response envelopes of the API.
// All 4xx/5xx responses go through this package so that internal details
// (stack traces, DB errors) never leak to clients.
package apierror

// APIError is the canonical error envelope: the {"detail": "..."} shape
// existing clients expect.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
