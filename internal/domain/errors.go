package domain

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a malformed or invalid request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeConfiguration indicates a missing or broken deployment
	// configuration, such as an absent provider credential. This is an
	// operator-fixable defect, not a runtime failure.
	ErrorTypeConfiguration ErrorType = "configuration"

	// ErrorTypeProviderExhausted indicates every upstream candidate failed.
	ErrorTypeProviderExhausted ErrorType = "provider_exhausted"

	// ErrorTypeUpstreamFormat indicates an upstream reply arrived but could
	// not be parsed into any usable structure.
	ErrorTypeUpstreamFormat ErrorType = "upstream_format"

	// ErrorTypeNotFound indicates a resource was not found.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeServer indicates an internal server error.
	ErrorTypeServer ErrorType = "server"
)

// APIError is the canonical error surfaced by handlers and services.
type APIError struct {
	// Type is the category of error
	Type ErrorType `json:"type"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// StatusCode is the suggested HTTP status code
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *APIError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}

	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeConfiguration:
		return http.StatusInternalServerError
	case ErrorTypeProviderExhausted, ErrorTypeUpstreamFormat:
		return http.StatusBadGateway
	case ErrorTypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewAPIError creates a new API error.
func NewAPIError(errType ErrorType, message string) *APIError {
	return &APIError{
		Type:    errType,
		Message: message,
	}
}

// WithStatusCode sets a specific HTTP status code.
func (e *APIError) WithStatusCode(code int) *APIError {
	e.StatusCode = code
	return e
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *APIError {
	return NewAPIError(ErrorTypeInvalidRequest, message)
}

// ErrConfiguration creates a configuration error.
func ErrConfiguration(message string) *APIError {
	return NewAPIError(ErrorTypeConfiguration, message)
}

// ErrProvidersExhausted creates a provider exhausted error.
func ErrProvidersExhausted(message string) *APIError {
	return NewAPIError(ErrorTypeProviderExhausted, message)
}

// ErrUpstreamFormat creates an upstream format error.
func ErrUpstreamFormat(message string) *APIError {
	return NewAPIError(ErrorTypeUpstreamFormat, message)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *APIError {
	return NewAPIError(ErrorTypeNotFound, message)
}

// ErrServer creates a server error.
func ErrServer(message string) *APIError {
	return NewAPIError(ErrorTypeServer, message)
}
