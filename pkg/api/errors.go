package api

import "fmt"

// ErrorType represents the category of an API error. The HTTP adapter maps
// each type to a transport status code; services only ever speak in types.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeAlreadyExists  ErrorType = "already_exists"
	ErrorTypeServerError    ErrorType = "server_error"
)

// APIError represents a structured API error with type, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level
// error response body.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewUnauthorizedError creates an APIError for missing or invalid
// credentials and for role-check failures.
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
// Resources outside the caller's tenant report the same error: existence
// under a foreign tenant must not be distinguishable.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewAlreadyExistsError creates an APIError for unique-constraint violations.
func NewAlreadyExistsError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeAlreadyExists,
		Message: message,
	}
}

// NewServerError creates an APIError for internal failures. The message
// must never carry store error detail; callers pass a generic summary.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
