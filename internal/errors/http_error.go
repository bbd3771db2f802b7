package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Helpers for common errors
var (
	NewNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	NewConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	NewForbidden    = func(msg string) *HTTPError { return NewHTTPError(http.StatusForbidden, msg) }
	NewUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)
