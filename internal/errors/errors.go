// FilePath: internal/errors/errors.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Error types
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeBackend    ErrorType = "backend"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeDatabase   ErrorType = "database"
	ErrorTypeInternal   ErrorType = "internal"
)

// ConsoleError is a classified failure surfaced to the user as inline status text.
// Validation errors never reach the backend; backend errors carry the HTTP status and
// the server-provided text; transport errors carry the underlying error text.
type ConsoleError struct {
	Type      ErrorType `json:"type"`
	Message   string    `json:"message"`
	Code      int       `json:"code"`
	RequestID string    `json:"request_id,omitempty"`
	Details   any       `json:"details,omitempty"`
	err       error     // Internal error for logging
}

// Error implements the error interface
func (e *ConsoleError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the internal error to errors.Is / errors.As.
func (e *ConsoleError) Unwrap() error {
	return e.err
}

// WithRequestID adds a request ID to the error
func (e *ConsoleError) WithRequestID(id string) *ConsoleError {
	e.RequestID = id
	return e
}

// WithDetails adds additional details to the error
func (e *ConsoleError) WithDetails(details any) *ConsoleError {
	e.Details = details
	return e
}

// NewValidationError creates a local validation error. No network call was made.
func NewValidationError(msg string, err error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeValidation,
		Message: msg,
		Code:    http.StatusBadRequest,
		err:     err,
	}
}

// NewBackendError creates an HTTP-level error returned by the backend.
// msg is the server-provided text when available, empty otherwise.
func NewBackendError(status int, msg string, err error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeBackend,
		Message: msg,
		Code:    status,
		err:     err,
	}
}

// NewTransportError creates an error for a request that never produced a response.
func NewTransportError(err error) *ConsoleError {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	return &ConsoleError{
		Type:    ErrorTypeTransport,
		Message: msg,
		Code:    http.StatusBadGateway,
		err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(msg string, err error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeNotFound,
		Message: msg,
		Code:    http.StatusNotFound,
		err:     err,
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(msg string, err error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeDatabase,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(msg string, err error) *ConsoleError {
	return &ConsoleError{
		Type:    ErrorTypeInternal,
		Message: msg,
		Code:    http.StatusInternalServerError,
		err:     err,
	}
}

// As returns the ConsoleError in err's chain, if any.
func As(err error) (*ConsoleError, bool) {
	var ce *ConsoleError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsValidation checks if an error is a Validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsBackend checks if an error is an HTTP-level backend error
func IsBackend(err error) bool {
	return isType(err, ErrorTypeBackend)
}

// IsTransport checks if an error is a transport error
func IsTransport(err error) bool {
	return isType(err, ErrorTypeTransport)
}

// StatusOf returns the HTTP status carried by err, or 500.
func StatusOf(err error) int {
	if ce, ok := As(err); ok && ce.Code != 0 {
		return ce.Code
	}
	return http.StatusInternalServerError
}

func isType(err error, t ErrorType) bool {
	if ce, ok := As(err); ok {
		return ce.Type == t
	}
	return false
}
