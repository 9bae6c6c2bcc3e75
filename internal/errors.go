package internal

import (
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface; error handlers translate it into a
// response envelope.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrRequestTooLarge(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusRequestEntityTooLarge, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// Helper functions for error inspection.

func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if no HTTPError is found.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
