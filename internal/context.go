package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped response writer that tracks
	// the status code and body size.
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter by name.
	Param(name string) string

	// Query returns the query parameter by name.
	Query(name string) string

	// RoutePattern returns the matched route pattern, e.g. "/api/send-application".
	// Returns an empty string before routing completes or for unmatched routes.
	RoutePattern() string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Error creates an HTTPError with the given status code and message.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Written returns true if the response has already been written.
	Written() bool

	// Logger returns the application logger.
	Logger() *slog.Logger

	// LogDebug logs a debug message with the request context.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with the request context.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with the request context.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with the request context.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value is visible to handlers and middleware further down the chain.
	Set(key, value any)

	// Get retrieves a value from the request context.
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	response *ResponseWriter
	request  *http.Request
	logger   *slog.Logger
}

// newContext creates a new context. An existing *ResponseWriter is reused so
// that every middleware layer observes the same write state.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	return &requestContext{
		request:  r,
		response: rw,
		logger:   logger,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) RoutePattern() string {
	rctx := chi.RouteContext(c.request.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
