package middlewares

import (
	"context"
	"log/slog"

	"github.com/icsbenin/candidature/internal"
	"github.com/icsbenin/candidature/pkg/id"
	"github.com/icsbenin/candidature/pkg/logger"
)

// requestIDKey is the context key for storing the request ID.
type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// maxRequestIDLength bounds inbound IDs so a client cannot bloat every log line.
const maxRequestIDLength = 128

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string // ID generator function
	ResponseHeader string        // Response header name
	Headers        []string      // Headers to check for existing ID (in order)
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// RequestID returns middleware that assigns a unique request ID to each request.
// An upstream ID from the configured headers is reused; otherwise a ULID is generated.
// The ID is stored in the context and echoed in the X-Request-ID response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      id.NewULID,
		ResponseHeader: "X-Request-ID",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID := inboundRequestID(c, cfg.Headers)
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.ResponseHeader, reqID)

			return next(c)
		}
	}
}

// inboundRequestID returns the first non-empty value among headers.
func inboundRequestID(c internal.Context, headers []string) string {
	for _, h := range headers {
		if v := c.Header(h); v != "" {
			return v
		}
	}
	return ""
}

// GetRequestID extracts the request ID from the context.
// Returns an empty string if no request ID is set.
func GetRequestID(c internal.Context) string {
	if v, ok := c.Get(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor returns a ContextExtractor for logger.New.
// Adds "request_id" to every log entry written with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
