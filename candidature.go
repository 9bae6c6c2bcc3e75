package candidature

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/icsbenin/candidature/internal"
	"github.com/icsbenin/candidature/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Envelope is the {success, message} body of every API response.
	Envelope = internal.Envelope

	// HTTPError carries a status code and a client-facing message.
	HTTPError = internal.HTTPError

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with status tracking and hooks.
	ResponseWriter = internal.ResponseWriter
)

// Constructors

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := candidature.New(
//	    candidature.WithMiddleware(middlewares.RequestID(), middlewares.Logging()),
//	    candidature.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
//	    candidature.WithHandlers(application.NewHandler(svc)),
//	)
//
//	err := app.Run(":5000", candidature.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Response helpers

// OK returns a success envelope.
func OK(message string) Envelope {
	return internal.OK(message)
}

// Fail returns a failure envelope.
func Fail(message string) Envelope {
	return internal.Fail(message)
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
//
// Example:
//
//	candidature.WithHandlers(
//	    application.NewHandler(svc),
//	)
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithMount attaches a plain http.Handler under pattern, outside the
// Context-based error handling. Used for /metrics.
func WithMount(pattern string, h http.Handler) Option {
	return internal.WithMount(pattern, h)
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks configures the liveness and readiness endpoints.
//
// Example:
//
//	candidature.WithHealthChecks(
//	    candidature.WithReadinessCheck("storage", store.Healthcheck),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger sets the application logger used by handlers and the router.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// Health options

// WithLivenessPath sets the liveness endpoint path. Default: /health.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithLivenessMessage sets the message of the liveness payload.
func WithLivenessMessage(message string) HealthOption {
	return internal.WithLivenessMessage(message)
}

// WithReadinessPath sets the readiness endpoint path. Default: /health/ready.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ReadTimeout overrides the server read timeout.
func ReadTimeout(d time.Duration) RunOption {
	return internal.ReadTimeout(d)
}

// WriteTimeout overrides the server write timeout.
func WriteTimeout(d time.Duration) RunOption {
	return internal.WriteTimeout(d)
}

// ShutdownTimeout sets the graceful shutdown timeout.
// Default: 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function called before the server accepts
// connections. A failing hook aborts startup.
//
// Example:
//
//	candidature.StartupHook(sweeper.StartFunc())
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function called during shutdown.
// Hooks are called in the order they were registered.
//
// Example:
//
//	candidature.ShutdownHook(sweeper.Shutdown())
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
