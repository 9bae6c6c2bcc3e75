package internal

import (
	"log/slog"
	"net/http"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithMount attaches a plain http.Handler at the given pattern.
// Global middleware still applies to mounted handlers.
//
// Example:
//
//	internal.WithMount("/metrics", m.Handler())
func WithMount(pattern string, h http.Handler) Option {
	return func(a *App) {
		if pattern == "" || h == nil {
			return
		}
		a.mounts = append(a.mounts, mount{handler: h, pattern: pattern})
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
//
// Example:
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]any{
//	        "success": false,
//	        "message": "internal server error",
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
//
// Example:
//
//	internal.WithNotFoundHandler(func(c internal.Context) error {
//	    return internal.ErrNotFound("route not found")
//	})
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) {
		a.methodNotAllowedHandler = h
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health): always returns {"status":"OK","message":...} while the process runs.
// Readiness (/health/ready): runs all configured checks.
//
// Example:
//
//	internal.WithHealthChecks(
//	    internal.WithLivenessMessage("Server is running"),
//	    internal.WithReadinessCheck("storage", store.Healthcheck),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			message:       defaultLivenessMessage,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger sets the application logger used by Context logging helpers.
// A nil logger leaves the no-op default in place.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}
