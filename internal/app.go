package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/icsbenin/candidature/pkg/health"
	"github.com/icsbenin/candidature/pkg/logger"
)

// Default server timeouts.
// Write timeout leaves room for a full-size upload plus the mail provider round trip.
const (
	defaultReadTimeout       = 2 * time.Minute
	defaultWriteTimeout      = 3 * time.Minute
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	middlewares             []Middleware
	handlers                []Handler
	mounts                  []mount
}

// mount represents a plain http.Handler mount point.
type mount struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID()),
//	    internal.WithHandlers(application.NewHandler(svc)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
// Startup hooks run before the listener accepts requests; shutdown hooks run
// after the server has drained.
//
// Example:
//
//	err := app.Run(":5000",
//	    internal.Logger(log),
//	    internal.StartupHook(sweeper.Start),
//	    internal.ShutdownHook(sweeper.Stop),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		readTimeout:     cfg.readTimeout,
		writeTimeout:    cfg.writeTimeout,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Global middleware must be registered before any route.
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, m := range a.mounts {
		a.router.Mount(m.pattern, m.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler(a.healthConfig.message))
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks,
			health.WithLogger(a.logger),
		))
	}

	r := chiRouter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a.logger)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("handler error after response was written", slog.Any("error", err))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr))
		}
		return
	}
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	message       string
	livenessPath  string
	readinessPath string
}

// Default health check settings.
const (
	defaultLivenessPath    = "/health"
	defaultReadinessPath   = "/health/ready"
	defaultLivenessMessage = "Server is running"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithLivenessMessage sets the message reported by the liveness endpoint.
func WithLivenessMessage(msg string) HealthOption {
	return func(c *healthConfig) {
		if msg != "" {
			c.message = msg
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel on every readiness request.
//
// Example:
//
//	internal.WithReadinessCheck("storage", store.Healthcheck)
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
