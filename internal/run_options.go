package internal

import (
	"context"
	"log/slog"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

// runConfig holds runtime configuration for the server.
type runConfig struct {
	logger          *slog.Logger
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	startupHooks    []func(context.Context) error
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
}

// buildRunConfig creates a runConfig from the provided options.
func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		readTimeout:     defaultReadTimeout,
		writeTimeout:    defaultWriteTimeout,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Logger sets the server logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ReadTimeout sets the maximum duration for reading the entire request,
// including the multipart body. Defaults to 2 minutes.
func ReadTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

// WriteTimeout sets the maximum duration before timing out writes of the response.
// Defaults to 3 minutes.
func WriteTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// StartupHook registers a function to run before the server accepts requests.
// Hooks run in registration order; the first error aborts startup.
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.startupHooks = append(c.startupHooks, fn)
		}
	}
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	internal.ShutdownHook(sweeper.Stop)
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// WithContext sets a custom base context for signal handling.
// Useful for testing or when integrating with existing context hierarchies.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
