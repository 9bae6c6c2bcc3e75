package middlewares

import (
	"log/slog"
	"runtime"

	"github.com/icsbenin/candidature/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace in logs
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.StackSize = size
	}
}

// WithRecoverDisablePrintStack disables including stack trace in logs.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that recovers from panics.
// It logs the panic with its stack and returns a PanicError; ErrorHandler
// renders it as a generic 500 envelope.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					attrs := []any{
						slog.Any("panic", r),
						slog.String("method", c.Request().Method),
						slog.String("path", c.Request().URL.Path),
					}

					var stack []byte
					if !cfg.DisablePrintStack {
						stack = make([]byte, cfg.StackSize)
						stack = stack[:runtime.Stack(stack, false)]
						attrs = append(attrs, slog.String("stack", string(stack)))
					}

					c.LogError("panic recovered", attrs...)

					err = &PanicError{
						Value: r,
						Stack: stack,
					}
				}
			}()

			return next(c)
		}
	}
}
