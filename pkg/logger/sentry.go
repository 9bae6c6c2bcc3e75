package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// newSentryHandler initializes the Sentry SDK and returns a handler for it.
// Returns nil when DSN is empty or initialization fails (stdout-only logging).
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		// Graceful degradation: log to stdout if Sentry init fails
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil
	}

	// Determine which levels to send to Sentry
	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	return sentryslog.Option{
		EventLevel: eventLevel, // Errors create Issues in Sentry
		LogLevel:   logLevel,   // Logs stored for context/search
	}.NewSentryHandler(context.Background())
}

// Flush waits up to timeout for buffered Sentry events to be delivered.
// It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) bool {
	if sentry.CurrentHub().Client() == nil {
		return true
	}
	return sentry.Flush(timeout)
}
