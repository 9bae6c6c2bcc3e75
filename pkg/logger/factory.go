package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Sentry SentryConfig
}

// New creates a JSON logger writing to stdout, optionally fanned out to Sentry.
// Context extractors are applied to every destination.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newLogger(os.Stdout, cfg, extractors...)
}

func newLogger(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})

	var handler slog.Handler = stdoutHandler
	if sentryHandler := newSentryHandler(cfg.Sentry, stdoutHandler); sentryHandler != nil {
		handler = newMultiHandler(stdoutHandler, sentryHandler)
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a slog.Level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
