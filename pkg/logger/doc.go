// Package logger provides structured logging with context extraction and Sentry integration.
//
// This package extends the standard library's log/slog with two capabilities:
// automatic context-based attribute injection and optional Sentry error reporting.
//
// # Basic Usage
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middlewares.GetRequestID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.Config{Level: "info"}, requestIDExtractor)
//	log.InfoContext(ctx, "application received", slog.Int("files", 2))
//	// {"level":"INFO","msg":"application received","files":2,"request_id":"01J..."}
//
// # Sentry Integration
//
// When Config.Sentry.DSN is set, records are also sent to Sentry: errors create
// Issues and warnings are stored as logs. If the DSN is empty or the SDK fails to
// initialize, logging continues to stdout only. Call [Flush] during shutdown so
// buffered events are delivered.
//
// # Handler Decoration
//
// [LogHandlerDecorator] wraps any slog.Handler to add extraction behavior.
// Extractors run on every log call so request-scoped values are always fresh.
package logger
