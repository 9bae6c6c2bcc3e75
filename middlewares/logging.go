package middlewares

import (
	"log/slog"
	"time"

	"github.com/icsbenin/candidature/internal"
)

// Logging returns middleware that writes one log line per request.
// Register it after RequestID so the line carries the request_id attribute.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)
			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", c.ResponseWriter().Size()),
				slog.String("remote_addr", c.Request().RemoteAddr),
			}
			if route := c.RoutePattern(); route != "" {
				attrs = append(attrs, slog.String("route", route))
			}

			switch {
			case status >= 500:
				c.LogError("http request", attrs...)
			case status >= 400:
				c.LogWarn("http request", attrs...)
			default:
				c.LogInfo("http request", attrs...)
			}

			return err
		}
	}
}

// responseStatus reports the status that was, or is about to be, written.
// An error still pending in the chain has not been rendered yet.
func responseStatus(c internal.Context, err error) int {
	if c.Written() || err == nil {
		return c.ResponseWriter().Status()
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code
	}
	return 500
}
