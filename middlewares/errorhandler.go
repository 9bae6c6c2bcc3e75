package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/icsbenin/candidature/internal"
)

// GenericErrorMessage is returned to clients for every unexpected failure.
const GenericErrorMessage = "internal server error"

// StatusMapper translates a handler error into an HTTP status code and a
// user-facing message. It must be total: unknown errors map to 500.
type StatusMapper func(err error) (code int, message string)

// ErrorHandler returns an internal.ErrorHandler that renders every error as
// the {success:false, message} envelope.
//
// Resolution order: *internal.HTTPError keeps its own code and message,
// a recovered panic is a generic 500, and everything else goes through
// mapStatus. A nil mapStatus maps everything else to a generic 500.
func ErrorHandler(mapStatus StatusMapper) internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		code, message := resolveError(err, mapStatus)

		attrs := []any{
			slog.Int("status", code),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		}

		if code >= http.StatusInternalServerError {
			c.LogError("request failed", attrs...)
		} else {
			c.LogWarn("request rejected", attrs...)
		}

		return c.JSON(code, internal.Fail(message))
	}
}

func resolveError(err error, mapStatus StatusMapper) (int, string) {
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr.Code, httpErr.Message
	}
	if IsPanicError(err) || mapStatus == nil {
		return http.StatusInternalServerError, GenericErrorMessage
	}
	return mapStatus(err)
}

// NotFound renders unknown routes as a 404 envelope.
func NotFound(c internal.Context) error {
	return internal.ErrNotFound("route not found")
}

// MethodNotAllowed renders a wrong method on a known route as a 405 envelope.
func MethodNotAllowed(c internal.Context) error {
	return internal.ErrMethodNotAllowed("method not allowed")
}
