package middlewares

import (
	"time"

	"github.com/icsbenin/candidature/internal"
)

// unmatchedRoute labels requests that matched no route, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// HTTPRecorder receives one observation per request.
// Implemented by *metrics.Metrics.
type HTTPRecorder interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics returns middleware that records request duration labelled by
// method, route pattern and status code.
func Metrics(rec HTTPRecorder) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		if rec == nil {
			return next
		}
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			route := c.RoutePattern()
			if route == "" {
				route = unmatchedRoute
			}
			rec.ObserveHTTP(c.Request().Method, route, responseStatus(c, err), time.Since(start))

			return err
		}
	}
}
