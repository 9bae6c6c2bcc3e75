// Package middlewares provides the HTTP middleware stack of the application relay.
//
// # Request ID
//
// RequestID reuses an upstream X-Request-ID (or X-Correlation-ID) header or
// generates a ULID, stores it in the request context and echoes it back.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// # Logging and Metrics
//
// Logging writes one line per request with method, path, route, status and
// duration. Metrics records the same request into an HTTPRecorder such as
// *metrics.Metrics, labelled by route pattern.
//
// # Recover
//
// Recover turns panics into *PanicError values so the ErrorHandler can render
// them like any other failure.
//
// # CORS
//
// CORS answers preflight requests and decorates cross-origin responses. The
// default configuration allows any origin, which matches a form hosted on a
// separate static site.
//
// # Error Handling
//
// ErrorHandler renders every handler error as {"success":false,"message":...}.
// Status codes come from *internal.HTTPError or from the supplied StatusMapper:
//
//	app := internal.New(
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logging(),
//	        middlewares.Metrics(m),
//	        middlewares.CORS(),
//	        middlewares.Recover(),
//	    ),
//	    internal.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
//	    internal.WithNotFoundHandler(middlewares.NotFound),
//	    internal.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
//	)
package middlewares
