// Package internal provides the HTTP kernel of the application relay: the App
// lifecycle, a chi-backed Router, the request Context, and error plumbing.
//
// # Core Types
//
//   - App: owns the chi router, global middleware, health endpoints and graceful shutdown
//   - Context: request/response access, JSON helpers, request-scoped logging and values
//   - Router: interface handlers use to declare GET and POST routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler signature returning an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: turns handler errors into responses
//   - HTTPError: error carrying an HTTP status code and a user-facing message
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Handler) submit(c internal.Context) error {
//	    res, err := h.service.Process(c, c.Request())
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, res)
//	}
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	    ),
//	    internal.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("storage", store.Healthcheck)),
//	    internal.WithMount("/metrics", m.Handler()),
//	    internal.WithHandlers(application.NewHandler(svc)),
//	)
//
//	if err := app.Run(":5000", internal.Logger(log)); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
//
// # Error Handling
//
// Handlers return errors instead of writing failure responses. The configured
// ErrorHandler receives every error from handlers and from the not-found and
// method-not-allowed handlers. Errors returned after the response has been
// written are logged and dropped.
//
// # Graceful Shutdown
//
// Run listens for SIGINT and SIGTERM. On signal it stops accepting requests,
// drains in-flight ones within the shutdown timeout, and then runs shutdown
// hooks in registration order.
package internal
