package internal

// Handler declares routes on a router.
//
// Example:
//
//	type ApplicationHandler struct {
//	    service *application.Service
//	}
//
//	func (h *ApplicationHandler) Routes(r internal.Router) {
//	    r.POST("/api/send-application", h.submit)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the application's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Timing(next internal.HandlerFunc) internal.HandlerFunc {
//	    return func(c internal.Context) error {
//	        start := time.Now()
//	        err := next(c)
//	        c.LogInfo("handled", "took", time.Since(start))
//	        return err
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
