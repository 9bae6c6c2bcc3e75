package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what a Handler sees while declaring its routes.
// Paths use chi patterns, so "{name}" segments are read with Context.Param.
type Router interface {
	GET(path string, h HandlerFunc)
	POST(path string, h HandlerFunc)
}

// chiRouter registers Context handlers on a chi mux. Handler errors go
// through the App's error handler.
type chiRouter struct {
	mux chi.Router
	app *App
}

func (r chiRouter) GET(path string, h HandlerFunc) {
	r.mux.Get(path, r.app.wrapHandler(h))
}

func (r chiRouter) POST(path string, h HandlerFunc) {
	r.mux.Post(path, r.app.wrapHandler(h))
}

// adaptMiddleware runs a Context middleware inside chi's http.Handler chain.
// Every layer gets its own Context over the same writer and request.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.wrapHandler(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
