package internal

import "net/http"

// ResponseWriter records the status and body size of a response, so logging
// can report them and the error handler knows when it is too late to write.
type ResponseWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

// NewResponseWriter wraps w. Status reports 200 until a header is written.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader forwards the first status code and drops later ones.
func (w *ResponseWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Write sends an implicit 200 header on first use.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

// Status returns the response status code.
func (w *ResponseWriter) Status() int { return w.status }

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 { return w.size }

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool { return w.wroteHeader }

// Flush implements http.Flusher when the underlying writer does.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
