package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// StatusOK is the status reported by the liveness endpoint.
const StatusOK = "OK"

// LivenessResponse is the body of the liveness endpoint.
type LivenessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LivenessHandler returns an http.HandlerFunc that always responds
// {"status":"OK","message":message} while the process is up.
func LivenessHandler(message string) http.HandlerFunc {
	body := &LivenessResponse{Status: StatusOK, Message: message}
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}

// ReadinessHandler returns an http.HandlerFunc that runs all provided checks.
// Responds 200 when every check passes and 503 otherwise.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	checker := NewChecker(checks, opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := checker.Run(r.Context())

		status := http.StatusOK
		if !resp.Healthy() {
			status = http.StatusServiceUnavailable
		}

		if wantsJSON(r) {
			writeJSON(w, status, resp)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		if resp.Healthy() {
			_, _ = w.Write([]byte("OK"))
		} else {
			_, _ = w.Write([]byte("Service Unavailable"))
		}
	}
}

// wantsJSON checks if the client wants JSON response.
func wantsJSON(r *http.Request) bool {
	// Check query parameter first (easier for debugging)
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	// Check Accept header
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json")
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
