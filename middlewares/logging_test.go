package middlewares_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/internal"
	"github.com/icsbenin/candidature/middlewares"
	"github.com/icsbenin/candidature/pkg/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(b.buf.Bytes()))
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

type observation struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeRecorder) ObserveHTTP(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{method: method, route: route, status: status})
}

func newObservedApp(buf *syncBuffer, rec middlewares.HTTPRecorder) *internal.App {
	log := slog.New(logger.NewLogHandlerDecorator(
		slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		middlewares.RequestIDExtractor(),
	))

	return internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Metrics(rec),
			middlewares.Recover(),
		),
		internal.WithErrorHandler(middlewares.ErrorHandler(mapStatus)),
		internal.WithNotFoundHandler(middlewares.NotFound),
		internal.WithHandlers(routeFunc(func(r internal.Router) {
			r.POST("/api/send-application", func(c internal.Context) error {
				if c.Query("fail") != "" {
					return errRejected
				}
				return c.JSON(http.StatusOK, internal.OK("sent"))
			})
			r.GET("/panic", func(c internal.Context) error {
				panic(errors.New("boom"))
			})
		})),
	)
}

func TestLoggingAndMetrics(t *testing.T) {
	t.Parallel()

	buf := &syncBuffer{}
	fake := &fakeRecorder{}
	app := newObservedApp(buf, fake)

	for _, target := range []struct{ method, url string }{
		{http.MethodPost, "/api/send-application"},
		{http.MethodPost, "/api/send-application?fail=1"},
		{http.MethodGet, "/panic"},
		{http.MethodGet, "/missing"},
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(target.method, target.url, nil)
		req.Header.Set("X-Request-ID", "req-1")
		app.ServeHTTP(rec, req)
		require.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
	}

	assert.Equal(t, []observation{
		{method: http.MethodPost, route: "/api/send-application", status: http.StatusOK},
		{method: http.MethodPost, route: "/api/send-application", status: http.StatusBadRequest},
		{method: http.MethodGet, route: "/panic", status: http.StatusInternalServerError},
		{method: http.MethodGet, route: "unmatched", status: http.StatusNotFound},
	}, fake.obs)

	var requestLines []map[string]any
	for _, line := range buf.lines(t) {
		assert.Equal(t, "req-1", line["request_id"])
		if line["msg"] == "http request" {
			requestLines = append(requestLines, line)
		}
	}
	require.Len(t, requestLines, 4)
	assert.Equal(t, "INFO", requestLines[0]["level"])
	assert.Equal(t, "WARN", requestLines[1]["level"])
	assert.Equal(t, "ERROR", requestLines[2]["level"])
	assert.EqualValues(t, 500, requestLines[2]["status"])
}

func TestMetrics_NilRecorder(t *testing.T) {
	t.Parallel()

	called := false
	h := middlewares.Metrics(nil)(func(c internal.Context) error {
		called = true
		return nil
	})

	rec := httptest.NewRecorder()
	require.NoError(t, h(newTestContext(rec, httptest.NewRequest(http.MethodGet, "/", nil))))
	assert.True(t, called)
}
