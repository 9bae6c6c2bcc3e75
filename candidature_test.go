package candidature_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature"
	"github.com/icsbenin/candidature/internal/application"
	"github.com/icsbenin/candidature/middlewares"
	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/metrics"
	"github.com/icsbenin/candidature/pkg/storage"
)

type mockSender struct {
	mock.Mock
	healthErr error
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockSender) Healthcheck(context.Context) error {
	return m.healthErr
}

type server struct {
	app    *candidature.App
	dir    string
	sender *mockSender
}

func newServer(t *testing.T) *server {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	sender := &mockSender{}
	m := metrics.New()
	mail := mailer.New(sender, mailer.Config{FromEmail: "noreply@icsbenin.com", FromName: "Candidatures"})

	svc := application.NewService(
		application.NewReceiver(store, application.WithReceiverRecorder(m)),
		application.NewComposer(),
		application.NewDispatcher(mail, store, []string{"hr@icsbenin.com"}, application.WithDispatcherRecorder(m)),
		application.NewCleaner(store, application.WithCleanerRecorder(m)),
		application.WithRecorder(m),
	)

	app := candidature.New(
		candidature.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Metrics(m),
			middlewares.CORS(middlewares.WithAllowOrigins("https://icsbenin.com")),
			middlewares.Recover(),
		),
		candidature.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
		candidature.WithNotFoundHandler(middlewares.NotFound),
		candidature.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
		candidature.WithHealthChecks(
			candidature.WithLivenessMessage("Server is online"),
			candidature.WithReadinessCheck("storage", store.Healthcheck),
			candidature.WithReadinessCheck("mailer", mail.Healthcheck),
		),
		candidature.WithMount("/metrics", m.Handler()),
		candidature.WithHandlers(application.NewHandler(svc)),
	)

	return &server{app: app, dir: dir, sender: sender}
}

func (s *server) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.app.ServeHTTP(rec, req)
	return rec
}

func submission(t *testing.T) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, value := range map[string]string{
		"nom":       "Dupont",
		"prenom":    "Jean",
		"metier":    "Matelot",
		"telephone": "+229 97 00 00 00",
	} {
		require.NoError(t, w.WriteField(name, value))
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="cv"; filename="cv.pdf"`)
	h.Set("Content-Type", "application/pdf")
	pw, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = pw.Write([]byte("%PDF-1.4\n%%EOF\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/send-application", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Origin", "https://icsbenin.com")
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) candidature.Envelope {
	t.Helper()
	var env candidature.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestServer_Submission(t *testing.T) {
	t.Parallel()

	s := newServer(t)
	s.sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
		return e.From == "Candidatures <noreply@icsbenin.com>" &&
			e.Subject == "Application: Jean Dupont - Matelot" &&
			len(e.Attachments) == 1 &&
			e.Attachments[0].Filename == "cv_Jean_Dupont.pdf"
	})).Return(nil).Once()

	rec := s.serve(submission(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, candidature.OK("application sent"), decode(t, rec))
	assert.Equal(t, "https://icsbenin.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	s.sender.AssertExpectations(t)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	metricsRec := s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `outcome="sent"`)
}

func TestServer_ProviderFailure(t *testing.T) {
	t.Parallel()

	s := newServer(t)
	s.sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("resend: 422 invalid from")).Once()

	rec := s.serve(submission(t))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, candidature.Fail("failed to send application"), decode(t, rec))
	s.sender.AssertExpectations(t)

	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	s := newServer(t)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var live map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &live))
	assert.Equal(t, "OK", live["status"])
	assert.Equal(t, "Server is online", live["message"])

	ready := s.serve(httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"mailer":{"status":"healthy"}`)
	s.sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestServer_ReadinessMailerDown(t *testing.T) {
	t.Parallel()

	s := newServer(t)
	s.sender.healthErr = errors.New("smtp: dial smtp.example.com:587: i/o timeout")

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/health/ready?format=json", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mailer":{"status":"unhealthy","error":"smtp: dial smtp.example.com:587: i/o timeout"}`)
	assert.Contains(t, rec.Body.String(), `"storage":{"status":"healthy"}`)
}

func TestServer_UnknownRoutes(t *testing.T) {
	t.Parallel()

	s := newServer(t)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, candidature.Fail("route not found"), decode(t, rec))

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/send-application", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestServer_Preflight(t *testing.T) {
	t.Parallel()

	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/send-application", strings.NewReader(""))
	req.Header.Set("Origin", "https://icsbenin.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := s.serve(req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
