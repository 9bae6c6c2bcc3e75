package application_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/internal"
	"github.com/icsbenin/candidature/internal/application"
	"github.com/icsbenin/candidature/middlewares"
	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/storage"
)

var (
	fixedNow  = func() time.Time { return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC) }
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake image")
	pdfBytes  = []byte("%PDF-1.4\n% fake document\n%%EOF\n")
	recipient = "hr@example.com"
)

type filePart struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func photo() filePart {
	return filePart{field: "photo", name: "portrait.png", contentType: "image/png", content: pngBytes}
}

func cv() filePart {
	return filePart{field: "cv", name: "resume.pdf", contentType: "application/pdf", content: pdfBytes}
}

func certificate(n int) filePart {
	return filePart{
		field:       "certificats",
		name:        fmt.Sprintf("cert-%d.pdf", n),
		contentType: "application/pdf",
		content:     pdfBytes,
	}
}

func validFields() map[string]string {
	return map[string]string{
		"nom":                    "Dupont",
		"prenom":                 "Jean",
		"nationalite":            "Béninoise",
		"situation_matrimoniale": "Célibataire",
		"age":                    "29",
		"telephone":              "+229 97 00 00 00",
		"metier":                 "Matelot",
	}
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		pw, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newRequest(t *testing.T, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	body, contentType := multipartBody(t, fields, files...)
	req := httptest.NewRequest(http.MethodPost, application.SubmitPath, body)
	req.Header.Set("Content-Type", contentType)
	return req
}

// recordingSender keeps every email it is given and returns err.
type recordingSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
	err    error
	onSend func(*mailer.Email)
}

func (s *recordingSender) Send(_ context.Context, email *mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	if s.onSend != nil {
		s.onSend(email)
	}
	return s.err
}

func (s *recordingSender) sent() []*mailer.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mailer.Email(nil), s.emails...)
}

type testApp struct {
	app *internal.App
	dir string
}

func newTestApp(t *testing.T, sender mailer.Sender) *testApp {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	svc := application.NewService(
		application.NewReceiver(store),
		application.NewComposer(application.WithClock(fixedNow)),
		application.NewDispatcher(sender, store, []string{recipient}),
		application.NewCleaner(store),
	)

	app := internal.New(
		internal.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
		internal.WithHandlers(application.NewHandler(svc)),
	)
	return &testApp{app: app, dir: dir}
}

func (a *testApp) do(t *testing.T, req *http.Request) (int, internal.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	a.app.ServeHTTP(rec, req)

	var env internal.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
