package application_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/internal/application"
	"github.com/icsbenin/candidature/pkg/storage"
)

func newLocalStore(t *testing.T) (*storage.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)
	return store, dir
}

func TestReceiver_Receive(t *testing.T) {
	t.Parallel()

	store, dir := newLocalStore(t)
	rec := &fakeRecorder{}
	r := application.NewReceiver(store, application.WithReceiverRecorder(rec))

	sub, files, err := r.Receive(context.Background(), newRequest(t, validFields(), photo(), cv(), certificate(1)))
	require.NoError(t, err)

	assert.Equal(t, "Dupont", sub.LastName)
	assert.Equal(t, "Jean", sub.FirstName)
	assert.Equal(t, "Matelot", sub.TargetRole)
	assert.Equal(t, "+229 97 00 00 00", sub.Phone)

	require.Len(t, files, 3)
	assert.Equal(t, application.RolePhoto, files[0].Role)
	assert.Equal(t, "portrait.png", files[0].OriginalName)
	assert.Equal(t, "image/png", files[0].ContentType)
	assert.Equal(t, int64(len(pngBytes)), files[0].Size)
	assert.Equal(t, application.RoleCV, files[1].Role)
	assert.Equal(t, application.RoleCertificate, files[2].Role)
	assert.Len(t, dirEntries(t, dir), 3)
	assert.Equal(t, []string{"photo", "cv", "certificate"}, rec.files())

	for _, f := range files {
		assert.NotContains(t, f.Key, "portrait", "keys must not reuse the client file name")
	}
}

func TestReceiver_SkipsEmptyFileInput(t *testing.T) {
	t.Parallel()

	store, dir := newLocalStore(t)
	r := application.NewReceiver(store)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("nom", "Dupont"))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="photo"; filename=""`)
	h.Set("Content-Type", "application/octet-stream")
	_, err := w.CreatePart(h)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, application.SubmitPath, body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	sub, files, err := r.Receive(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Dupont", sub.LastName)
	assert.Empty(t, files)
	assert.Empty(t, dirEntries(t, dir))
}

func TestReceiver_FileTooLarge(t *testing.T) {
	t.Parallel()

	store, dir := newLocalStore(t)
	r := application.NewReceiver(store, application.WithMaxFileSize(1<<20))

	big := cv()
	big.content = append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 1<<20)...)

	_, files, err := r.Receive(context.Background(), newRequest(t, validFields(), photo(), big))

	var verr *application.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `file in field "cv" exceeds the 1 MB limit`, verr.Message)
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	require.Len(t, files, 1, "files stored before the failure are returned")
	assert.Equal(t, application.RolePhoto, files[0].Role)
	assert.Len(t, dirEntries(t, dir), 1, "the oversized file is not kept")
}

func TestReceiver_TextFieldTooLong(t *testing.T) {
	t.Parallel()

	store, _ := newLocalStore(t)
	r := application.NewReceiver(store)

	fields := validFields()
	fields["nom"] = string(bytes.Repeat([]byte("x"), application.DefaultMaxFieldSize+1))

	_, _, err := r.Receive(context.Background(), newRequest(t, fields))

	var verr *application.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, `field "nom" is too long`, verr.Message)
}

func TestReceiver_BodyLimit(t *testing.T) {
	t.Parallel()

	store, dir := newLocalStore(t)
	r := application.NewReceiver(store)

	big := cv()
	big.content = append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), 64<<10)...)

	req := newRequest(t, validFields(), photo(), big)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 16<<10)

	_, files, err := r.Receive(context.Background(), req)

	var verr *application.ValidationError
	require.True(t, errors.As(err, &verr), fmt.Sprintf("%v", err))
	assert.Equal(t, "request body too large", verr.Message)

	application.NewCleaner(store).Cleanup(context.Background(), files)
	assert.Empty(t, dirEntries(t, dir))
}

type failingPutStore struct {
	storage.Storage
}

func (failingPutStore) Put(context.Context, io.Reader, int64, ...storage.Option) (*storage.FileInfo, error) {
	return nil, fmt.Errorf("%w: disk full", storage.ErrUploadFailed)
}

func TestReceiver_StorageFailure(t *testing.T) {
	t.Parallel()

	r := application.NewReceiver(failingPutStore{})

	_, files, err := r.Receive(context.Background(), newRequest(t, validFields(), cv()))

	var uerr *application.UnexpectedError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, "store upload", uerr.Op)
	assert.Empty(t, files)

	code, msg := application.StatusCode(err)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal server error", msg)
}
