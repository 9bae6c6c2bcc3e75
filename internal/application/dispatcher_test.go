package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsbenin/candidature/internal/application"
	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/storage"
)

func storeFile(t *testing.T, store storage.Storage, role application.Role, name, contentType string, content []byte) application.UploadedFile {
	t.Helper()
	info, err := store.Put(context.Background(), strings.NewReader(string(content)), int64(len(content)),
		storage.WithContentType(contentType))
	require.NoError(t, err)
	return application.UploadedFile{
		Role:         role,
		OriginalName: name,
		Key:          info.Key,
		ContentType:  info.ContentType,
		Size:         info.Size,
	}
}

func TestSubject(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Application: Jean Dupont - Matelot",
		application.Subject(application.Submission{FirstName: "Jean", LastName: "Dupont", TargetRole: "Matelot"}))
}

func TestDispatcher_AttachmentNames(t *testing.T) {
	t.Parallel()

	store, _ := newLocalStore(t)
	sender := &recordingSender{}
	rec := &fakeRecorder{}
	d := application.NewDispatcher(sender, store, []string{recipient}, application.WithDispatcherRecorder(rec))

	files := []application.UploadedFile{
		storeFile(t, store, application.RoleCertificate, "diplome.pdf", "application/pdf", pdfBytes),
		storeFile(t, store, application.RolePhoto, "moi.JPEG", "image/jpeg", pngBytes),
		storeFile(t, store, application.RoleCV, "cv.pdf", "application/pdf", pdfBytes),
	}
	sub := application.Submission{FirstName: "Aïcha", LastName: "N'Diaye / Koné", TargetRole: "Cuisinière"}

	err := d.Dispatch(context.Background(), sub, files, "<p>hi</p>", application.PhotoContentID)
	require.NoError(t, err)

	emails := sender.sent()
	require.Len(t, emails, 1)

	var names []string
	for _, att := range emails[0].Attachments {
		names = append(names, att.Filename)
		assert.NotContains(t, att.Filename, "/")
	}
	require.Len(t, names, 3)
	assert.True(t, strings.HasPrefix(names[0], "photo_"))
	assert.True(t, strings.HasSuffix(names[0], ".jpeg"))
	assert.True(t, strings.HasPrefix(names[1], "cv_"))
	assert.True(t, strings.HasPrefix(names[2], "certificat_1_"))

	assert.Equal(t, mailer.SimpleTags("application"), emails[0].Tags)
	assert.Equal(t, 1, rec.dispatches())
}

func TestDispatcher_MissingFile(t *testing.T) {
	t.Parallel()

	store, _ := newLocalStore(t)
	sender := &recordingSender{}
	d := application.NewDispatcher(sender, store, []string{recipient})

	files := []application.UploadedFile{{Role: application.RoleCV, Key: "gone.pdf", ContentType: "application/pdf"}}
	err := d.Dispatch(context.Background(), application.Submission{FirstName: "Jean", LastName: "Dupont", TargetRole: "Matelot"}, files, "<p>hi</p>", "")

	var uerr *application.UnexpectedError
	require.True(t, errors.As(err, &uerr))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, sender.sent(), "nothing is sent when an attachment cannot be read")
}

func TestDispatcher_ProviderFailure(t *testing.T) {
	t.Parallel()

	store, _ := newLocalStore(t)
	providerErr := errors.New("resend: 401 unauthorized")
	rec := &fakeRecorder{}
	d := application.NewDispatcher(mailer.SenderFunc(func(context.Context, *mailer.Email) error {
		return providerErr
	}), store, []string{recipient}, application.WithDispatcherRecorder(rec))

	err := d.Dispatch(context.Background(), application.Submission{FirstName: "Jean", LastName: "Dupont", TargetRole: "Matelot"}, nil, "<p>hi</p>", "")

	var derr *application.DispatchError
	require.True(t, errors.As(err, &derr))
	assert.ErrorIs(t, err, providerErr)
	assert.Equal(t, 1, rec.dispatchFailures())
}
