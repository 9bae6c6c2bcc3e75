package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/slug"
	"github.com/icsbenin/candidature/pkg/storage"
)

// maxConcurrentReads bounds parallel attachment reads from storage.
const maxConcurrentReads = 4

// Dispatcher hands the composed notification to the mail provider.
type Dispatcher struct {
	sender   mailer.Sender
	store    storage.Storage
	recorder Recorder
	to       []string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherRecorder sets the metrics recorder.
func WithDispatcherRecorder(rec Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		if rec != nil {
			d.recorder = rec
		}
	}
}

// NewDispatcher creates a Dispatcher sending to the configured recipients.
// The sender is expected to fill in the sender identity (see mailer.Mailer).
func NewDispatcher(sender mailer.Sender, store storage.Storage, to []string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:   sender,
		store:    store,
		recorder: nopRecorder{},
		to:       to,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subject builds "Application: {FirstName} {LastName} - {TargetRole}".
func Subject(s Submission) string {
	return fmt.Sprintf("Application: %s - %s", s.FullName(), s.TargetRole)
}

// Dispatch loads every stored file and sends one notification.
// A storage read failure is an *UnexpectedError; a provider failure is a
// *DispatchError. The send is attempted exactly once.
func (d *Dispatcher) Dispatch(ctx context.Context, s Submission, files []UploadedFile, html, contentID string) error {
	attachments, err := d.loadAttachments(ctx, s, files, contentID)
	if err != nil {
		return err
	}

	email := &mailer.Email{
		To:          d.to,
		Subject:     Subject(s),
		HTML:        html,
		Attachments: attachments,
		Tags:        mailer.SimpleTags("application"),
	}

	start := time.Now()
	err = d.sender.Send(ctx, email)
	d.recorder.ObserveDispatch(time.Since(start), err)
	if err != nil {
		return &DispatchError{Err: err}
	}
	return nil
}

// loadAttachments reads files concurrently, keeping the upload order:
// photo, CV, then certificates as they arrived.
func (d *Dispatcher) loadAttachments(ctx context.Context, s Submission, files []UploadedFile, contentID string) ([]mailer.Attachment, error) {
	ordered := make([]UploadedFile, 0, len(files))
	ordered = append(ordered, filesByRole(files, RolePhoto)...)
	ordered = append(ordered, filesByRole(files, RoleCV)...)
	ordered = append(ordered, filesByRole(files, RoleCertificate)...)

	attachments := make([]mailer.Attachment, len(ordered))
	certIndex := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, f := range ordered {
		att := mailer.Attachment{ContentType: f.ContentType}
		switch f.Role {
		case RolePhoto:
			att.Filename = "photo_" + nameSuffix(s) + photoExtension(f)
			att.ContentID = contentID
		case RoleCV:
			att.Filename = "cv_" + nameSuffix(s) + ".pdf"
			att.ContentType = storage.MIMEPDF
		case RoleCertificate:
			certIndex++
			att.Filename = fmt.Sprintf("certificat_%d_%s.pdf", certIndex, nameSuffix(s))
			att.ContentType = storage.MIMEPDF
		}

		g.Go(func() error {
			content, err := d.read(gctx, f.Key)
			if err != nil {
				return &UnexpectedError{Op: "load attachment " + f.Key, Err: err}
			}
			att.Content = content
			attachments[i] = att
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (d *Dispatcher) read(ctx context.Context, key string) ([]byte, error) {
	rc, err := d.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// nameSuffix returns "{first}_{last}" with each part reduced to a safe file name token.
func nameSuffix(s Submission) string {
	return namePart(s.FirstName) + "_" + namePart(s.LastName)
}

func namePart(v string) string {
	p := slug.Make(v, slug.Lowercase(false), slug.MaxLength(40))
	if p == "" {
		return "applicant"
	}
	return p
}

// photoExtension keeps the original extension, falling back to the one of the content type.
func photoExtension(f UploadedFile) string {
	ext := strings.ToLower(filepath.Ext(f.OriginalName))
	if ext == "" || len(ext) > 10 {
		ext = storage.ExtFromMIME(f.ContentType)
	}
	return ext
}
