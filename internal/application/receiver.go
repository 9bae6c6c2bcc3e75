package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/icsbenin/candidature/pkg/storage"
)

// Upload limits.
const (
	DefaultMaxFileSize  = 25 << 20 // 25 MB per file
	DefaultMaxFieldSize = 1 << 20  // 1 MB per text field
	MaxCertificates     = 5
)

// MaxBodySize caps a whole submission: seven files plus the text fields.
const MaxBodySize = 7*DefaultMaxFileSize + DefaultMaxFieldSize

// fileField describes one accepted file field of the form.
type fileField struct {
	rule        storage.ValidationRule
	role        Role
	typeMessage string
	max         int
}

var fileFields = map[string]fileField{
	FieldPhoto: {
		role:        RolePhoto,
		max:         1,
		rule:        storage.ImageOnly(),
		typeMessage: "photo must be an image",
	},
	FieldCV: {
		role:        RoleCV,
		max:         1,
		rule:        storage.PDFOnly(),
		typeMessage: "documents must be PDF files",
	},
	FieldCertificates: {
		role:        RoleCertificate,
		max:         MaxCertificates,
		rule:        storage.PDFOnly(),
		typeMessage: "documents must be PDF files",
	},
}

// Receiver streams a multipart submission into temporary storage.
type Receiver struct {
	store        storage.Storage
	keys         *storage.KeyGenerator
	recorder     Recorder
	maxFileSize  int64
	maxFieldSize int64
}

// ReceiverOption configures a Receiver.
type ReceiverOption func(*Receiver)

// WithKeyGenerator sets the generator used for temporary file keys.
func WithKeyGenerator(g *storage.KeyGenerator) ReceiverOption {
	return func(r *Receiver) {
		if g != nil {
			r.keys = g
		}
	}
}

// WithMaxFileSize overrides the per-file ceiling.
func WithMaxFileSize(n int64) ReceiverOption {
	return func(r *Receiver) {
		if n > 0 {
			r.maxFileSize = n
		}
	}
}

// WithReceiverRecorder sets the metrics recorder.
func WithReceiverRecorder(rec Recorder) ReceiverOption {
	return func(r *Receiver) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewReceiver creates a Receiver writing into store.
func NewReceiver(store storage.Storage, opts ...ReceiverOption) *Receiver {
	r := &Receiver{
		store:        store,
		keys:         storage.NewKeyGenerator(),
		recorder:     nopRecorder{},
		maxFileSize:  DefaultMaxFileSize,
		maxFieldSize: DefaultMaxFieldSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Receive reads every part of the multipart request. Files stored before a
// failure are returned alongside the error so the caller can remove them.
func (r *Receiver) Receive(ctx context.Context, req *http.Request) (Submission, []UploadedFile, error) {
	var (
		sub    Submission
		files  []UploadedFile
		counts = make(map[Role]int, len(fileFields))
	)

	mr, err := req.MultipartReader()
	if err != nil {
		return sub, nil, &ValidationError{Message: "request must be multipart/form-data", Err: err}
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return sub, files, nil
		}
		if err != nil {
			return sub, files, bodyError(err)
		}

		err = r.receivePart(ctx, part, &sub, &files, counts)
		_ = part.Close()
		if err != nil {
			return sub, files, err
		}
	}
}

func (r *Receiver) receivePart(ctx context.Context, part *multipart.Part, sub *Submission, files *[]UploadedFile, counts map[Role]int) error {
	name := part.FormName()
	field, isFile := fileFields[name]

	switch {
	case isFile:
		file, stored, err := r.receiveFile(ctx, part, name, field, counts)
		if stored {
			*files = append(*files, file)
		}
		return err
	case part.FileName() != "":
		return &ValidationError{Field: name, Message: fmt.Sprintf("unexpected field %q", name)}
	default:
		value, err := r.readText(part, name)
		if err != nil {
			return err
		}
		sub.set(name, value)
		return nil
	}
}

// receiveFile stores one file part. stored is false when nothing was kept.
func (r *Receiver) receiveFile(ctx context.Context, part *multipart.Part, name string, field fileField, counts map[Role]int) (UploadedFile, bool, error) {
	br := bufio.NewReader(part)

	// An empty <input type="file"> is sent with no filename and no content.
	if part.FileName() == "" {
		if _, err := br.Peek(1); errors.Is(err, io.EOF) {
			return UploadedFile{}, false, nil
		}
	}

	counts[field.role]++
	if counts[field.role] > field.max {
		return UploadedFile{}, false, &ValidationError{
			Field:   name,
			Message: fmt.Sprintf("too many files for field %q (max %d)", name, field.max),
		}
	}

	declared := part.Header.Get("Content-Type")
	if err := field.rule.Validate(-1, declared); err != nil {
		return UploadedFile{}, false, &ValidationError{Field: name, Message: field.typeMessage, Err: err}
	}

	info, err := r.store.Put(ctx, br, -1,
		storage.WithKey(r.keys.Generate(part.FileName())),
		storage.WithContentType(declared),
		storage.WithValidation(storage.MaxSize(r.maxFileSize), field.rule),
	)
	if err != nil {
		return UploadedFile{}, false, r.storeError(name, err)
	}

	r.recorder.FileReceived(string(field.role))
	return UploadedFile{
		Role:         field.role,
		OriginalName: part.FileName(),
		Key:          info.Key,
		ContentType:  info.ContentType,
		Size:         info.Size,
	}, true, nil
}

func (r *Receiver) readText(part *multipart.Part, name string) (string, error) {
	b, err := io.ReadAll(io.LimitReader(part, r.maxFieldSize+1))
	if err != nil {
		return "", bodyError(err)
	}
	if int64(len(b)) > r.maxFieldSize {
		return "", &ValidationError{Field: name, Message: fmt.Sprintf("field %q is too long", name)}
	}
	return string(b), nil
}

func (r *Receiver) storeError(name string, err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) || errors.Is(err, io.ErrUnexpectedEOF) {
		return bodyError(err)
	}

	var verr *storage.FileValidationError
	if errors.As(err, &verr) {
		msg := verr.Message
		if verr.Code == storage.ErrCodeFileTooLarge {
			msg = fmt.Sprintf("file in field %q exceeds the %d MB limit", name, r.maxFileSize>>20)
		}
		return &ValidationError{Field: name, Message: msg, Err: err}
	}

	return &UnexpectedError{Op: "store upload", Err: err}
}

// bodyError classifies a failure to read the request body.
func bodyError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return &ValidationError{Message: "request body too large", Err: err}
	}
	return &ValidationError{Message: "malformed multipart body", Err: err}
}
