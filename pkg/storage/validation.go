package storage

import (
	"fmt"
	"io"
)

// FileValidationError represents a file validation failure.
type FileValidationError struct {
	Details map[string]any // Error-specific data
	Field   string         // Form field name (e.g., "photo")
	Code    string         // Error code (e.g., "file_too_large", "invalid_mime")
	Message string         // Human-readable message
}

// Error implements the error interface.
func (e *FileValidationError) Error() string {
	return e.Message
}

// Unwrap maps the error code to the matching sentinel so callers can use errors.Is.
func (e *FileValidationError) Unwrap() error {
	switch e.Code {
	case ErrCodeFileTooLarge:
		return ErrFileTooLarge
	case ErrCodeInvalidMIME:
		return ErrInvalidMIME
	}
	return nil
}

// Error codes for FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
)

// ValidationRule defines a validation check for uploads.
type ValidationRule interface {
	// Validate checks the file and returns an error if validation fails.
	// size is -1 when the length is not known before streaming.
	Validate(size int64, mimeType string) error
}

// ValidateReader runs all validation rules against upload metadata.
// Returns the first validation error encountered, or nil if all pass.
func ValidateReader(size int64, mimeType string, rules ...ValidationRule) error {
	for _, rule := range rules {
		if err := rule.Validate(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// maxSizeRule validates that file size is within limits.
type maxSizeRule struct {
	maxBytes int64
}

// MaxSize returns a rule that rejects files larger than the specified size.
// For streamed uploads the limit is also enforced while the content is written.
func MaxSize(bytes int64) ValidationRule {
	return &maxSizeRule{maxBytes: bytes}
}

// Validate implements ValidationRule.
func (r *maxSizeRule) Validate(size int64, _ string) error {
	if size > r.maxBytes {
		return tooLargeError(size, r.maxBytes)
	}
	return nil
}

func tooLargeError(got, limit int64) *FileValidationError {
	return &FileValidationError{
		Field:   "file",
		Code:    ErrCodeFileTooLarge,
		Message: fmt.Sprintf("file size exceeds limit of %d bytes", limit),
		Details: map[string]any{
			"limit": limit,
			"got":   got,
		},
	}
}

// typeRule accepts the declared MIME types its predicate allows.
type typeRule struct {
	accepts func(string) bool
	allowed string
}

// ImageOnly returns a rule that only accepts image/* types.
func ImageOnly() ValidationRule {
	return &typeRule{accepts: IsImageMIME, allowed: "image/*"}
}

// PDFOnly returns a rule that only accepts application/pdf.
func PDFOnly() ValidationRule {
	return &typeRule{accepts: IsPDFMIME, allowed: MIMEPDF}
}

// Validate implements ValidationRule.
func (r *typeRule) Validate(_ int64, mimeType string) error {
	if r.accepts(mimeType) {
		return nil
	}
	return &FileValidationError{
		Field:   "file",
		Code:    ErrCodeInvalidMIME,
		Message: fmt.Sprintf("file type %q is not allowed", mimeType),
		Details: map[string]any{
			"type":    mimeType,
			"allowed": r.allowed,
		},
	}
}

// limitedReader fails with a *FileValidationError once more than max bytes were read.
type limitedReader struct {
	r    io.Reader
	max  int64
	read int64
}

// LimitReader wraps r so that reading more than max bytes returns a
// file_too_large *FileValidationError instead of silently truncating.
func LimitReader(r io.Reader, max int64) io.Reader {
	return &limitedReader{r: r, max: max}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.read > l.max {
		return 0, tooLargeError(l.read, l.max)
	}
	// Allow one byte past the limit to detect overflow.
	if remaining := l.max - l.read + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		return n, tooLargeError(l.read, l.max)
	}
	return n, err
}
