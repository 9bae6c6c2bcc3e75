package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage on a directory of the local filesystem.
// Keys are slash-separated paths relative to the root directory.
type LocalStorage struct {
	dir  string
	keys *KeyGenerator
	now  func() time.Time
}

// LocalOption configures a LocalStorage.
type LocalOption func(*LocalStorage)

// WithKeyGenerator sets the generator used for keys when Put has no WithKey option.
func WithKeyGenerator(g *KeyGenerator) LocalOption {
	return func(s *LocalStorage) {
		if g != nil {
			s.keys = g
		}
	}
}

// WithNow sets the clock used by Sweep.
func WithNow(now func() time.Time) LocalOption {
	return func(s *LocalStorage) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLocal creates a LocalStorage rooted at dir, creating the directory if needed.
func NewLocal(dir string, opts ...LocalOption) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: empty upload directory", ErrInvalidConfig)
	}
	if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("%w: create upload directory: %w", ErrInvalidConfig, err)
	}

	s := &LocalStorage{
		dir:  dir,
		keys: NewKeyGenerator(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the root directory of the store.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Put streams r into a new file. The write fails if the key already exists.
// On any error the partially written file is removed.
func (s *LocalStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := buildPutOptions(opts)

	if len(o.validationRules) > 0 && o.contentType != "" {
		if err := ValidateReader(size, o.contentType, o.validationRules...); err != nil {
			return nil, err
		}
	}

	br := bufio.NewReaderSize(r, mimeDetectionBytes)
	contentType := o.contentType
	if contentType == "" {
		head, _ := br.Peek(mimeDetectionBytes)
		contentType = detectMIME(head)
		if len(o.validationRules) > 0 {
			if err := ValidateReader(size, contentType, o.validationRules...); err != nil {
				return nil, err
			}
		}
	}

	key := o.key
	if key == "" {
		key = s.keys.Generate("file" + ExtFromMIME(contentType))
	}
	if o.prefix != "" {
		key = strings.Trim(o.prefix, "/") + "/" + key
	}

	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePerm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	var src io.Reader = br
	if limit := o.sizeLimit(); limit >= 0 {
		src = LimitReader(src, limit)
	}

	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		var verr *FileValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return &FileInfo{
		Key:         key,
		ContentType: contentType,
		Size:        written,
	}, nil
}

// Get opens the file stored under key.
func (s *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the file stored under key. Missing files are ignored.
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	return nil
}

// Sweep removes regular files last modified more than olderThan ago.
// It returns the number of removed files.
func (s *LocalStorage) Sweep(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	removed := 0
	var errs []error

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return removed, errors.Join(errs...)
}

// Healthcheck verifies that the root directory exists and is a directory.
func (s *LocalStorage) Healthcheck(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("storage: upload directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage: %s is not a directory", s.dir)
	}
	return nil
}

// path resolves key to a file path inside the root directory.
func (s *LocalStorage) path(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, rel), nil
}

// Ensure LocalStorage implements Storage.
var _ Storage = (*LocalStorage)(nil)
