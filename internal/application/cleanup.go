package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/icsbenin/candidature/pkg/logger"
	"github.com/icsbenin/candidature/pkg/storage"
)

// Cleaner removes temporary files once a request is settled.
type Cleaner struct {
	store    storage.Storage
	logger   *slog.Logger
	recorder Recorder
}

// CleanerOption configures a Cleaner.
type CleanerOption func(*Cleaner)

// WithCleanerLogger sets the logger for deletion failures.
func WithCleanerLogger(l *slog.Logger) CleanerOption {
	return func(c *Cleaner) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCleanerRecorder sets the metrics recorder.
func WithCleanerRecorder(rec Recorder) CleanerOption {
	return func(c *Cleaner) {
		if rec != nil {
			c.recorder = rec
		}
	}
}

// NewCleaner creates a Cleaner deleting from store.
func NewCleaner(store storage.Storage, opts ...CleanerOption) *Cleaner {
	c := &Cleaner{
		store:    store,
		logger:   logger.NewNope(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cleanup attempts to delete every file. A missing file counts as deleted.
// Failures are logged and counted, never returned, and never stop the
// remaining deletions. Deletion ignores cancellation of ctx.
func (c *Cleaner) Cleanup(ctx context.Context, files []UploadedFile) {
	ctx = context.WithoutCancel(ctx)

	for _, f := range files {
		err := c.store.Delete(ctx, f.Key)
		if err == nil || errors.Is(err, storage.ErrNotFound) {
			continue
		}
		c.recorder.CleanupFailed()
		c.logger.WarnContext(ctx, "temporary file not removed",
			slog.String("key", f.Key),
			slog.String("role", string(f.Role)),
			slog.Any("error", err),
		)
	}
}
