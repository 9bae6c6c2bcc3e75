// Package janitor periodically removes stale uploads left behind by failed
// cleanups or crashes.
package janitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule is returned when the cron expression cannot be parsed.
var ErrInvalidSchedule = errors.New("janitor: invalid schedule")

// Sweeper removes files older than the given age and reports how many were removed.
type Sweeper interface {
	Sweep(ctx context.Context, olderThan time.Duration) (int, error)
}

// Recorder receives the number of files removed by each sweep.
type Recorder interface {
	FilesSwept(n int)
}

// Config holds janitor configuration.
// An empty schedule or a non-positive max age disables the janitor.
type Config struct {
	Schedule string        `env:"UPLOAD_SWEEP_SCHEDULE" envDefault:"*/15 * * * *"`
	MaxAge   time.Duration `env:"UPLOAD_MAX_AGE" envDefault:"1h"`
}

// Enabled reports whether the configuration schedules sweeps.
func (c Config) Enabled() bool {
	return c.Schedule != "" && c.MaxAge > 0
}

// Option configures a Janitor.
type Option func(*Janitor)

// WithLogger sets the logger for sweep results.
func WithLogger(l *slog.Logger) Option {
	return func(j *Janitor) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(j *Janitor) {
		j.recorder = r
	}
}

// Janitor runs a Sweeper on a cron schedule.
type Janitor struct {
	sweeper  Sweeper
	cfg      Config
	schedule cron.Schedule
	logger   *slog.Logger
	recorder Recorder

	mu   sync.Mutex
	cron *cron.Cron
}

// parser accepts standard 5-field expressions and descriptors such as "@hourly".
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a Janitor. The schedule is validated even when the janitor is disabled.
func New(sweeper Sweeper, cfg Config, opts ...Option) (*Janitor, error) {
	j := &Janitor{
		sweeper: sweeper,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if cfg.Schedule != "" {
		schedule, err := parser.Parse(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, cfg.Schedule, err)
		}
		j.schedule = schedule
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// RunOnce performs a single sweep.
func (j *Janitor) RunOnce(ctx context.Context) (int, error) {
	removed, err := j.sweeper.Sweep(ctx, j.cfg.MaxAge)
	if removed > 0 && j.recorder != nil {
		j.recorder.FilesSwept(removed)
	}
	if err != nil {
		j.logger.WarnContext(ctx, "stale upload sweep incomplete",
			slog.Int("removed", removed),
			slog.Any("error", err),
		)
		return removed, err
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "stale uploads removed",
			slog.Int("removed", removed),
			slog.Duration("max_age", j.cfg.MaxAge),
		)
	}
	return removed, nil
}

// Start schedules sweeps in the background. It returns immediately.
// Calling Start on a disabled or already started janitor is a no-op.
func (j *Janitor) Start(ctx context.Context) error {
	if !j.cfg.Enabled() {
		j.logger.InfoContext(ctx, "stale upload sweep disabled")
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cron != nil {
		return nil
	}

	// Sweeps outlive the start context; they stop with Stop.
	runCtx := context.WithoutCancel(ctx)
	c := cron.New(cron.WithParser(parser))
	c.Schedule(j.schedule, cron.FuncJob(func() {
		_, _ = j.RunOnce(runCtx)
	}))
	c.Start()
	j.cron = c

	j.logger.InfoContext(ctx, "stale upload sweep scheduled",
		slog.String("schedule", j.cfg.Schedule),
		slog.Duration("max_age", j.cfg.MaxAge),
	)
	return nil
}

// Stop stops scheduling and waits for a running sweep to finish or ctx to end.
func (j *Janitor) Stop(ctx context.Context) error {
	j.mu.Lock()
	c := j.cron
	j.cron = nil
	j.mu.Unlock()

	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown returns a shutdown function for the janitor.
func (j *Janitor) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return j.Stop(ctx)
	}
}

// StartFunc returns a startup function for the janitor.
func (j *Janitor) StartFunc() func(context.Context) error {
	return func(ctx context.Context) error {
		return j.Start(ctx)
	}
}
