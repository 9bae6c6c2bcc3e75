package health

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy means every check passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy means at least one check failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports a dependency as usable by returning nil.
// Storage backends and mail senders expose a Healthcheck method of this shape.
type CheckFunc func(ctx context.Context) error

// Checks maps a dependency name to its check.
type Checks map[string]CheckFunc

// Response is the aggregated readiness report.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Healthy reports whether every check passed.
func (r *Response) Healthy() bool {
	return r.Status == StatusHealthy
}

// Check is the outcome of one named check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout bounds a whole run of checks.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger failed checks are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// Checker runs a fixed set of checks concurrently under one deadline.
type Checker struct {
	checks  Checks
	logger  *slog.Logger
	timeout time.Duration
}

// NewChecker creates a Checker for checks.
func NewChecker(checks Checks, opts ...Option) *Checker {
	c := &Checker{
		checks:  checks,
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes every check and waits for all of them. A check still running
// at the deadline is reported with ErrCheckTimeout.
func (c *Checker) Run(ctx context.Context) *Response {
	resp := &Response{Status: StatusHealthy}
	if len(c.checks) == 0 {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	resp.Checks = make(map[string]Check, len(c.checks))

	for name, check := range c.checks {
		g.Go(func() error {
			result := Check{Status: StatusHealthy}
			if err := c.run(ctx, name, check); err != nil {
				result = Check{Status: StatusUnhealthy, Error: err.Error()}
			}

			mu.Lock()
			resp.Checks[name] = result
			if result.Status == StatusUnhealthy {
				resp.Status = StatusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return resp
}

func (c *Checker) run(ctx context.Context, name string, check CheckFunc) error {
	err := check(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", ErrCheckTimeout, err)
	}
	c.logger.WarnContext(ctx, "health check failed",
		slog.String("check", name),
		slog.Any("error", err),
	)
	return err
}
