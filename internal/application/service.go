package application

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/icsbenin/candidature/pkg/logger"
	"github.com/icsbenin/candidature/pkg/metrics"
)

// Service runs one submission through receive, validate, compose, dispatch
// and cleanup.
type Service struct {
	receiver   *Receiver
	composer   *Composer
	dispatcher *Dispatcher
	cleaner    *Cleaner
	recorder   Recorder
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder for submission outcomes.
func WithRecorder(rec Recorder) ServiceOption {
	return func(s *Service) {
		if rec != nil {
			s.recorder = rec
		}
	}
}

// NewService wires the pipeline stages together.
func NewService(receiver *Receiver, composer *Composer, dispatcher *Dispatcher, cleaner *Cleaner, opts ...ServiceOption) *Service {
	s := &Service{
		receiver:   receiver,
		composer:   composer,
		dispatcher: dispatcher,
		cleaner:    cleaner,
		recorder:   nopRecorder{},
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process handles one submission. Every stored file is deleted before
// Process returns, whatever the outcome.
func (s *Service) Process(ctx context.Context, req *http.Request) (err error) {
	sub, files, err := s.receiver.Receive(ctx, req)
	defer func() {
		s.cleaner.Cleanup(ctx, files)
		s.recordOutcome(ctx, sub, err)
	}()
	if err != nil {
		return err
	}

	sub = Normalize(sub)
	if err := Validate(sub); err != nil {
		return err
	}

	html, contentID, err := s.composer.Compose(sub, hasRole(files, RolePhoto))
	if err != nil {
		return err
	}

	// The provider call is not abandoned when the client goes away.
	if err := s.dispatcher.Dispatch(context.WithoutCancel(ctx), sub, files, html, contentID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "application sent",
		slog.String("applicant", sub.FullName()),
		slog.String("role", sub.TargetRole),
		slog.Int("files", len(files)),
	)
	return nil
}

func (s *Service) recordOutcome(ctx context.Context, sub Submission, err error) {
	var verr *ValidationError
	switch {
	case err == nil:
		s.recorder.ApplicationProcessed(metrics.OutcomeSent)
	case errors.As(err, &verr):
		s.recorder.ApplicationProcessed(metrics.OutcomeRejected)
		s.logger.InfoContext(ctx, "application rejected",
			slog.String("field", verr.Field),
			slog.String("reason", verr.Message),
		)
	default:
		s.recorder.ApplicationProcessed(metrics.OutcomeFailed)
		s.logger.ErrorContext(ctx, "application failed",
			slog.String("applicant", sub.FullName()),
			slog.Any("error", err),
		)
	}
}
