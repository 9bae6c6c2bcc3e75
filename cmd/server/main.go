// Command server runs the job-application relay.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/icsbenin/candidature"
	"github.com/icsbenin/candidature/internal/application"
	"github.com/icsbenin/candidature/middlewares"
	"github.com/icsbenin/candidature/pkg/i18n"
	"github.com/icsbenin/candidature/pkg/janitor"
	"github.com/icsbenin/candidature/pkg/logger"
	"github.com/icsbenin/candidature/pkg/mailer"
	"github.com/icsbenin/candidature/pkg/mailer/resend"
	"github.com/icsbenin/candidature/pkg/mailer/ses"
	"github.com/icsbenin/candidature/pkg/mailer/smtp"
	"github.com/icsbenin/candidature/pkg/metrics"
	"github.com/icsbenin/candidature/pkg/storage"
)

const (
	sentryFlushTimeout = 2 * time.Second
	mailCheckTimeout   = 10 * time.Second
)

// tempStore is a storage backend that can report its own health.
type tempStore interface {
	storage.Storage
	Healthcheck(ctx context.Context) error
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		logger.Flush(sentryFlushTimeout)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	m := metrics.New()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return err
	}
	mail := mailer.New(sender, cfg.Mailer)

	svc := application.NewService(
		application.NewReceiver(store, application.WithReceiverRecorder(m)),
		application.NewComposer(application.WithLocaleFormat(i18n.FormatFrFR().In(loc))),
		application.NewDispatcher(mail, store, cfg.EmailTo, application.WithDispatcherRecorder(m)),
		application.NewCleaner(store,
			application.WithCleanerLogger(log),
			application.WithCleanerRecorder(m),
		),
		application.WithLogger(log),
		application.WithRecorder(m),
	)

	app := candidature.New(
		candidature.WithLogger(log),
		candidature.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(),
			middlewares.Metrics(m),
			middlewares.CORS(middlewares.WithCORSConfig(cfg.CORS)),
			middlewares.Recover(),
		),
		candidature.WithErrorHandler(middlewares.ErrorHandler(application.StatusCode)),
		candidature.WithNotFoundHandler(middlewares.NotFound),
		candidature.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
		candidature.WithHealthChecks(
			candidature.WithReadinessCheck("storage", store.Healthcheck),
			candidature.WithReadinessCheck("mailer", mail.Healthcheck),
		),
		candidature.WithMount("/metrics", m.Handler()),
		candidature.WithHandlers(application.NewHandler(svc)),
	)

	opts := []candidature.RunOption{
		candidature.WithContext(ctx),
		candidature.Logger(log),
		candidature.ReadTimeout(cfg.ReadTimeout),
		candidature.WriteTimeout(cfg.WriteTimeout),
		candidature.ShutdownTimeout(cfg.ShutdownTimeout),
	}

	// Only the local backend accumulates orphans the janitor can see.
	if local, ok := store.(*storage.LocalStorage); ok {
		j, err := janitor.New(local, cfg.Janitor,
			janitor.WithLogger(log),
			janitor.WithRecorder(m),
		)
		if err != nil {
			return err
		}
		opts = append(opts,
			candidature.StartupHook(j.StartFunc()),
			candidature.ShutdownHook(j.Shutdown()),
		)
	}

	opts = append(opts,
		candidature.StartupHook(func(ctx context.Context) error {
			log.InfoContext(ctx, "server starting",
				slog.String("address", cfg.Address()),
				slog.String("recipient", strings.Join(cfg.EmailTo, ", ")),
				slog.String("mail_provider", cfg.Mailer.Provider),
				slog.String("storage", cfg.StorageBackend),
			)
			return nil
		}),
		candidature.StartupHook(checkMailer(mail.Healthcheck, cfg.Mailer.Provider, log)),
		candidature.ShutdownHook(func(context.Context) error {
			logger.Flush(sentryFlushTimeout)
			return nil
		}),
	)

	return app.Run(cfg.Address(), opts...)
}

// checkMailer logs whether the mail provider is usable. The server starts
// either way; submissions fail until the provider recovers.
func checkMailer(check func(context.Context) error, provider string, log *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, mailCheckTimeout)
		defer cancel()

		if err := check(ctx); err != nil {
			log.WarnContext(ctx, "mail transport not ready",
				slog.String("mail_provider", provider),
				slog.Any("error", err),
			)
			return nil
		}
		log.InfoContext(ctx, "mail transport ready", slog.String("mail_provider", provider))
		return nil
	}
}

func newStore(cfg Config) (tempStore, error) {
	switch cfg.StorageBackend {
	case BackendS3:
		s, err := storage.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 storage: %w", err)
		}
		return s, nil
	default:
		s, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
		return s, nil
	}
}

func newSender(ctx context.Context, cfg Config) (mailer.Sender, error) {
	var (
		sender mailer.Sender
		err    error
	)
	switch cfg.Mailer.Provider {
	case mailer.ProviderSMTP:
		sender, err = smtp.New(cfg.SMTP)
	case mailer.ProviderSES:
		sender, err = ses.New(ctx, cfg.SES)
	default:
		sender, err = resend.New(cfg.Resend)
	}
	if err != nil {
		return nil, fmt.Errorf("mail provider %s: %w", cfg.Mailer.Provider, err)
	}
	return sender, nil
}
