// Package ses implements mailer.Sender with Amazon SES raw email.
package ses

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/icsbenin/candidature/pkg/mailer"
)

// Config holds SES provider configuration.
// Credentials come from the default AWS chain (env, shared config, instance role).
type Config struct {
	Region string `env:"SES_REGION" envDefault:"eu-west-1"`
}

// sesAPI is the part of the SES client used by Sender.
type sesAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// Sender implements mailer.Sender using SES SendRawEmail, which supports
// attachments and inline parts.
type Sender struct {
	client sesAPI
	creds  aws.CredentialsProvider
	now    func() time.Time
}

// New loads the default AWS configuration for the region and creates a sender.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("ses: %w: region is required", mailer.ErrInvalidConfig)
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("ses: load aws config: %w", err)
	}
	s := NewWithClient(ses.NewFromConfig(awsCfg))
	s.creds = awsCfg.Credentials
	return s, nil
}

// NewWithClient creates a sender around an existing SES client.
func NewWithClient(client sesAPI) *Sender {
	return &Sender{
		client: client,
		now:    time.Now,
	}
}

// Healthcheck resolves AWS credentials from the configured chain.
// Senders built with NewWithClient have no chain to check.
func (s *Sender) Healthcheck(ctx context.Context) error {
	if s.creds == nil {
		return nil
	}
	if _, err := s.creds.Retrieve(ctx); err != nil {
		return fmt.Errorf("ses: %w: resolve credentials: %w", mailer.ErrInvalidConfig, err)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from, err := mail.ParseAddress(email.From)
	if err != nil {
		return fmt.Errorf("ses: invalid sender %q: %w", email.From, err)
	}

	msg, err := mailer.BuildMessage(email, s.now())
	if err != nil {
		return fmt.Errorf("ses: build message: %w", err)
	}

	_, err = s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		Source:       aws.String(from.Address),
		Destinations: email.Recipients(),
		RawMessage:   &types.RawMessage{Data: msg},
	})
	if err != nil {
		return fmt.Errorf("ses: send raw email: %w", err)
	}
	return nil
}

// Ensure Sender implements mailer.Sender.
var _ mailer.Sender = (*Sender)(nil)
