package mailer

import (
	"context"
	"errors"
)

// Mailer sends prepared emails through a Sender, filling in the configured
// sender identity and checking required fields first.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	return &Mailer{
		sender: sender,
		config: cfg,
	}
}

// Send validates and delivers email. Provider failures are joined with ErrSendFailed.
// The email is not modified; a copy carries the default sender.
func (m *Mailer) Send(ctx context.Context, email *Email) error {
	if email == nil {
		return ErrNoRecipient
	}

	msg := *email
	if msg.From == "" {
		if m.config.FromEmail == "" {
			return ErrNoSender
		}
		msg.From = m.config.From()
	}

	if err := msg.Validate(); err != nil {
		return err
	}

	if err := m.sender.Send(ctx, &msg); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}

// Healthcheck reports whether mail can be sent: a sender identity must be
// configured and the provider, when it can check itself, must be reachable.
func (m *Mailer) Healthcheck(ctx context.Context) error {
	if m.config.FromEmail == "" {
		return ErrNoSender
	}
	if c, ok := m.sender.(Checker); ok {
		return c.Healthcheck(ctx)
	}
	return nil
}

// Ensure Mailer implements Sender.
var _ Sender = (*Mailer)(nil)
