package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// The Email must have From, To, Subject, and HTML already set.
	// Returns an error if delivery fails.
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// Checker is implemented by senders that can verify their provider
// configuration without sending mail.
type Checker interface {
	Healthcheck(ctx context.Context) error
}
