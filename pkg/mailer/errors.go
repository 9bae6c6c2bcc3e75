package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates no sender address was configured.
	ErrNoSender = errors.New("email must have a sender")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidConfig indicates a provider is missing required settings.
	ErrInvalidConfig = errors.New("invalid mail provider configuration")

	// ErrUnknownProvider indicates an unsupported MAIL_PROVIDER value.
	ErrUnknownProvider = errors.New("unknown mail provider")
)
