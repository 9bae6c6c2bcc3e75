// Package resend implements mailer.Sender on top of the Resend HTTP API.
package resend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/icsbenin/candidature/pkg/mailer"
)

// apiKeyPrefix starts every Resend API key.
const apiKeyPrefix = "re_"

// Config holds Resend email provider configuration.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	APIKey string `env:"RESEND_API_KEY"`
}

// emailsAPI is the part of the Resend client used by Sender.
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails emailsAPI
	apiKey string
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend: %w: missing RESEND_API_KEY", mailer.ErrInvalidConfig)
	}
	return &Sender{emails: resend.NewClient(cfg.APIKey).Emails, apiKey: cfg.APIKey}, nil
}

// Healthcheck reports whether the API key is usable. It does not call the API,
// since send-only keys cannot read anything back.
func (s *Sender) Healthcheck(context.Context) error {
	if !strings.HasPrefix(s.apiKey, apiKeyPrefix) {
		return fmt.Errorf("resend: %w: RESEND_API_KEY must start with %q", mailer.ErrInvalidConfig, apiKeyPrefix)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	// Convert attachments
	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}

	// Convert tags
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true" // presence-only tag
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Ensure Sender implements mailer.Sender.
var _ mailer.Sender = (*Sender)(nil)
