// Package mailer provides a provider-neutral email sending interface.
//
// The package separates the message (Email, Attachment) from delivery (Sender),
// so providers can be swapped without touching the code that builds messages.
//
// # Architecture
//
//   - Sender: interface that email providers implement
//   - Mailer: fills in the configured sender identity, validates the message and
//     wraps provider failures with ErrSendFailed
//   - BuildMessage: renders an Email as raw MIME for providers that take one
//
// Providers live in sub-packages:
//
//   - resend: Resend HTTP API
//   - smtp: any SMTP relay (STARTTLS, PLAIN auth)
//   - ses: Amazon SES raw email
//
// # Usage
//
//	sender, err := resend.New(resend.Config{APIKey: os.Getenv("RESEND_API_KEY")})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.Config{
//		FromEmail: "noreply@example.com",
//		FromName:  "Candidatures",
//	})
//
//	err = m.Send(ctx, &mailer.Email{
//		To:      []string{"rh@example.com"},
//		Subject: "Application: Jean Dupont - Matelot",
//		HTML:    html,
//		Attachments: []mailer.Attachment{
//			{Filename: "photo.jpg", ContentType: "image/jpeg", ContentID: "photo@application", Content: photo},
//		},
//	})
//
// Attachments with a ContentID are sent inline and can be referenced from the
// HTML body as "cid:<id>".
package mailer
