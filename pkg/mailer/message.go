package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"slices"
	"strings"
	"time"
)

// base64LineLength is the maximum encoded line length allowed by RFC 2045.
const base64LineLength = 76

var headerSanitizer = strings.NewReplacer("\r", "", "\n", " ")

// BuildMessage renders email as a raw RFC 5322 message for providers that
// accept MIME directly (SMTP, SES raw email).
//
// Layout: multipart/mixed holding the body and regular attachments. When inline
// attachments are present the body and those parts are wrapped in
// multipart/related. The body is text/html, or multipart/alternative when a
// plain text version is set. BCC recipients are never written to the headers.
func BuildMessage(email *Email, date time.Time) ([]byte, error) {
	if email == nil {
		return nil, ErrNoRecipient
	}

	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	writeHeader(&buf, "From", formatAddressList([]string{email.From}))
	writeHeader(&buf, "To", formatAddressList(email.To))
	if len(email.CC) > 0 {
		writeHeader(&buf, "Cc", formatAddressList(email.CC))
	}
	if email.ReplyTo != "" {
		writeHeader(&buf, "Reply-To", formatAddressList([]string{email.ReplyTo}))
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	writeHeader(&buf, "Date", date.Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")
	for _, k := range slices.Sorted(maps.Keys(email.Headers)) {
		writeHeader(&buf, textproto.CanonicalMIMEHeaderKey(k), email.Headers[k])
	}
	writeHeader(&buf, "Content-Type", mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mixed.Boundary()}))
	buf.WriteString("\r\n")

	var inline, regular []Attachment
	for _, a := range email.Attachments {
		if a.Inline() {
			inline = append(inline, a)
		} else {
			regular = append(regular, a)
		}
	}

	if len(inline) > 0 {
		related, err := nestedWriter(mixed, "multipart/related")
		if err != nil {
			return nil, err
		}
		if err := writeBody(related, email); err != nil {
			return nil, err
		}
		for _, a := range inline {
			if err := writeAttachment(related, a); err != nil {
				return nil, err
			}
		}
		if err := related.Close(); err != nil {
			return nil, err
		}
	} else if err := writeBody(mixed, email); err != nil {
		return nil, err
	}

	for _, a := range regular {
		if err := writeAttachment(mixed, a); err != nil {
			return nil, err
		}
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(headerSanitizer.Replace(value))
	buf.WriteString("\r\n")
}

// formatAddressList encodes display names per RFC 2047. Unparseable
// addresses are written as given.
func formatAddressList(addrs []string) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if parsed, err := mail.ParseAddress(a); err == nil {
			out = append(out, parsed.String())
			continue
		}
		out = append(out, a)
	}
	return strings.Join(out, ", ")
}

// nestedWriter creates a multipart part of the given media type inside parent
// and returns a writer for its children.
func nestedWriter(parent *multipart.Writer, mediaType string) (*multipart.Writer, error) {
	boundary := multipart.NewWriter(io.Discard).Boundary()
	part, err := parent.CreatePart(textproto.MIMEHeader{
		"Content-Type": {mime.FormatMediaType(mediaType, map[string]string{"boundary": boundary})},
	})
	if err != nil {
		return nil, err
	}
	w := multipart.NewWriter(part)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, err
	}
	return w, nil
}

func writeBody(w *multipart.Writer, email *Email) error {
	if email.Text == "" {
		return writeText(w, "text/html", email.HTML)
	}
	alt, err := nestedWriter(w, "multipart/alternative")
	if err != nil {
		return err
	}
	if err := writeText(alt, "text/plain", email.Text); err != nil {
		return err
	}
	if err := writeText(alt, "text/html", email.HTML); err != nil {
		return err
	}
	return alt.Close()
}

func writeText(w *multipart.Writer, mediaType, body string) error {
	part, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {mediaType + "; charset=UTF-8"},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return err
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := io.WriteString(qp, body); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(w *multipart.Writer, a Attachment) error {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	typeHeader := mime.FormatMediaType(contentType, map[string]string{"name": a.Filename})
	if typeHeader == "" {
		typeHeader = "application/octet-stream"
	}

	disposition := "attachment"
	if a.Inline() {
		disposition = "inline"
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", typeHeader)
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": a.Filename}))
	h.Set("Content-Transfer-Encoding", "base64")
	if a.Inline() {
		h.Set("Content-ID", fmt.Sprintf("<%s>", headerSanitizer.Replace(a.ContentID)))
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(a.Content)
	for len(encoded) > base64LineLength {
		if _, err := io.WriteString(part, encoded[:base64LineLength]+"\r\n"); err != nil {
			return err
		}
		encoded = encoded[base64LineLength:]
	}
	_, err = io.WriteString(part, encoded+"\r\n")
	return err
}
