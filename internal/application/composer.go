package application

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/icsbenin/candidature/pkg/i18n"
)

// PhotoContentID is the content-id the inline photo is referenced by.
const PhotoContentID = "photo@application"

// Placeholders for optional fields left blank.
const (
	placeholderDash        = "—"
	placeholderUnspecified = "unspecified"
)

//go:embed templates/notification.html
var templateFS embed.FS

var notificationTemplate = template.Must(template.ParseFS(templateFS, "templates/notification.html"))

// Composer renders the notification HTML.
type Composer struct {
	now    func() time.Time
	format *i18n.LocaleFormat
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithClock sets the clock used for the receipt timestamp.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocaleFormat sets the layout and time zone of the receipt timestamp.
func WithLocaleFormat(f *i18n.LocaleFormat) ComposerOption {
	return func(c *Composer) {
		if f != nil {
			c.format = f
		}
	}
}

// NewComposer creates a Composer. The default format is fr-FR in UTC.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{
		now:    time.Now,
		format: i18n.FormatFrFR(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type notificationData struct {
	FullName      string
	Nationality   string
	MaritalStatus string
	Age           string
	Phone         string
	TargetRole    string
	PhotoSrc      template.URL
	TelURL        template.URL
	WhatsAppURL   string
	ReceivedAt    string
}

// Compose renders the notification for s. When hasPhoto is true the body
// embeds the photo by content-id and that id is returned; otherwise the
// returned id is empty.
func (c *Composer) Compose(s Submission, hasPhoto bool) (html, contentID string, err error) {
	data := notificationData{
		FullName:      s.FullName(),
		Nationality:   orDefault(s.Nationality, placeholderDash),
		MaritalStatus: orDefault(s.MaritalStatus, placeholderUnspecified),
		Age:           orDefault(s.Age, placeholderUnspecified),
		Phone:         orDefault(s.Phone, placeholderDash),
		TargetRole:    s.TargetRole,
		ReceivedAt:    c.format.FormatDateTime(c.now()),
	}

	if hasPhoto {
		contentID = PhotoContentID
		data.PhotoSrc = template.URL("cid:" + contentID)
	}

	// Call and WhatsApp links need a dialable number.
	if full, digits := NormalizePhone(s.Phone); digits != "" {
		data.TelURL = template.URL("tel:" + encodeURIComponent(full))
		data.WhatsAppURL = "https://wa.me/" + digits
	}

	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, data); err != nil {
		return "", "", &UnexpectedError{Op: "render notification", Err: err}
	}
	return buf.String(), contentID, nil
}

// NormalizePhone returns the E.164 form of raw and its digits only.
// A value starting with "+" is kept verbatim; otherwise the digits are
// prefixed with "+". Both are empty when raw holds no digits and no "+".
func NormalizePhone(raw string) (full, digits string) {
	raw = strings.TrimSpace(raw)
	digits = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case strings.HasPrefix(raw, "+"):
		full = raw
	case digits != "":
		full = "+" + digits
	}
	return full, digits
}

// encodeURIComponent escapes s like the browser function of the same name,
// so "+" becomes %2B and spaces become %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
