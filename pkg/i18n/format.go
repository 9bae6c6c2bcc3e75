package i18n

import (
	"time"
)

// LocaleFormat contains date and time formatting rules for a locale.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	dateFormat     string
	timeFormat     string
	dateTimeFormat string
	location       *time.Location
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a new LocaleFormat with the given options.
// If no options are provided, it defaults to US English formatting in UTC.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		dateFormat:     "01/02/2006",
		timeFormat:     "3:04:05 PM",
		dateTimeFormat: "01/02/2006, 3:04:05 PM",
		location:       time.UTC,
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDateFormat sets the date format string (Go time layout).
func WithDateFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat = format
	}
}

// WithTimeFormat sets the time format string (Go time layout).
func WithTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeFormat = format
	}
}

// WithDateTimeFormat sets the datetime format string (Go time layout).
func WithDateTimeFormat(format string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeFormat = format
	}
}

// WithLocation sets the time zone values are converted to before formatting.
// A nil location is ignored.
func WithLocation(loc *time.Location) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if loc != nil {
			lf.location = loc
		}
	}
}

// In returns a copy of lf that formats in loc.
func (lf *LocaleFormat) In(loc *time.Location) *LocaleFormat {
	cp := *lf
	if loc != nil {
		cp.location = loc
	}
	return &cp
}

// Location returns the time zone used for formatting.
func (lf *LocaleFormat) Location() *time.Location {
	return lf.location
}

// FormatDate formats a date with the locale's date format.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.In(lf.location).Format(lf.dateFormat)
}

// FormatTime formats a time with the locale's time format.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.In(lf.location).Format(lf.timeFormat)
}

// FormatDateTime formats a datetime with the locale's datetime format.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.In(lf.location).Format(lf.dateTimeFormat)
}
