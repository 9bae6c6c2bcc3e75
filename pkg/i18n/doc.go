// Package i18n provides locale-aware date and time formatting.
//
// A [LocaleFormat] is immutable and safe for concurrent use. Predefined formats
// exist for the locales the service renders notifications in:
//
//	lf := i18n.FormatFrFR().In(loc)
//	lf.FormatDateTime(time.Now()) // "05/03/2024 14:07:09"
//
// [ForLanguage] maps a BCP 47 tag to one of the predefined formats and falls
// back to fr-FR.
package i18n
