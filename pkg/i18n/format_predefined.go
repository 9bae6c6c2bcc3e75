package i18n

import "strings"

// FormatEnUS returns a LocaleFormat configured for US English (en-US).
func FormatEnUS() *LocaleFormat {
	return NewLocaleFormat()
}

// FormatEnGB returns a LocaleFormat configured for British English (en-GB).
func FormatEnGB() *LocaleFormat {
	return NewLocaleFormat(
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04:05"),
		WithDateTimeFormat("02/01/2006, 15:04:05"),
	)
}

// FormatFrFR returns a LocaleFormat configured for French (fr-FR).
func FormatFrFR() *LocaleFormat {
	return NewLocaleFormat(
		WithDateFormat("02/01/2006"),
		WithTimeFormat("15:04:05"),
		WithDateTimeFormat("02/01/2006 15:04:05"),
	)
}

// FormatDeDE returns a LocaleFormat configured for German (de-DE).
func FormatDeDE() *LocaleFormat {
	return NewLocaleFormat(
		WithDateFormat("02.01.2006"),
		WithTimeFormat("15:04:05"),
		WithDateTimeFormat("02.01.2006, 15:04:05"),
	)
}

// ForLanguage returns the predefined format for a BCP 47 tag such as "fr-FR" or "en".
// Only the primary language and region are considered. Unknown tags fall back to fr-FR.
func ForLanguage(tag string) *LocaleFormat {
	tag = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	switch tag {
	case "en-us", "en":
		return FormatEnUS()
	case "en-gb":
		return FormatEnGB()
	case "de", "de-de":
		return FormatDeDE()
	}
	return FormatFrFR()
}
