package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	separator string
	lowercase bool
	maxLength int
}

// Separator sets the string placed between words. Default "-".
func Separator(sep string) Option {
	return func(c *config) {
		c.separator = sep
	}
}

// Lowercase controls case conversion. Default true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// MaxLength limits the slug to n runes, cutting at a word boundary when possible.
// Zero or negative means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Letters that do not decompose under NFD.
var foldings = map[rune]string{
	'ß': "s",
	'æ': "a", 'Æ': "a",
	'œ': "o", 'Œ': "o",
	'ø': "o", 'Ø': "o",
	'ł': "l", 'Ł': "l",
	'đ': "d", 'Đ': "d",
	'þ': "th", 'Þ': "th",
}

// Make converts s into a slug made of ASCII letters, digits and separators.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	folded := fold(s)

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pending = false
			if cfg.lowercase {
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	out := b.String()
	if cfg.maxLength > 0 {
		out = truncate(out, cfg.separator, cfg.maxLength)
	}
	return out
}

// fold strips combining marks and replaces letters that have no decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	if !strings.ContainsFunc(out, func(r rune) bool { _, ok := foldings[r]; return ok }) {
		return out
	}
	var b strings.Builder
	for _, r := range out {
		if rep, ok := foldings[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// truncate cuts s to at most n runes, preferring the last separator boundary.
func truncate(s, sep string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	cut := []rune(s)[:n]
	out := string(cut)
	if sep != "" {
		if i := strings.LastIndex(out, sep); i > 0 {
			return out[:i]
		}
	}
	return strings.TrimSuffix(out, sep)
}
