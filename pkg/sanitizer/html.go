// Package sanitizer normalises untrusted text input.
package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes every HTML element and returns plain text.
// Entities produced by the policy are decoded so the result can be escaped
// again by the renderer without doubling.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return s
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// CleanText strips HTML, drops control characters other than newlines and tabs,
// and trims surrounding whitespace.
func CleanText(s string) string {
	s = StripHTML(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
