package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// stripHTML removes all markup. StrictPolicy keeps text content only.
var stripHTML = bluemonday.StrictPolicy()

// Sanitize prepares email text for prompting: strips HTML, collapses
// whitespace, and truncates oversized bodies. The escalation evaluator
// deliberately does NOT use this; keyword rules run on the raw body.
func Sanitize(s string) string {
	s = stripHTML.Sanitize(s)
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxBodyBytes {
		s = truncate(s, maxBodyBytes)
	}
	return s
}

// truncate cuts s to at most maxBytes without splitting UTF-8 runes.
func truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}
