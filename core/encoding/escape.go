// Package encoding provides text escaping shared by the HTML reader and
// the exporters.
package encoding

import (
	"strings"
	"unicode"
)

// EscapeHTML escapes special characters for HTML content.
// Escapes: & < > " '
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&#39;",
)

// Anchor turns a heading such as "Act 1, Scene 2" into a fragment
// identifier ("act-1-scene-2"). Letters and digits survive lowercased;
// every other run of characters becomes a single hyphen.
func Anchor(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// SingleLine replaces line breaks with spaces, for values that must fit on
// one line such as log fields and table cells.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
