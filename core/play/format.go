package play

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Formatter renders each content kind as one display block.
type Formatter interface {
	Speaker(text string) string
	StageDirection(text string) string
	Line(text string) string
}

// Markdown renders content the way the reader displays it: speakers as
// **NAME.**, stage directions as *text*, lines unchanged.
type Markdown struct{}

// Speaker upper-cases the name with full Unicode case mapping
// ("ß" becomes "SS"), so names match what the reader has always shown.
func (Markdown) Speaker(text string) string {
	return "**" + Upper(text) + ".**"
}

func (Markdown) StageDirection(text string) string {
	return "*" + text + "*"
}

func (Markdown) Line(text string) string {
	return text
}

// Upper returns s upper-cased using language-neutral Unicode rules.
func Upper(s string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Upper(language.Und).String(s)
}

// Render renders items with f: each block followed by a blank line, with
// trailing whitespace removed from the result.
func Render(items []ContentItem, f Formatter) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item.Format(f))
		sb.WriteString("\n\n")
	}
	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}
