package tei

import (
	"strings"
)

// fragment is one piece of assembled text. punct marks a Punctuation
// token, which attaches to the text before it.
type fragment struct {
	text  string
	punct bool
}

// Normalize collapses every whitespace run (including newlines) to a
// single space and trims the ends. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AssembleText reconstructs the readable text of n.
//
// Text runs are normalized. Words and punctuation contribute their trimmed
// text, each Space token contributes one space, and nested elements are
// assembled recursively. Fragments are joined by a single space, except
// that a punctuation token follows the preceding fragment directly. The
// result is normalized, so it never has leading, trailing or repeated
// whitespace.
//
// A node with no text anywhere yields "".
func AssembleText(n Node) string {
	return Normalize(assemble(n).text)
}

func assemble(n Node) fragment {
	switch v := n.(type) {
	case Text:
		return fragment{text: Normalize(v.Data)}
	case Word:
		return fragment{text: strings.TrimSpace(v.Data)}
	case Space:
		return fragment{text: " "}
	case Punctuation:
		return fragment{text: strings.TrimSpace(v.Data), punct: true}
	case *Element:
		if v == nil {
			return fragment{}
		}
		parts := make([]fragment, 0, len(v.Content))
		for _, child := range v.Content {
			if f := assemble(child); f.text != "" {
				parts = append(parts, f)
			}
		}
		return fragment{text: join(parts)}
	}
	return fragment{}
}

func join(parts []fragment) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 && !p.punct {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.text)
	}
	return Normalize(sb.String())
}
