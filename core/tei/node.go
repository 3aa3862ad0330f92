// Package tei extracts the dramatic structure of a TEI-encoded play:
// title, acts, scenes, and the ordered speaker / stage-direction / line
// items of each scene.
//
// Documents tokenized at word level (Folger TEIsimple style) carry one
// element per word (<w>), inter-word space (<c>) and punctuation mark
// (<pc>). Text is reassembled from those tokens by AssembleText over the
// Node tree built by FromXML.
package tei

import (
	"github.com/FocuswithJustin/JuniperStage/core/xml"
)

// TEI element names recognised by the extractor.
const (
	elemWord        = "w"
	elemSpace       = "c"
	elemPunctuation = "pc"
	elemStage       = "stage"
	elemSpeech      = "sp"
	elemSpeaker     = "speaker"
	elemParagraph   = "p"
	elemLine        = "l"
	elemDiv         = "div"
	elemBody        = "body"
)

// Node is a piece of mixed content: a text run, one of the three token
// kinds, or a structural element with its own content.
type Node interface {
	node()
}

// Text is a run of character data between elements.
type Text struct {
	Data string
}

// Word is a word token. Its text is taken as atomic.
type Word struct {
	Data string
}

// Space is an inter-word space token. It never carries text of its own.
type Space struct{}

// Punctuation is a punctuation token.
type Punctuation struct {
	Data string
}

// Element is any other element, holding its content in document order.
type Element struct {
	Name    string
	Attrs   map[string]string
	Content []Node
}

func (Text) node()        {}
func (Word) node()        {}
func (Space) node()       {}
func (Punctuation) node() {}
func (*Element) node()    {}

// Children returns the element's direct child elements named name.
func (e *Element) Children(name string) []*Element {
	var out []*Element
	for _, n := range e.Content {
		if child, ok := n.(*Element); ok && child.Name == name {
			out = append(out, child)
		}
	}
	return out
}

// Child returns the first direct child element named name, or nil.
func (e *Element) Child(name string) *Element {
	for _, n := range e.Content {
		if child, ok := n.(*Element); ok && child.Name == name {
			return child
		}
	}
	return nil
}

// Attr returns the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// LeadingText returns the text run that precedes the first child, if any.
func (e *Element) LeadingText() string {
	if len(e.Content) == 0 {
		return ""
	}
	if t, ok := e.Content[0].(Text); ok {
		return t.Data
	}
	return ""
}

// FromXML converts a parsed element into the Node tree. Word and
// punctuation tokens keep only their own leading text; anything nested
// inside them is dropped.
func FromXML(n *xml.Node) Node {
	if n == nil {
		return nil
	}
	if n.Type() == xml.TextNode {
		return Text{Data: n.Data()}
	}

	switch n.Name() {
	case elemWord:
		return Word{Data: n.LeadingText()}
	case elemSpace:
		return Space{}
	case elemPunctuation:
		return Punctuation{Data: n.LeadingText()}
	}

	contents := n.Contents()
	el := &Element{
		Name:    n.Name(),
		Attrs:   n.Attributes(),
		Content: make([]Node, 0, len(contents)),
	}
	for _, c := range contents {
		el.Content = append(el.Content, FromXML(c))
	}
	return el
}

// elementFromXML converts n and returns it as an Element. Token elements
// are wrapped so callers can treat any element uniformly.
func elementFromXML(n *xml.Node) *Element {
	switch v := FromXML(n).(type) {
	case *Element:
		return v
	case nil:
		return nil
	default:
		return &Element{Name: n.Name(), Attrs: n.Attributes(), Content: []Node{v}}
	}
}
