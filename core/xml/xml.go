// Package xml provides pure Go XML parsing, well-formedness checks and
// XPath lookup over TEI documents.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated by using Go's xml.Decoder
//     which doesn't fetch external entities by default, and we explicitly
//     disable entity expansion in Validate.
//   - The xmlquery library is used for parsing, which uses Go's encoding/xml
//     internally and inherits its security properties.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an element or a run of character data.
type Node struct {
	node *xmlquery.Node
	// text holds merged character data for text nodes built by Contents.
	text string
}

// NodeType distinguishes the kinds of nodes returned by Contents.
type NodeType int

const (
	// ElementNode is a markup element.
	ElementNode NodeType = iota
	// TextNode is a merged run of character data (text and CDATA).
	TextNode
)

// ValidationResult contains the result of XML validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Line    int
	Column  int
	Message string
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses XML from r and returns a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// Validate checks that data is well-formed XML.
//
// Security: This function is protected against XXE (XML External Entity) attacks
// by disabling entity expansion. Go's xml.Decoder does not fetch external entities
// by default, and we explicitly disable internal entity expansion as well.
func Validate(data []byte) ValidationResult {
	result := ValidationResult{Valid: true}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Entity = map[string]string{}

	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := decoder.InputPos()
			if syntaxErr, ok := err.(*xml.SyntaxError); ok {
				line = syntaxErr.Line
			}
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Line:    line,
				Column:  col,
				Message: err.Error(),
			})
			break
		}
	}

	// A document with no root element is not well-formed, but the decoder
	// reports plain EOF for it.
	if result.Valid && len(bytes.TrimSpace(data)) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Line: 1, Message: "empty document"})
	}

	return result
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// XPathFirst executes an XPath query and returns the first matching node
// in document order, or nil if nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	// Compile the expression to check for errors
	_, err := xpath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// LocalPath builds an XPath expression that matches the given chain of
// element local names regardless of namespace, anchored anywhere in the
// document: LocalPath("a", "b") is //*[local-name()='a']/*[local-name()='b'].
func LocalPath(names ...string) string {
	var sb strings.Builder
	for i, name := range names {
		if i == 0 {
			sb.WriteString("//")
		} else {
			sb.WriteString("/")
		}
		sb.WriteString("*[local-name()='")
		sb.WriteString(name)
		sb.WriteString("']")
	}
	return sb.String()
}

// Type reports whether n is an element or a text run.
func (n *Node) Type() NodeType {
	if n.node == nil {
		return TextNode
	}
	return ElementNode
}

// Name returns the element's local name, without namespace prefix.
// Text runs have no name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// Data returns the raw character data of a text run.
func (n *Node) Data() string {
	return n.text
}

// LeadingText returns the character data that precedes the element's
// first child element, unmodified.
func (n *Node) LeadingText() string {
	if n.node == nil {
		return ""
	}
	var sb strings.Builder
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			break
		}
		if isCharData(child) {
			sb.WriteString(child.Data)
		}
	}
	return sb.String()
}

// Contents returns the element's children in document order: elements,
// and text runs with adjacent text and CDATA sections merged. Comments,
// processing instructions and declarations are dropped.
func (n *Node) Contents() []*Node {
	if n.node == nil {
		return nil
	}

	var (
		contents []*Node
		run      strings.Builder
		inRun    bool
	)
	flush := func() {
		if inRun {
			contents = append(contents, &Node{text: run.String()})
			run.Reset()
			inRun = false
		}
	}
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == xmlquery.ElementNode:
			flush()
			contents = append(contents, &Node{node: child})
		case isCharData(child):
			run.WriteString(child.Data)
			inRun = true
		}
	}
	flush()
	return contents
}

// Attributes returns all attributes of the node.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}

	attrs := make(map[string]string)
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

func isCharData(n *xmlquery.Node) bool {
	return n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode
}
