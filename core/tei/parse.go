package tei

import (
	"bytes"
	"fmt"
	"io"
	"os"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/xml"
)

// FormatName is the format label used in parse errors.
const FormatName = "TEI"

// Parse reads and parses the TEI document at path. An unreadable file or
// a document that is not well-formed XML is an error; any missing title,
// body, act or scene simply yields less content.
func Parse(path string) (*play.Play, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewIO("read", path, err)
	}
	p, err := ParseBytes(data)
	if err != nil {
		var pe *apperrors.ParseError
		if apperrors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return p, nil
}

// ParseBytes parses a TEI document held in memory.
func ParseBytes(data []byte) (*play.Play, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses a TEI document from r.
func ParseReader(r io.Reader) (*play.Play, error) {
	doc, err := xml.ParseReader(r)
	if err != nil {
		return nil, apperrors.NewParse(FormatName, "", err)
	}
	if doc.Root() == nil {
		return nil, apperrors.NewParse(FormatName, "", fmt.Errorf("document has no root element"))
	}
	return FromDocument(doc), nil
}

// FromDocument extracts the play from an already parsed document.
func FromDocument(doc *xml.Document) *play.Play {
	return play.New(ResolveTitle(doc), WalkActs(doc), ExtractCast(doc))
}
