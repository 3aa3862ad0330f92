package tei

import (
	"strings"

	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/xml"
)

// titlePath locates the declared title in the TEI header.
var titlePath = xml.LocalPath("teiHeader", "fileDesc", "titleStmt", "title")

// ResolveTitle returns the leading text of the first title declared in the
// document header, trimmed but otherwise verbatim. Text inside child
// elements is not part of the title. A missing or blank title yields
// play.DefaultTitle.
func ResolveTitle(doc *xml.Document) string {
	if doc == nil {
		return play.DefaultTitle
	}
	node, err := doc.XPathFirst(titlePath)
	if err != nil || node == nil {
		return play.DefaultTitle
	}
	if title := strings.TrimSpace(elementFromXML(node).LeadingText()); title != "" {
		return title
	}
	return play.DefaultTitle
}
