package tei

import (
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/xml"
)

const (
	divAct   = "act"
	divScene = "scene"
)

var bodyPath = xml.LocalPath(elemBody)

// WalkActs returns the acts of the document's first <body>, in document
// order. A document without a body has no acts.
func WalkActs(doc *xml.Document) []*play.Act {
	if doc == nil {
		return nil
	}
	node, err := doc.XPathFirst(bodyPath)
	if err != nil || node == nil {
		return nil
	}
	return ActsFromBody(elementFromXML(node))
}

// ActsFromBody builds the acts from the act-level divisions that are
// direct children of body. Scenes are the scene-level divisions that are
// direct children of each act; deeper divisions are never counted.
func ActsFromBody(body *Element) []*play.Act {
	if body == nil {
		return nil
	}

	var acts []*play.Act
	for _, div := range divisions(body, divAct) {
		number := div.Attr("n")

		var scenes []*play.Scene
		for _, sdiv := range divisions(div, divScene) {
			scenes = append(scenes, play.NewScene(number, sdiv.Attr("n"), ExtractContent(sdiv)))
		}
		acts = append(acts, play.NewAct(number, scenes))
	}
	return acts
}

// divisions returns the direct <div> children of parent with the given type.
func divisions(parent *Element, typ string) []*Element {
	var out []*Element
	for _, div := range parent.Children(elemDiv) {
		if div.Attr("type") == typ {
			out = append(out, div)
		}
	}
	return out
}
