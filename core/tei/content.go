package tei

import (
	"github.com/FocuswithJustin/JuniperStage/core/play"
)

// ExtractContent returns the content items of a scene-level element, one
// per recognised direct child, in document order:
//
//   - <stage> yields a StageDirection.
//   - <sp> yields its <speaker> (if any) as a Speaker, then every <p>, then
//     every <l>, each as a Line. Paragraphs all come before verse lines
//     even when a speech interleaves them.
//
// Other children are ignored, and items whose text is empty are dropped.
func ExtractContent(scene *Element) []play.ContentItem {
	if scene == nil {
		return nil
	}

	var items []play.ContentItem
	for _, n := range scene.Content {
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		switch el.Name {
		case elemStage:
			if text := AssembleText(el); text != "" {
				items = append(items, play.StageDirection(text))
			}
		case elemSpeech:
			items = appendSpeech(items, el)
		}
	}
	return items
}

func appendSpeech(items []play.ContentItem, sp *Element) []play.ContentItem {
	if speaker := sp.Child(elemSpeaker); speaker != nil {
		if text := AssembleText(speaker); text != "" {
			items = append(items, play.Speaker(text))
		}
	}
	for _, p := range sp.Children(elemParagraph) {
		if text := AssembleText(p); text != "" {
			items = append(items, play.Line(text))
		}
	}
	for _, l := range sp.Children(elemLine) {
		if text := AssembleText(l); text != "" {
			items = append(items, play.Line(text))
		}
	}
	return items
}
