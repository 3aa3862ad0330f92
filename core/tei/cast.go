package tei

import (
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/xml"
)

const (
	elemCastList  = "castList"
	elemCastGroup = "castGroup"
	elemCastItem  = "castItem"
	elemRole      = "role"
	elemRoleDesc  = "roleDesc"
	elemName      = "name"
	elemHead      = "head"
)

var castListPath = xml.LocalPath(elemCastList)

// ExtractCast returns the characters of the document's first <castList>.
// Characters listed inside a <castGroup> carry the group's heading (or its
// shared role description) as Group. Entries without a name are skipped.
func ExtractCast(doc *xml.Document) []play.Character {
	if doc == nil {
		return nil
	}
	node, err := doc.XPathFirst(castListPath)
	if err != nil || node == nil {
		return nil
	}
	return CastFromList(elementFromXML(node))
}

// CastFromList builds the cast from a <castList> element.
func CastFromList(list *Element) []play.Character {
	if list == nil {
		return nil
	}
	return castEntries(nil, list, "")
}

func castEntries(out []play.Character, parent *Element, group string) []play.Character {
	for _, n := range parent.Content {
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		switch el.Name {
		case elemCastItem:
			if c, ok := castItem(el, group); ok {
				out = append(out, c)
			}
		case elemCastGroup:
			out = castEntries(out, el, groupName(el, group))
		}
	}
	return out
}

func castItem(item *Element, group string) (play.Character, bool) {
	c := play.Character{Group: group}

	if role := item.Child(elemRole); role != nil {
		if name := role.Child(elemName); name != nil {
			c.Name = AssembleText(name)
		}
		if c.Name == "" {
			c.Name = AssembleText(role)
		}
		if desc := item.Child(elemRoleDesc); desc != nil {
			c.Description = AssembleText(desc)
		}
	} else {
		c.Name = AssembleText(item)
	}

	return c, c.Name != ""
}

// groupName names a cast group by its <head>, falling back to a
// <roleDesc> shared by the whole group, then to the enclosing group.
func groupName(g *Element, parent string) string {
	if head := g.Child(elemHead); head != nil {
		if text := AssembleText(head); text != "" {
			return text
		}
	}
	if desc := g.Child(elemRoleDesc); desc != nil {
		if text := AssembleText(desc); text != "" {
			return text
		}
	}
	return parent
}
