// Package play is the in-memory model of a play: Play → Act → Scene →
// ContentItem, plus the cast list.
//
// Values are built once by the extractor and never modified afterwards.
// Accessors hand out copies of internal slices, so a *Play can be shared
// between goroutines without locking.
package play

import (
	"slices"
)

// DefaultTitle is used when a document declares no title.
const DefaultTitle = "Unknown Play"

// Play is a whole play.
type Play struct {
	title      string
	acts       []*Act
	characters []Character
}

// Act is one act and its scenes in document order.
type Act struct {
	number string
	title  string
	scenes []*Scene
}

// Scene is one scene and its content in document order.
type Scene struct {
	number  string
	title   string
	content []ContentItem
}

// Character is one entry of the cast list.
type Character struct {
	Name        string
	Description string
	Group       string
}

// New builds a Play. An empty title falls back to DefaultTitle.
func New(title string, acts []*Act, characters []Character) *Play {
	if title == "" {
		title = DefaultTitle
	}
	return &Play{
		title:      title,
		acts:       slices.Clone(acts),
		characters: slices.Clone(characters),
	}
}

// NewAct builds an Act titled "Act {number}".
func NewAct(number string, scenes []*Scene) *Act {
	return &Act{
		number: number,
		title:  "Act " + number,
		scenes: slices.Clone(scenes),
	}
}

// NewScene builds a Scene of the act numbered actNumber, titled
// "Act {actNumber}, Scene {number}".
func NewScene(actNumber, number string, content []ContentItem) *Scene {
	return &Scene{
		number:  number,
		title:   "Act " + actNumber + ", Scene " + number,
		content: slices.Clone(content),
	}
}

// Title returns the play's title.
func (p *Play) Title() string { return p.title }

// Acts returns the acts in document order.
func (p *Play) Acts() []*Act { return slices.Clone(p.acts) }

// Characters returns the cast list in document order.
func (p *Play) Characters() []Character { return slices.Clone(p.characters) }

// ActCount returns the number of acts.
func (p *Play) ActCount() int { return len(p.acts) }

// TotalSceneCount returns the number of scenes across all acts.
func (p *Play) TotalSceneCount() int {
	total := 0
	for _, a := range p.acts {
		total += a.SceneCount()
	}
	return total
}

// FindAct returns the first act whose number is exactly number.
func (p *Play) FindAct(number string) (*Act, bool) {
	for _, a := range p.acts {
		if a.number == number {
			return a, true
		}
	}
	return nil, false
}

// Number returns the act's identifier as declared in the document.
func (a *Act) Number() string { return a.number }

// Scenes returns the scenes in document order.
func (a *Act) Scenes() []*Scene { return slices.Clone(a.scenes) }

// SceneCount returns the number of scenes in the act.
func (a *Act) SceneCount() int { return len(a.scenes) }

// FormattedTitle returns "Act {number}".
func (a *Act) FormattedTitle() string { return a.title }

// FindScene returns the first scene of this act whose number is exactly
// number.
func (a *Act) FindScene(number string) (*Scene, bool) {
	for _, s := range a.scenes {
		if s.number == number {
			return s, true
		}
	}
	return nil, false
}

// Number returns the scene's identifier as declared in the document.
func (s *Scene) Number() string { return s.number }

// Content returns the scene's items in document order.
func (s *Scene) Content() []ContentItem { return slices.Clone(s.content) }

// Len returns the number of content items.
func (s *Scene) Len() int { return len(s.content) }

// FormattedTitle returns "Act {act}, Scene {number}".
func (s *Scene) FormattedTitle() string { return s.title }

// IsEmpty reports whether the scene has no content.
func (s *Scene) IsEmpty() bool { return len(s.content) == 0 }

// Render renders the scene's content with f.
func (s *Scene) Render(f Formatter) string { return Render(s.content, f) }

// RenderedText renders the scene as Markdown blocks separated by blank
// lines.
func (s *Scene) RenderedText() string { return s.Render(Markdown{}) }
