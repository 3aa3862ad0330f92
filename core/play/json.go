package play

import (
	"encoding/json"
)

// Export types mirror the model for JSON output.

type playJSON struct {
	Title      string          `json:"title"`
	ActCount   int             `json:"act_count"`
	SceneCount int             `json:"scene_count"`
	Characters []characterJSON `json:"characters,omitempty"`
	Acts       []actJSON       `json:"acts"`
}

type characterJSON struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`
}

type actJSON struct {
	Number string      `json:"number"`
	Title  string      `json:"title"`
	Scenes []sceneJSON `json:"scenes"`
}

type sceneJSON struct {
	Number  string     `json:"number"`
	Title   string     `json:"title"`
	Content []itemJSON `json:"content"`
}

type itemJSON struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MarshalJSON encodes the whole play, content items as {"type", "text"}.
func (p *Play) MarshalJSON() ([]byte, error) {
	out := playJSON{
		Title:      p.title,
		ActCount:   p.ActCount(),
		SceneCount: p.TotalSceneCount(),
		Acts:       make([]actJSON, 0, len(p.acts)),
	}
	for _, c := range p.characters {
		out.Characters = append(out.Characters, characterJSON(c))
	}
	for _, a := range p.acts {
		out.Acts = append(out.Acts, a.toJSON())
	}
	return json.Marshal(out)
}

// MarshalJSON encodes the act and its scenes.
func (a *Act) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.toJSON())
}

// MarshalJSON encodes the scene and its content.
func (s *Scene) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}

func (a *Act) toJSON() actJSON {
	out := actJSON{Number: a.number, Title: a.title, Scenes: make([]sceneJSON, 0, len(a.scenes))}
	for _, s := range a.scenes {
		out.Scenes = append(out.Scenes, s.toJSON())
	}
	return out
}

func (s *Scene) toJSON() sceneJSON {
	out := sceneJSON{Number: s.number, Title: s.title, Content: make([]itemJSON, 0, len(s.content))}
	for _, item := range s.content {
		out.Content = append(out.Content, itemJSON{Type: item.Kind().String(), Text: item.Text()})
	}
	return out
}
