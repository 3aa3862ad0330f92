package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/FocuswithJustin/JuniperStage/core/encoding"
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/internal/logging"
	"github.com/FocuswithJustin/JuniperStage/internal/render"
	"github.com/FocuswithJustin/JuniperStage/internal/server"
)

// htmlFormatter renders content items as escaped HTML paragraphs.
type htmlFormatter struct{}

func (htmlFormatter) Speaker(text string) string {
	return `<p class="speaker"><strong>` + encoding.EscapeHTML(play.Upper(text)) + `.</strong></p>`
}

func (htmlFormatter) StageDirection(text string) string {
	return `<p class="stage"><em>` + encoding.EscapeHTML(text) + `</em></p>`
}

func (htmlFormatter) Line(text string) string {
	return `<p class="line">` + encoding.EscapeHTML(text) + `</p>`
}

// sceneHTML renders a scene's content; every item is escaped by htmlFormatter.
func sceneHTML(s *play.Scene) template.HTML {
	return template.HTML(s.Render(htmlFormatter{}))
}

type navScene struct {
	Number string
	Title  string
}

type navAct struct {
	Number string
	Title  string
	Scenes []navScene
}

type sceneView struct {
	Title   string
	Items   int
	Content template.HTML
}

type actView struct {
	Title  string
	Scenes []sceneView
}

type pageData struct {
	PlayTitle  string
	Title      string
	Summary    string
	Nav        []navAct
	CurrentAct string
	Acts       []actView
	Scenes     []sceneView
	Groups     []render.CastGroup
	Message    string
}

func navigation(p *play.Play) []navAct {
	acts := p.Acts()
	nav := make([]navAct, 0, len(acts))
	for _, a := range acts {
		n := navAct{Number: a.Number(), Title: a.FormattedTitle()}
		for _, s := range a.Scenes() {
			n.Scenes = append(n.Scenes, navScene{Number: s.Number(), Title: s.FormattedTitle()})
		}
		nav = append(nav, n)
	}
	return nav
}

func views(scenes []*play.Scene) []sceneView {
	out := make([]sceneView, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, sceneView{Title: s.FormattedTitle(), Items: s.Len(), Content: sceneHTML(s)})
	}
	return out
}

// playFor loads the document, answering 500 itself on failure.
func (s *Server) playFor(w http.ResponseWriter, r *http.Request) (*play.Play, bool) {
	doc, err := s.loader.Load(r.Context(), s.document)
	if err != nil {
		logging.ErrorContext(r.Context(), "document load failed", "path", s.document, "error", err)
		http.Error(w, "Document unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return doc.Play, true
}

func (s *Server) base(p *play.Play) pageData {
	return pageData{PlayTitle: p.Title(), Nav: navigation(p)}
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	p, ok := s.playFor(w, r)
	if !ok {
		return
	}

	data := s.base(p)
	data.Title = "Complete text of " + p.Title()
	data.Summary = fmt.Sprintf("Acts: %d | Total scenes: %d", p.ActCount(), p.TotalSceneCount())
	for _, a := range p.Acts() {
		data.Acts = append(data.Acts, actView{Title: a.FormattedTitle(), Scenes: views(a.Scenes())})
	}
	s.render(w, r, http.StatusOK, "play.html", data)
}

func (s *Server) handleCharacters(w http.ResponseWriter, r *http.Request) {
	p, ok := s.playFor(w, r)
	if !ok {
		return
	}

	data := s.base(p)
	data.Title = "Characters"
	data.Summary = fmt.Sprintf("Total characters: %d", len(p.Characters()))
	data.Groups = render.GroupCast(p.Characters())
	s.render(w, r, http.StatusOK, "characters.html", data)
}

func (s *Server) handleAct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.playFor(w, r)
	if !ok {
		return
	}

	act, found := findAct(p, r.PathValue("act"))
	if !found {
		s.notFound(w, r, p, "Act not found")
		return
	}

	data := s.base(p)
	data.Title = act.FormattedTitle()
	data.CurrentAct = act.Number()
	data.Summary = fmt.Sprintf("Scenes: %d", act.SceneCount())
	data.Scenes = views(act.Scenes())
	s.render(w, r, http.StatusOK, "act.html", data)
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	p, ok := s.playFor(w, r)
	if !ok {
		return
	}

	act, found := findAct(p, r.PathValue("act"))
	if !found {
		s.notFound(w, r, p, "Act not found")
		return
	}
	number := r.PathValue("scene")
	if !server.ValidIdentifier(number) {
		s.notFound(w, r, p, "Scene not found")
		return
	}
	scene, found := act.FindScene(number)
	if !found {
		s.notFound(w, r, p, "Scene not found")
		return
	}

	data := s.base(p)
	data.Title = scene.FormattedTitle()
	data.CurrentAct = act.Number()
	data.Summary = fmt.Sprintf("Content: %d items", scene.Len())
	data.Scenes = views([]*play.Scene{scene})
	s.render(w, r, http.StatusOK, "scene.html", data)
}

func (s *Server) handleAPIPlay(w http.ResponseWriter, r *http.Request) {
	p, ok := s.playFor(w, r)
	if !ok {
		return
	}

	writeJSON(w, r, p)
}

type cacheStatus struct {
	Documents []string `json:"documents"`
	Hits      int64    `json:"hits"`
	Misses    int64    `json:"misses"`
	Evictions int64    `json:"evictions"`
	Size      int      `json:"size"`
	MaxSize   int      `json:"max_size"`
}

func (s *Server) handleAPICache(w http.ResponseWriter, r *http.Request) {
	stats := s.loader.Stats()
	docs := s.loader.Cached()
	if docs == nil {
		docs = []string{}
	}
	writeJSON(w, r, cacheStatus{
		Documents: docs,
		Hits:      stats.Hits,
		Misses:    stats.Misses,
		Evictions: stats.Evictions,
		Size:      stats.Size,
		MaxSize:   stats.MaxSize,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.ErrorContext(r.Context(), "json encoding failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func findAct(p *play.Play, number string) (*play.Act, bool) {
	if !server.ValidIdentifier(number) {
		return nil, false
	}
	return p.FindAct(number)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, p *play.Play, msg string) {
	data := s.base(p)
	data.Title = msg
	data.Message = msg
	s.render(w, r, http.StatusNotFound, "error.html", data)
}

// render executes name into a buffer so a template failure can still
// produce a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		logging.ErrorContext(r.Context(), "template rendering failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
