// Package render writes the reader's Markdown views of a play: the whole
// play, one act, one scene, the cast list and an outline.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/FocuswithJustin/JuniperStage/core/encoding"
	"github.com/FocuswithJustin/JuniperStage/core/play"
)

// MainGroup heads the characters that belong to no cast group.
const MainGroup = "Main Characters"

// Full writes the complete play, act by act.
func Full(w io.Writer, p *play.Play) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title())
	fmt.Fprintf(&b, "## Complete text of %s\n\n", p.Title())
	fmt.Fprintf(&b, "Acts: %d | Total scenes: %d\n\n", p.ActCount(), p.TotalSceneCount())

	for _, act := range p.Acts() {
		fmt.Fprintf(&b, "# %s\n\n---\n\n", act.FormattedTitle())
		for _, scene := range act.Scenes() {
			writeScene(&b, scene)
		}
	}
	return flush(w, &b)
}

// Act writes every scene of one act, separated by rules.
func Act(w io.Writer, act *play.Act) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", act.FormattedTitle())
	fmt.Fprintf(&b, "Scenes: %d\n\n", act.SceneCount())
	for _, scene := range act.Scenes() {
		writeScene(&b, scene)
		b.WriteString("---\n\n")
	}
	return flush(w, &b)
}

// Scene writes a single scene.
func Scene(w io.Writer, scene *play.Scene) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", scene.FormattedTitle())
	fmt.Fprintf(&b, "Content: %d items\n\n", scene.Len())
	if text := scene.RenderedText(); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	return flush(w, &b)
}

func writeScene(b *strings.Builder, scene *play.Scene) {
	fmt.Fprintf(b, "## %s\n\n", scene.FormattedTitle())
	if text := scene.RenderedText(); text != "" {
		b.WriteString(text)
		b.WriteString("\n\n")
	}
}

// CastGroup is a heading and the characters under it.
type CastGroup struct {
	Name       string
	Characters []play.Character
}

// GroupCast splits the cast into ungrouped characters (under MainGroup,
// listed first) and named groups in order of first appearance.
func GroupCast(cast []play.Character) []CastGroup {
	main := CastGroup{Name: MainGroup}
	var groups []CastGroup
	index := map[string]int{}

	for _, c := range cast {
		if c.Group == "" {
			main.Characters = append(main.Characters, c)
			continue
		}
		i, ok := index[c.Group]
		if !ok {
			i = len(groups)
			index[c.Group] = i
			groups = append(groups, CastGroup{Name: c.Group})
		}
		groups[i].Characters = append(groups[i].Characters, c)
	}

	if len(main.Characters) > 0 {
		groups = append([]CastGroup{main}, groups...)
	}
	return groups
}

// Characters writes the cast list grouped as GroupCast orders it.
func Characters(w io.Writer, p *play.Play) error {
	cast := p.Characters()

	var b strings.Builder
	b.WriteString("# Characters\n\n")
	fmt.Fprintf(&b, "Total characters: %d\n\n", len(cast))
	for _, g := range GroupCast(cast) {
		fmt.Fprintf(&b, "### %s\n\n", g.Name)
		for _, c := range g.Characters {
			if c.Description != "" {
				fmt.Fprintf(&b, "**%s** - %s\n\n", c.Name, c.Description)
			} else {
				fmt.Fprintf(&b, "**%s**\n\n", c.Name)
			}
		}
	}
	return flush(w, &b)
}

// Outline writes one row per scene with its item counts.
func Outline(w io.Writer, p *play.Play) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", encoding.SingleLine(p.Title()))
	fmt.Fprintln(tw, "LOCATION\tTITLE\tSPEECHES\tLINES\tSTAGE")
	for _, act := range p.Acts() {
		fmt.Fprintf(tw, "%s\t%s (%d scenes)\t\t\t\n",
			act.Number(), encoding.SingleLine(act.FormattedTitle()), act.SceneCount())
		for _, scene := range act.Scenes() {
			c := Count(scene)
			fmt.Fprintf(tw, "%s.%s\t  %s\t%d\t%d\t%d\n",
				act.Number(), scene.Number(), encoding.SingleLine(scene.FormattedTitle()),
				c.Speeches, c.Lines, c.StageDirections)
		}
	}
	fmt.Fprintf(tw, "\t%d acts, %d scenes\t\t\t\n", p.ActCount(), p.TotalSceneCount())
	return tw.Flush()
}

// Counts tallies a scene's content items by kind.
type Counts struct {
	Speeches        int
	Lines           int
	StageDirections int
}

// Count tallies the items of one scene.
func Count(scene *play.Scene) Counts {
	var c Counts
	for _, item := range scene.Content() {
		switch item.Kind() {
		case play.KindSpeaker:
			c.Speeches++
		case play.KindLine:
			c.Lines++
		case play.KindStageDirection:
			c.StageDirections++
		}
	}
	return c
}

// Total sums the counts of every scene in p.
func Total(p *play.Play) Counts {
	var t Counts
	for _, act := range p.Acts() {
		for _, scene := range act.Scenes() {
			c := Count(scene)
			t.Speeches += c.Speeches
			t.Lines += c.Lines
			t.StageDirections += c.StageDirections
		}
	}
	return t
}

func flush(w io.Writer, b *strings.Builder) error {
	_, err := io.WriteString(w, b.String())
	return err
}
