package play

// Kind identifies the three kinds of scene content.
type Kind int

const (
	// KindSpeaker is a speaker cue.
	KindSpeaker Kind = iota
	// KindStageDirection is a stage direction.
	KindStageDirection
	// KindLine is a line of dialogue, verse or prose.
	KindLine
)

// String returns the short name used in exports.
func (k Kind) String() string {
	switch k {
	case KindSpeaker:
		return "speaker"
	case KindStageDirection:
		return "stage"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// ContentItem is one entry of a scene's content: a Speaker, a
// StageDirection or a Line. The set is closed; each kind renders through
// its own Formatter method.
type ContentItem interface {
	// Text returns the item's normalized text.
	Text() string
	// Kind reports which of the three kinds the item is.
	Kind() Kind
	// Format renders the item with f.
	Format(f Formatter) string

	contentItem()
}

// Speaker names who speaks the lines that follow.
type Speaker string

// StageDirection is an instruction to the actors.
type StageDirection string

// Line is a verse line or prose paragraph.
type Line string

func (s Speaker) Text() string        { return string(s) }
func (d StageDirection) Text() string { return string(d) }
func (l Line) Text() string           { return string(l) }

func (Speaker) Kind() Kind        { return KindSpeaker }
func (StageDirection) Kind() Kind { return KindStageDirection }
func (Line) Kind() Kind           { return KindLine }

func (s Speaker) Format(f Formatter) string        { return f.Speaker(string(s)) }
func (d StageDirection) Format(f Formatter) string { return f.StageDirection(string(d)) }
func (l Line) Format(f Formatter) string           { return f.Line(string(l)) }

func (Speaker) contentItem()        {}
func (StageDirection) contentItem() {}
func (Line) contentItem()           {}
