package play

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
)

// Location addresses an act, or a scene within an act, by identifier.
// An empty Scene means the whole act.
type Location struct {
	Act   string `parser:"ActWord? @Ident"`
	Scene string `parser:"( Sep? SceneWord? @Ident )?"`
}

// locationLexer tokenizes locations such as "1.2", "Act 1, Scene 2",
// "act 4 scene 7" or "Induction".
var locationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	// Keywords are matched before identifiers, case-insensitively.
	{Name: "ActWord", Pattern: `(?i)act\b`},
	{Name: "SceneWord", Pattern: `(?i)scene\b`},
	// Identifiers are opaque: numbers, roman numerals, names.
	{Name: "Ident", Pattern: `[\p{L}\p{N}_\-]+`},
	{Name: "Sep", Pattern: `[.,:/]`},
})

var locationParser = participle.MustBuild[Location](
	participle.Lexer(locationLexer),
	participle.Elide("Whitespace"),
)

// ParseLocation parses a human-written location.
// Supported formats:
//   - "1" (whole act)
//   - "1.2", "1:2", "1/2", "1 2" (act and scene)
//   - "Act 1", "Act 1, Scene 2", "act 1 scene 2"
func ParseLocation(input string) (Location, error) {
	loc, err := locationParser.ParseString("", strings.TrimSpace(input))
	if err != nil {
		return Location{}, &apperrors.ParseError{
			Format:  "location",
			Message: err.Error(),
			Err:     err,
		}
	}
	return *loc, nil
}

// String returns the canonical "act.scene" (or "act") form.
func (l Location) String() string {
	if l.Scene == "" {
		return l.Act
	}
	return l.Act + "." + l.Scene
}

// Locate resolves loc against the play. The returned scene is nil when loc
// names a whole act. A miss is reported as *errors.NotFoundError.
func (p *Play) Locate(loc Location) (*Act, *Scene, error) {
	act, ok := p.FindAct(loc.Act)
	if !ok {
		return nil, nil, apperrors.NewNotFound("act", loc.Act)
	}
	if loc.Scene == "" {
		return act, nil, nil
	}
	scene, ok := act.FindScene(loc.Scene)
	if !ok {
		return act, nil, apperrors.NewNotFound("scene", loc.String())
	}
	return act, scene, nil
}
