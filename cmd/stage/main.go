// Command stage reads a TEI-encoded play and prints it, checks it, exports
// it or serves it as a small web reader.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
	"github.com/FocuswithJustin/JuniperStage/core/play"
	"github.com/FocuswithJustin/JuniperStage/core/tei"
	"github.com/FocuswithJustin/JuniperStage/core/xml"
	"github.com/FocuswithJustin/JuniperStage/internal/config"
	"github.com/FocuswithJustin/JuniperStage/internal/loader"
	"github.com/FocuswithJustin/JuniperStage/internal/logging"
	"github.com/FocuswithJustin/JuniperStage/internal/render"
	"github.com/FocuswithJustin/JuniperStage/internal/web"
)

const version = "0.1.0"

// CLI defines the command-line interface for stage.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"YAML configuration file" type:"path"`
	Document  string `name:"document" short:"d" help:"TEI document (.xml, .xml.xz, .xml.gz); overrides the config" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`
	LogFile   string `name:"log-file" help:"Also write JSON logs to this rotated file" type:"path"`

	Show       ShowCmd       `cmd:"" help:"Print the play, an act or a scene as Markdown"`
	Outline    OutlineCmd    `cmd:"" help:"List acts and scenes with item counts"`
	Characters CharactersCmd `cmd:"" help:"Print the cast list"`
	Check      CheckCmd      `cmd:"" help:"Check that the document is well-formed and summarize it"`
	Export     ExportCmd     `cmd:"" help:"Write the parsed play as JSON"`
	Serve      ServeCmd      `cmd:"" help:"Start the web reader"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// App carries what every command needs once flags and config are merged.
type App struct {
	Config config.Config
	Loader *loader.Loader
	Out    io.Writer
	ctx    context.Context
}

// newApp merges the config file, environment and flags, then initializes
// logging. The returned closer flushes the log file.
func newApp(ctx context.Context, cli *CLI, out io.Writer) (*App, io.Closer, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, err
	}
	if cli.Document != "" {
		cfg.Document = cli.Document
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}
	if cli.LogFile != "" {
		cfg.Logging.File = cli.LogFile
	}

	closer := logging.Setup(logging.Options{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
		File:   cfg.Logging.File,
	})

	ctx = logging.WithRunID(ctx, logging.NewID())
	return &App{
		Config: cfg,
		Loader: loader.New(cfg.Cache.MaxEntries),
		Out:    out,
		ctx:    ctx,
	}, closer, nil
}

var errNoDocument = errors.New("no document given: use --document, STAGE_DOCUMENT or the config file")

// Play loads the configured document.
func (a *App) Play() (*play.Play, error) {
	doc, err := a.document()
	if err != nil {
		return nil, err
	}
	return doc.Play, nil
}

func (a *App) document() (*loader.Document, error) {
	if a.Config.Document == "" {
		return nil, errNoDocument
	}
	return a.Loader.Load(a.ctx, a.Config.Document)
}

// ShowCmd prints the whole play, one act or one scene.
type ShowCmd struct {
	Location string `arg:"" optional:"" help:"Act or scene, e.g. 1, 1.2 or \"Act 1, Scene 2\"; omit for the whole play"`
}

func (c *ShowCmd) Run(app *App) error {
	p, err := app.Play()
	if err != nil {
		return err
	}
	if c.Location == "" {
		return render.Full(app.Out, p)
	}

	loc, err := play.ParseLocation(c.Location)
	if err != nil {
		return err
	}
	act, scene, err := p.Locate(loc)
	if err != nil {
		return err
	}
	if scene == nil {
		return render.Act(app.Out, act)
	}
	return render.Scene(app.Out, scene)
}

// OutlineCmd lists the play's structure.
type OutlineCmd struct{}

func (c *OutlineCmd) Run(app *App) error {
	p, err := app.Play()
	if err != nil {
		return err
	}
	return render.Outline(app.Out, p)
}

// CharactersCmd prints the cast list.
type CharactersCmd struct{}

func (c *CharactersCmd) Run(app *App) error {
	p, err := app.Play()
	if err != nil {
		return err
	}
	return render.Characters(app.Out, p)
}

// CheckCmd reports well-formedness, size, fingerprint and counts.
type CheckCmd struct{}

var errMalformed = errors.New("document is not well-formed XML")

func (c *CheckCmd) Run(app *App) error {
	if app.Config.Document == "" {
		return errNoDocument
	}
	src, err := loader.Read(app.Config.Document)
	if err != nil {
		return err
	}

	out := app.Out
	fmt.Fprintf(out, "Document:    %s\n", src.Path)
	fmt.Fprintf(out, "Stored:      %s (%s)\n", humanize.IBytes(uint64(src.StoredSize)), src.Compression)
	fmt.Fprintf(out, "XML:         %s\n", humanize.IBytes(uint64(len(src.Data))))
	fmt.Fprintf(out, "BLAKE3:      %s\n", src.BLAKE3)

	result := xml.Validate(src.Data)
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(out, "Error:       line %d: %s\n", e.Line, e.Message)
		}
		return errMalformed
	}
	fmt.Fprintln(out, "Well-formed: yes")

	p, err := tei.ParseBytes(src.Data)
	if err != nil {
		return err
	}
	counts := render.Total(p)
	fmt.Fprintf(out, "Title:       %s\n", p.Title())
	fmt.Fprintf(out, "Acts:        %d\n", p.ActCount())
	fmt.Fprintf(out, "Scenes:      %d\n", p.TotalSceneCount())
	fmt.Fprintf(out, "Characters:  %d\n", len(p.Characters()))
	fmt.Fprintf(out, "Speeches:    %s\n", humanize.Comma(int64(counts.Speeches)))
	fmt.Fprintf(out, "Lines:       %s\n", humanize.Comma(int64(counts.Lines)))
	fmt.Fprintf(out, "Stage dirs:  %s\n", humanize.Comma(int64(counts.StageDirections)))
	return nil
}

// ExportCmd writes the play model as JSON.
type ExportCmd struct {
	Out    string `short:"o" help:"Output file (default: stdout)" type:"path"`
	Indent bool   `help:"Indent the JSON output" default:"true" negatable:""`
}

func (c *ExportCmd) Run(app *App) error {
	p, err := app.Play()
	if err != nil {
		return err
	}

	var data []byte
	if c.Indent {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = json.Marshal(p)
	}
	if err != nil {
		return apperrors.Wrap(err, "failed to encode play")
	}
	data = append(data, '\n')

	if c.Out == "" {
		_, err = app.Out.Write(data)
		return err
	}
	if err := os.WriteFile(c.Out, data, 0o644); err != nil {
		return apperrors.Wrapf(err, "failed to write %s", c.Out)
	}
	logging.InfoContext(app.ctx, "play exported", "path", c.Out, "size", humanize.IBytes(uint64(len(data))))
	return nil
}

// ServeCmd starts the web reader.
type ServeCmd struct {
	Port int `help:"HTTP server port (default from config, 8080)"`
}

func (c *ServeCmd) Run(app *App) error {
	if app.Config.Document == "" {
		return errNoDocument
	}
	port := app.Config.Server.Port
	if c.Port != 0 {
		port = c.Port
	}

	ctx, stop := signal.NotifyContext(app.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return web.Start(ctx, web.Config{Port: port, Document: app.Config.Document}, app.Loader)
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.Out, "stage version %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("stage"),
		kong.Description("Read TEI-encoded plays"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	app, closer, err := newApp(context.Background(), &cli, os.Stdout)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(app)
	if err != nil {
		logging.ErrorContext(app.ctx, "command failed", "command", ctx.Command(), "error", err)
	}
	_ = closer.Close()
	ctx.FatalIfErrorf(err)
}
