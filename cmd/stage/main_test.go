package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
)

const learTEI = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader><fileDesc><titleStmt><title>King Lear</title></titleStmt></fileDesc></teiHeader>
  <text>
    <front><castList>
      <castItem><role>LEAR</role><roleDesc>King of Britain</roleDesc></castItem>
      <castItem><role>KENT</role></castItem>
    </castList></front>
    <body>
      <div type="act" n="1">
        <div type="scene" n="1">
          <stage><w>Enter</w><c> </c><w>Kent</w><pc>.</pc></stage>
          <sp><speaker><w>Lear</w></speaker>
            <l><w>Attend</w><c> </c><w>the</w><c> </c><w>lords</w><c> </c><w>of</w><c> </c><w>France</w><pc>;</pc></l>
          </sp>
        </div>
        <div type="scene" n="2"/>
      </div>
      <div type="act" n="2">
        <div type="scene" n="1"><sp><speaker>Edmund</speaker><l>Thou, Nature, art my goddess</l></sp></div>
      </div>
    </body>
  </text>
</TEI>`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// run parses args the way main does and executes the selected command.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STAGE_DOCUMENT", "")

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("stage"), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}

	var out bytes.Buffer
	app, closer, err := newApp(context.Background(), &cli, &out)
	if err != nil {
		return "", err
	}
	defer closer.Close()

	err = kctx.Run(app)
	return out.String(), err
}

func TestShow(t *testing.T) {
	doc := writeFixture(t, "lear.xml", learTEI)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"whole play", []string{"show"}, []string{
			"# King Lear",
			"## Complete text of King Lear",
			"Acts: 2 | Total scenes: 3",
			"Attend the lords of France;",
		}},
		{"act", []string{"show", "2"}, []string{"# Act 2", "Scenes: 1", "Thou, Nature, art my goddess"}},
		{"scene dotted", []string{"show", "1.1"}, []string{"# Act 1, Scene 1", "Content: 3 items", "Enter Kent."}},
		{"scene spelled out", []string{"show", "Act 1, Scene 2"}, []string{"Content: 0 items"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"-d", doc}, tt.args...)...)
			if err != nil {
				t.Fatalf("show failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestShowErrors(t *testing.T) {
	doc := writeFixture(t, "lear.xml", learTEI)

	_, err := run(t, "-d", doc, "show", "9")
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing act: got %v, want not found", err)
	}

	_, err = run(t, "-d", doc, "show", "1.7")
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("missing scene: got %v, want not found", err)
	}

	_, err = run(t, "-d", doc, "show", "Act")
	var pe *apperrors.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("bad location: got %v, want parse error", err)
	}
}

func TestNoDocument(t *testing.T) {
	for _, cmd := range []string{"show", "outline", "characters", "check", "export", "serve"} {
		t.Run(cmd, func(t *testing.T) {
			if _, err := run(t, cmd); !errors.Is(err, errNoDocument) {
				t.Errorf("%s without document: got %v", cmd, err)
			}
		})
	}
}

func TestOutline(t *testing.T) {
	out, err := run(t, "-d", writeFixture(t, "lear.xml", learTEI), "outline")
	if err != nil {
		t.Fatalf("outline failed: %v", err)
	}
	for _, want := range []string{"King Lear", "LOCATION", "1.1", "2.1", "2 acts, 3 scenes"} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q:\n%s", want, out)
		}
	}
}

func TestCharacters(t *testing.T) {
	out, err := run(t, "-d", writeFixture(t, "lear.xml", learTEI), "characters")
	if err != nil {
		t.Fatalf("characters failed: %v", err)
	}
	for _, want := range []string{"Total characters: 2", "**LEAR** - King of Britain", "**KENT**"} {
		if !strings.Contains(out, want) {
			t.Errorf("characters missing %q:\n%s", want, out)
		}
	}
}

func TestCheck(t *testing.T) {
	t.Run("well-formed", func(t *testing.T) {
		out, err := run(t, "-d", writeFixture(t, "lear.xml", learTEI), "check")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		for _, want := range []string{"Well-formed: yes", "Title:       King Lear", "Scenes:      3", "Speeches:    2", "(none)"} {
			if !strings.Contains(out, want) {
				t.Errorf("check missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("malformed", func(t *testing.T) {
		out, err := run(t, "-d", writeFixture(t, "broken.xml", "<TEI><text></TEI>"), "check")
		if !errors.Is(err, errMalformed) {
			t.Fatalf("got %v, want errMalformed", err)
		}
		if !strings.Contains(out, "Error:") {
			t.Errorf("expected an error line:\n%s", out)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "-d", filepath.Join(t.TempDir(), "nope.xml"), "check")
		var ioe *apperrors.IOError
		if !errors.As(err, &ioe) {
			t.Errorf("got %v, want IOError", err)
		}
	})
}

func TestExport(t *testing.T) {
	doc := writeFixture(t, "lear.xml", learTEI)

	out, err := run(t, "-d", doc, "export", "--no-indent")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("--no-indent should produce one line, got:\n%s", out)
	}

	var got struct {
		Title      string `json:"title"`
		ActCount   int    `json:"act_count"`
		SceneCount int    `json:"scene_count"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Title != "King Lear" || got.ActCount != 2 || got.SceneCount != 3 {
		t.Errorf("export = %+v", got)
	}

	dest := filepath.Join(t.TempDir(), "lear.json")
	if _, err := run(t, "-d", doc, "export", "-o", dest); err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"title\": \"King Lear\"") {
		t.Errorf("indented export expected:\n%s", data)
	}
}

func TestExportUnwritable(t *testing.T) {
	doc := writeFixture(t, "lear.xml", learTEI)
	dest := filepath.Join(t.TempDir(), "missing", "lear.json")

	_, err := run(t, "-d", doc, "export", "-o", dest)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("export to a missing directory: got %v, want os.ErrNotExist", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to write "+dest+": ") {
		t.Errorf("error = %q, want the destination as context", err)
	}
}

func TestConfigFile(t *testing.T) {
	doc := writeFixture(t, "lear.xml", learTEI)
	cfg := writeFixture(t, "stage.yaml", "document: "+doc+"\nlogging:\n  level: debug\ncache:\n  max_entries: 3\n")

	var cli CLI
	cli.Config = cfg
	t.Setenv("STAGE_DOCUMENT", "")
	app, closer, err := newApp(context.Background(), &cli, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer closer.Close()

	if app.Config.Document != doc {
		t.Errorf("Document = %q, want %q", app.Config.Document, doc)
	}
	if app.Config.Cache.MaxEntries != 3 {
		t.Errorf("MaxEntries = %d, want 3", app.Config.Cache.MaxEntries)
	}

	cli.Document = "other.xml"
	cli.LogLevel = "warn"
	app2, closer2, err := newApp(context.Background(), &cli, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer closer2.Close()
	if app2.Config.Document != "other.xml" || app2.Config.Logging.Level != "warn" {
		t.Errorf("flags should override the file: %+v", app2.Config)
	}
}

func TestBadConfig(t *testing.T) {
	var cli CLI
	cli.Config = writeFixture(t, "stage.yaml", "server: [oops\n")
	if _, _, err := newApp(context.Background(), &cli, &bytes.Buffer{}); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "stage version "+version+"\n" {
		t.Errorf("version = %q", out)
	}
}
