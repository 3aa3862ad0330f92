package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stage.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", path, err)
		}
		if cfg != Defaults() {
			t.Errorf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
document: plays/lear.xml
logging:
  level: DEBUG
  format: json
server:
  port: 9090
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := Defaults()
	want.Document = "plays/lear.xml"
	want.Logging.Level = "debug"
	want.Logging.Format = "json"
	want.Server.Port = 9090
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "document: a.xml\nserver:\n  port: 9090\n")
	t.Setenv(EnvDocument, "b.xml.xz")
	t.Setenv(EnvPort, "7000")
	t.Setenv(EnvLogLevel, "Warn")
	t.Setenv(EnvLogFile, "/tmp/stage.log")
	t.Setenv(EnvCacheLimit, "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Document != "b.xml.xz" || cfg.Server.Port != 7000 || cfg.Logging.Level != "warn" || cfg.Logging.File != "/tmp/stage.log" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Cache.MaxEntries != Defaults().Cache.MaxEntries {
		t.Errorf("malformed number should be ignored, got %d", cfg.Cache.MaxEntries)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{"malformed yaml", "logging: [unterminated", func(err error) bool {
			var pe *apperrors.ParseError
			return errors.As(err, &pe) && pe.Format == "yaml"
		}},
		{"port out of range", "server:\n  port: 70000\n", func(err error) bool {
			return errors.Is(err, apperrors.ErrInvalidInput)
		}},
		{"negative cache", "cache:\n  max_entries: -1\n", func(err error) bool {
			return errors.Is(err, apperrors.ErrInvalidInput)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !tt.check(err) {
				t.Errorf("Load() error = %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Document = "lear.xml"
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
