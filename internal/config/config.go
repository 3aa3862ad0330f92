// Package config loads the reader configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/FocuswithJustin/JuniperStage/core/errors"
)

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ServerConfig configures the web reader.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// CacheConfig configures the document loader.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// Config is the on-disk configuration.
type Config struct {
	Document string        `yaml:"document"`
	Logging  LoggingConfig `yaml:"logging"`
	Server   ServerConfig  `yaml:"server"`
	Cache    CacheConfig   `yaml:"cache"`
}

// Env var names used as overrides.
const (
	EnvDocument   = "STAGE_DOCUMENT"
	EnvLogLevel   = "STAGE_LOG_LEVEL"
	EnvLogFormat  = "STAGE_LOG_FORMAT"
	EnvLogFile    = "STAGE_LOG_FILE"
	EnvPort       = "STAGE_PORT"
	EnvCacheLimit = "STAGE_CACHE_MAX_ENTRIES"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Document: "",
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Server:   ServerConfig{Port: 8080},
		Cache:    CacheConfig{MaxEntries: 16},
	}
}

// Load reads path (if non-empty and present), merges it over the defaults
// and applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, apperrors.NewIO("read", path, err)
		default:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return cfg, apperrors.NewParse("yaml", path, err)
			}
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, cfg.Validate()
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", apperrors.ErrInvalidInput, c.Server.Port)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%w: cache.max_entries must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func mergeInto(dst, src *Config) {
	if v := strings.TrimSpace(src.Document); v != "" {
		dst.Document = v
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Cache.MaxEntries != 0 {
		dst.Cache.MaxEntries = src.Cache.MaxEntries
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDocument)); v != "" {
		cfg.Document = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCacheLimit)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.MaxEntries = n
		}
	}
}
