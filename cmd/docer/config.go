package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Gobd/docer/swagger"
	"gopkg.in/yaml.v3"
)

// Config is the serve configuration file.
type Config struct {
	Listen          string        `yaml:"listen"`
	Prefix          string        `yaml:"prefix"`
	DocsPath        string        `yaml:"docs_path"`
	Info            *InfoConfig   `yaml:"info"`
	Schemes         []string      `yaml:"schemes"`
	UI              UIConfig      `yaml:"ui"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// InfoConfig replaces the document info when present.
type InfoConfig struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// UIConfig selects how Swagger UI is served. With Fetch set the release
// bundle is downloaded into Dir and served from disk; otherwise the page
// loads the UI from a CDN.
type UIConfig struct {
	Dir   string `yaml:"dir"`
	Fetch bool   `yaml:"fetch"`
	URL   string `yaml:"url"`
}

// DefaultConfig matches the example server: the demo routes under /example
// and the docs under /docs/.
func DefaultConfig() Config {
	return Config{
		Listen:          ":3000",
		Prefix:          "/example",
		DocsPath:        "/docs/",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		UI:              UIConfig{Dir: "swagger"},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// Metadata is what Finalize merges over the document.
func (c Config) Metadata() swagger.Metadata {
	meta := swagger.Metadata{Schemes: c.Schemes}
	if c.Info != nil {
		meta.Info = &swagger.Info{
			Title:       c.Info.Title,
			Version:     c.Info.Version,
			Description: c.Info.Description,
		}
	}
	return meta
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
