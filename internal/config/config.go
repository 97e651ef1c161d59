// Package config loads the interpreter settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appName = "lox"

	// DefaultMaxSourceSize caps the size of a script file.
	DefaultMaxSourceSize = 1 << 20
	DefaultPrompt        = "> "
)

type Config struct {
	// MaxSourceSize is the largest script file, in bytes, that will be read.
	MaxSourceSize int64 `yaml:"max_source_size"`
	Prompt        string `yaml:"prompt"`
	// HistoryFile is where the REPL keeps its line history. Empty disables history.
	HistoryFile string `yaml:"history_file"`
	Color       bool   `yaml:"color"`
}

func Default() Config {
	return Config{
		MaxSourceSize: DefaultMaxSourceSize,
		Prompt:        DefaultPrompt,
		HistoryFile:   filepath.Join(xdg.DataHome, appName, ".lox_history"),
		Color:         true,
	}
}

// Locate returns the path of lox/config.yaml in the XDG config directories, or "" if
// there is none.
func Locate() string {
	path, err := xdg.SearchConfigFile(filepath.Join(appName, "config.yaml"))
	if err != nil {
		return ""
	}
	return path
}

// Load reads the YAML file at path on top of Default(). Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxSourceSize <= 0 {
		return fmt.Errorf("max_source_size must be positive, got %d", c.MaxSourceSize)
	}
	return nil
}
