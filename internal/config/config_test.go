package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/lox/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.EqualValues(t, config.DefaultMaxSourceSize, cfg.MaxSourceSize)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, ".lox_history", filepath.Base(cfg.HistoryFile))
	assert.True(t, cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte("max_source_size: 2048\nprompt: 'lox> '\ncolor: false\n"))
	require.NoError(t, err)
	assert.EqualValues(t, 2048, cfg.MaxSourceSize)
	assert.Equal(t, "lox> ", cfg.Prompt)
	assert.False(t, cfg.Color)
	// Keys that are not set keep their defaults.
	assert.Equal(t, config.Default().HistoryFile, cfg.HistoryFile)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	_, err := config.Parse([]byte("max_size: 10\n"))
	assert.ErrorContains(t, err, "max_size")

	_, err = config.Parse([]byte("max_source_size: 0\n"))
	assert.EqualError(t, err, "max_source_size must be positive, got 0")

	_, err = config.Parse([]byte("max_source_size: [1\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_file: ''\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.HistoryFile)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("max_source_size: -1\n"), 0o644))
	_, err = config.Load(path)
	assert.ErrorContains(t, err, path)
}
