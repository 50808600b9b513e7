package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CHATCAST_CONFIG", path)
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CHATCAST_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.ScrollSpeed)
	assert.True(t, cfg.ShowNames)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval())
	assert.Equal(t, "chatcast.log", filepath.Base(cfg.LogPath))
}

func TestLoad_File(t *testing.T) {
	writeConfig(t, `
engine = "espeak-ng"
voice = "en-gb"
rate = 180
scroll_speed = 4.5
show_names = false
log_path = "~/logs/cc.log"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "espeak-ng", cfg.Engine)
	assert.Equal(t, "en-gb", cfg.Voice)
	assert.Equal(t, 180, cfg.Rate)
	assert.Equal(t, 4.5, cfg.ScrollSpeed)
	assert.False(t, cfg.ShowNames)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "cc.log"), cfg.LogPath)
}

func TestLoad_Invalid(t *testing.T) {
	writeConfig(t, `scroll_speed = "fast"`)
	_, err := Load()
	assert.Error(t, err)

	writeConfig(t, `scroll_speed = -1.0`)
	_, err = Load()
	assert.ErrorContains(t, err, "scroll_speed")
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h/a/b", expandHome("~/a/b", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
	assert.Equal(t, "~", expandHome("~", "/h"))
}
