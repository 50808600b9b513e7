package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine          string  `toml:"engine"` // speech binary, "" = first one found
	Voice           string  `toml:"voice"`  // preferred voice
	Rate            int     `toml:"rate"`   // words per minute, 0 = engine default
	ScrollSpeed     float64 `toml:"scroll_speed"`
	ShowNames       bool    `toml:"show_names"`
	FrameIntervalMs int     `toml:"frame_interval_ms"`
	LogPath         string  `toml:"log_path"`
}

// FrameInterval is the delay between auto-scroll frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Path returns the config file location. CHATCAST_CONFIG overrides it.
func Path() (string, error) {
	if p := os.Getenv("CHATCAST_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatcast", "config.toml"), nil
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ScrollSpeed:     2,
		ShowNames:       true,
		FrameIntervalMs: 33,
		LogPath:         filepath.Join(home, ".config", "chatcast", "chatcast.log"),
	}

	cfgPath, err := Path()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if cfg.ScrollSpeed <= 0 {
		return nil, fmt.Errorf("config %s: scroll_speed must be positive, got %v", cfgPath, cfg.ScrollSpeed)
	}
	if cfg.FrameIntervalMs <= 0 {
		cfg.FrameIntervalMs = 33
	}

	// expand ~ in paths
	cfg.LogPath = expandHome(cfg.LogPath, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
