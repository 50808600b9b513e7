package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/chatcast/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var debug bool

func main() {
	rootCmd := &cobra.Command{
		Use:     "chatcast",
		Short:   "chatcast - read chat exports as bubbles, aloud, or both",
		Version: version,
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug-level entries to the log file")

	rootCmd.AddCommand(playCmd())
	rootCmd.AddCommand(printCmd())
	rootCmd.AddCommand(dumpCmd())
	rootCmd.AddCommand(narrateCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and points the default logger at the log file.
// The terminal belongs to the TUI, so nothing is logged to stderr.
func setup() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err == nil {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log %s: %v\n", cfg.LogPath, err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, closer, nil
}
