package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/chatcast/internal/config"
	"github.com/Zuo-Peng/chatcast/internal/speech"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

const maxListedVoices = 10

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, speech engine and voices",
		RunE: func(cmd *cobra.Command, args []string) error {
			// check config
			fmt.Println("=== Config ===")
			cfgPath, err := config.Path()
			if err != nil {
				return fmt.Errorf("config path: %w", err)
			}
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				fmt.Printf("  Path: %s (NOT FOUND, using defaults)\n", cfgPath)
			} else {
				fmt.Printf("  Path: %s (OK)\n", cfgPath)
			}

			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			fmt.Printf("  Scroll speed: %.1f lines/s\n", cfg.ScrollSpeed)
			fmt.Printf("  Frame interval: %s\n", cfg.FrameInterval())
			fmt.Printf("  Log: %s\n", cfg.LogPath)

			// check speech engine
			fmt.Println("\n=== Speech ===")
			c := speech.Detect(cfg.Engine, cfg.Rate, logger)
			if c == nil {
				want := cfg.Engine
				if want == "" {
					want = strings.Join(speech.EngineNames(), ", ")
				}
				fmt.Printf("  Engine: NOT FOUND (looked for %s)\n", want)
				fmt.Println("  Narration is disabled; auto-scroll still works.")
			} else {
				fmt.Printf("  Engine: %s (%s)\n", c.Name(), c.Path())
				voices := c.Voices()
				fmt.Printf("  Voices: %d\n", len(voices))
				for i, v := range voices {
					if i == maxListedVoices {
						fmt.Printf("    ... %d more\n", len(voices)-maxListedVoices)
						break
					}
					marker := " "
					if v == cfg.Voice {
						marker = "*"
					}
					fmt.Printf("   %s %s\n", marker, v)
				}
				if cfg.Voice != "" && !containsVoice(voices, cfg.Voice) {
					fmt.Printf("  Preferred voice %q is not available\n", cfg.Voice)
				}
			}

			// check clipboard
			fmt.Println("\n=== Clipboard ===")
			if clipboard.Unsupported {
				fmt.Println("  Status: UNSUPPORTED (play --clipboard will fail)")
			} else {
				fmt.Println("  Status: OK")
			}

			return nil
		},
	}
}

func containsVoice(voices []string, v string) bool {
	for _, x := range voices {
		if x == v {
			return true
		}
	}
	return false
}
