package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatcast/internal/narrate"
	"github.com/Zuo-Peng/chatcast/internal/render"
	"github.com/Zuo-Peng/chatcast/internal/speech"
	"github.com/Zuo-Peng/chatcast/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func playCmd() *cobra.Command {
	var fromClipboard bool

	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Show a transcript with narration and auto-scroll",
		Long: `Opens the transcript as chat bubbles. Keys:
  s narrate   p pause/resume   v voices   space auto-scroll   +/- speed
  1/2 collapse left/right   0 expand all   t names   / find   n next hit
  R re-parse   q quit

When stdout is not a terminal the bubbles are printed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			load, title, err := transcriptSource(args, fromClipboard)
			if err != nil {
				return err
			}

			// Plain output for pipes
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				msgs, err := load()
				if err != nil {
					return err
				}
				out, _ := render.Transcript(msgs, render.Options{
					ShowNames: cfg.ShowNames,
					Current:   -1,
					Plain:     true,
				})
				fmt.Print(out)
				return nil
			}

			var synth narrate.Synthesizer
			if c := speech.Detect(cfg.Engine, cfg.Rate, logger); c != nil {
				synth = c
			}

			return tui.Run(tui.Options{
				Title:          title,
				Load:           load,
				Synth:          synth,
				PreferredVoice: cfg.Voice,
				ShowNames:      cfg.ShowNames,
				ScrollSpeed:    cfg.ScrollSpeed,
				FrameInterval:  cfg.FrameInterval(),
				Logger:         logger,
			})
		},
	}

	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read the transcript from the clipboard")

	return cmd
}
