package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Zuo-Peng/chatcast/internal/narrate"
	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/speaker"
	"github.com/Zuo-Peng/chatcast/internal/speech"
	"github.com/spf13/cobra"
)

func narrateCmd() *cobra.Command {
	var voice, engine string
	var rate int
	var noNames, skipPrimary, skipSecondary bool

	cmd := &cobra.Command{
		Use:   "narrate <file>",
		Short: "Read a transcript aloud without the TUI",
		Long:  `Reads every message aloud with the local speech engine and prints the sender of each message as it starts. Ctrl+C stops.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup()
			if err != nil {
				return err
			}
			defer closeLog()

			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}
			visible := speaker.Visible(msgs, speaker.Classify(msgs), speaker.Collapse{
				Primary:   skipPrimary,
				Secondary: skipSecondary,
			})
			script := narrate.BuildText(visible, !noNames)
			if strings.TrimSpace(script.Text) == "" {
				fmt.Fprintln(os.Stderr, "Nothing to narrate.")
				return nil
			}

			if engine == "" {
				engine = cfg.Engine
			}
			if rate == 0 {
				rate = cfg.Rate
			}
			if voice == "" {
				voice = cfg.Voice
			}

			var synth narrate.Synthesizer
			if c := speech.Detect(engine, rate, logger); c != nil {
				synth = c
			}

			done := make(chan struct{})
			var (
				mu      sync.Mutex
				active  bool
				last    = -1
				closeFn sync.Once
			)
			ctrl := narrate.New(synth, narrate.Options{
				PreferredVoice: voice,
				Logger:         logger,
				OnChange: func(s narrate.Snapshot) {
					mu.Lock()
					defer mu.Unlock()
					if s.Phase == narrate.Idle {
						if active {
							closeFn.Do(func() { close(done) })
						}
						return
					}
					active = true
					if i := script.MessageAt(s.CharIndex); i != last && i >= 0 {
						last = i
						fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, len(visible), visible[i].Sender)
					}
				},
			})
			ctrl.RefreshVoices()

			if err := ctrl.Start(script.Text); err != nil {
				return fmt.Errorf("narrate: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case <-done:
			case <-ctx.Done():
				ctrl.Stop()
				fmt.Fprintln(os.Stderr, "Stopped.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&voice, "voice", "", "Voice to use (default from config)")
	cmd.Flags().StringVar(&engine, "engine", "", "Speech engine binary (default from config, else first found)")
	cmd.Flags().IntVar(&rate, "rate", 0, "Words per minute (0 = config or engine default)")
	cmd.Flags().BoolVar(&noNames, "no-names", false, "Do not announce senders")
	cmd.Flags().BoolVar(&skipPrimary, "skip-primary", false, "Skip the primary speaker's messages")
	cmd.Flags().BoolVar(&skipSecondary, "skip-secondary", false, "Skip everyone else's messages")

	return cmd
}
