package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/render"
	"github.com/Zuo-Peng/chatcast/internal/speaker"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func printCmd() *cobra.Command {
	var query string
	var width int
	var noNames, plain bool
	var hidePrimary, hideSecondary bool

	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print a transcript as chat bubbles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}

			isTTY := term.IsTerminal(int(os.Stdout.Fd()))
			if width < 0 {
				width = 0
				if isTTY {
					if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
						width = w
					}
				}
			}

			out, _ := render.Transcript(msgs, render.Options{
				Width:     width,
				ShowNames: !noNames,
				Collapse:  speaker.Collapse{Primary: hidePrimary, Secondary: hideSecondary},
				Query:     query,
				Current:   -1,
				Plain:     plain || !isTTY,
			})
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Highlight these keywords")
	cmd.Flags().IntVar(&width, "width", -1, "Wrap width (-1 = terminal width, 0 = no wrap)")
	cmd.Flags().BoolVar(&noNames, "no-names", false, "Hide sender names and timestamps")
	cmd.Flags().BoolVar(&plain, "plain", false, "No colors")
	cmd.Flags().BoolVar(&hidePrimary, "collapse-primary", false, "Collapse the primary speaker's messages")
	cmd.Flags().BoolVar(&hideSecondary, "collapse-secondary", false, "Collapse everyone else's messages")

	return cmd
}
