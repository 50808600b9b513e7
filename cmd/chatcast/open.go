package main

import (
	"github.com/Zuo-Peng/chatcast/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var message int

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open the transcript in $EDITOR at a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return open.OpenMessage(args[0], message)
		},
	}

	cmd.Flags().IntVar(&message, "message", 1, "Message number to jump to (1-based)")

	return cmd
}
