package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func dumpCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the parsed messages as YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := parse.ParseFile(args[0])
			if err != nil {
				return err
			}
			if msgs == nil {
				msgs = []parse.Message{}
			}

			switch format {
			case "yaml":
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				if err := enc.Encode(msgs); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(msgs); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml/json)")

	return cmd
}
