package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/scan"
	"github.com/Zuo-Peng/chatcast/internal/speaker"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type listEntry struct {
	file     scan.FileInfo
	count    int
	speakers speaker.Classifier
}

func listCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List chat exports under a directory, newest first",
		Long:  `Scans dir (default: current directory) for .txt exports and prints one TSV line per file: path, modified, messages, primary sender, secondary sender.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			files, err := scan.ScanDir(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			if limit > 0 && len(files) > limit {
				files = files[:limit]
			}
			if len(files) == 0 {
				fmt.Fprintln(os.Stderr, "No transcripts found.")
				return nil
			}

			entries := make([]listEntry, len(files))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())
			for i, f := range files {
				g.Go(func() error {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					msgs, err := parse.ParseFile(f.Path)
					if err != nil {
						return err
					}
					entries[i] = listEntry{file: f, count: len(msgs), speakers: speaker.Classify(msgs)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Printf("%s\t%s\t%d\t%s\t%s\n",
					e.file.Path,
					time.Unix(e.file.Mtime, 0).Format("2006-01-02 15:04"),
					e.count,
					orDash(e.speakers.Primary),
					orDash(e.speakers.Secondary),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max files (0 = no limit)")

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
