package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/tui"
	"github.com/atotto/clipboard"
)

// transcriptSource picks where the transcript comes from: a file argument
// or the system clipboard. The loader is called again on re-parse.
func transcriptSource(args []string, fromClipboard bool) (tui.Loader, string, error) {
	switch {
	case fromClipboard && len(args) > 0:
		return nil, "", errors.New("give a file or --clipboard, not both")
	case fromClipboard:
		return func() ([]parse.Message, error) {
			text, err := clipboard.ReadAll()
			if err != nil {
				return nil, fmt.Errorf("read clipboard: %w", err)
			}
			return parse.Parse(text), nil
		}, "clipboard", nil
	case len(args) == 1:
		path := args[0]
		return func() ([]parse.Message, error) {
			return parse.ParseFile(path)
		}, filepath.Base(path), nil
	default:
		return nil, "", errors.New("missing transcript file (or use --clipboard)")
	}
}
