package open

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/chatcast/internal/parse"
)

// OpenMessage opens the transcript at path in $EDITOR, positioned on the
// header line of the n-th message (1-based).
func OpenMessage(path string, n int) error {
	msgs, err := parse.ParseFile(path)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	lineNum, err := MessageLine(msgs, n)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}

	return EditorCommand(editor, path, lineNum).Run()
}

// MessageLine returns the header line of the n-th message (1-based).
func MessageLine(msgs []parse.Message, n int) (int, error) {
	if n < 1 || n > len(msgs) {
		return 0, fmt.Errorf("message %d out of range (transcript has %d)", n, len(msgs))
	}
	return msgs[n-1].Line, nil
}

// EditorCommand builds the command that opens filePath at lineNum.
func EditorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	var cmd *exec.Cmd

	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		cmd = exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		cmd = exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"), strings.Contains(editor, "nano"):
		cmd = exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		cmd = exec.Command(editor, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
