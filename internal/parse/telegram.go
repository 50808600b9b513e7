package parse

import (
	"io"
	"os"
	"regexp"
	"strings"
)

// headerRe matches "<sender>, [<timestamp>]" with an optional trailing colon.
// Everything up to the first comma is the sender.
var headerRe = regexp.MustCompile(`^([^,]+), \[(.+?)\]:?$`)

var lineBreakRe = regexp.MustCompile(`\r?\n`)

// Parse splits a plain-text chat export into messages. It never fails:
// lines before the first header are dropped and so are messages whose
// body is blank.
func Parse(raw string) []Message {
	var (
		msgs    []Message
		current *Message
	)

	for i, line := range lineBreakRe.Split(raw, -1) {
		if m := headerRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				msgs = append(msgs, *current)
			}
			current = &Message{
				Sender:    m[1],
				Timestamp: m[2],
				Line:      i + 1,
			}
			continue
		}

		// no header seen yet
		if current == nil {
			continue
		}
		if current.Text != "" {
			current.Text += "\n"
		}
		current.Text += line
	}
	if current != nil {
		msgs = append(msgs, *current)
	}

	var kept []Message
	for _, m := range msgs {
		if strings.TrimSpace(m.Text) != "" {
			kept = append(kept, m)
		}
	}
	return kept
}

// ParseReader parses a transcript from r. The only errors returned are
// read errors from r.
func ParseReader(r io.Reader) ([]Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}

// ParseFile reads and parses the transcript at path.
func ParseFile(path string) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f)
}
