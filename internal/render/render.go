package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/search"
	"github.com/Zuo-Peng/chatcast/internal/speaker"
)

const (
	colorReset     = "\033[0m"
	colorPrimary   = "\033[1;35m" // bold purple
	colorSecondary = "\033[1;34m" // bold blue
	colorDim       = "\033[2m"
	colorHit       = "\033[43m"   // yellow background
	colorBoldRed   = "\033[1;31m" // bold red for keyword highlights
)

const collapsedLine = "────────"

type Options struct {
	Width     int // wrap width (0 = no wrap, no right alignment)
	ShowNames bool
	Collapse  speaker.Collapse
	Query     string // search query for keyword highlighting
	Current   int    // index of the message being narrated, -1 for none
	Plain     bool   // no ANSI escapes
}

// highlightKeywords wraps case-folded matches of query terms in bold red
// ANSI codes.
func highlightKeywords(text, query string) string {
	ms := search.Matches(text, query)
	if len(ms) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range ms {
		b.WriteString(text[last:m.Start])
		b.WriteString(colorBoldRed)
		b.WriteString(text[m.Start:m.End])
		b.WriteString(colorReset)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// visibleWidth measures s in terminal columns, ignoring ANSI escapes.
func visibleWidth(s string) int {
	w := 0
	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '\033' && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			i = j + 1
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		w += runewidth.RuneWidth(r)
		i += size
	}
	return w
}

// Transcript renders messages as chat bubbles: the primary speaker on the
// left, everyone else on the right. It returns the content and the 0-based
// line on which each message starts.
func Transcript(msgs []parse.Message, opts Options) (string, []int) {
	if len(msgs) == 0 {
		return "(no messages)\n", nil
	}

	cls := speaker.Classify(msgs)
	paint := func(code, s string) string {
		if opts.Plain {
			return s
		}
		return code + s + colorReset
	}

	bubbleW := 0
	if opts.Width > 0 {
		bubbleW = opts.Width * 3 / 4
		if bubbleW < 10 {
			bubbleW = opts.Width
		}
	}

	var b strings.Builder
	starts := make([]int, len(msgs))
	lineCount := 0

	for i, m := range msgs {
		starts[i] = lineCount
		role := cls.Role(m.Sender)

		var bubble []string
		if opts.Collapse.Collapsed(role) {
			bubble = []string{paint(colorDim, collapsedLine)}
		} else {
			bubble = bubbleLines(m, role, i == opts.Current, bubbleW, opts, paint)
		}

		pad := ""
		if role == speaker.Secondary && opts.Width > 0 {
			widest := 0
			for _, l := range bubble {
				if w := visibleWidth(l); w > widest {
					widest = w
				}
			}
			if n := opts.Width - widest; n > 0 {
				pad = strings.Repeat(" ", n)
			}
		}

		for _, l := range bubble {
			b.WriteString(pad)
			b.WriteString(l)
			b.WriteString("\n")
			lineCount++
		}
		b.WriteString("\n") // blank line after message
		lineCount++
	}

	return b.String(), starts
}

func bubbleLines(m parse.Message, role speaker.Role, current bool, width int, opts Options, paint func(code, s string) string) []string {
	var lines []string

	roleColor := colorPrimary
	if role == speaker.Secondary {
		roleColor = colorSecondary
	}

	marker := ""
	if current {
		marker = "> "
	}

	if opts.ShowNames {
		header := fmt.Sprintf("%s%s", marker, m.Sender)
		if current {
			header = paint(colorHit, header)
		} else {
			header = paint(roleColor, header)
		}
		lines = append(lines, header+" "+paint(colorDim, "["+m.Timestamp+"]"))
	} else if current {
		lines = append(lines, paint(colorHit, strings.TrimSpace(marker)))
	}

	text := m.Text
	if !opts.Plain {
		text = highlightKeywords(text, opts.Query)
	}
	textW := width - 2
	if width <= 0 {
		textW = 0
	}
	for _, tl := range strings.Split(text, "\n") {
		for _, wl := range wrapLine(tl, textW) {
			lines = append(lines, "  "+wl)
		}
	}
	return lines
}
