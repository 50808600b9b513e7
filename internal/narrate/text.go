package narrate

import (
	"sort"
	"strings"

	"github.com/Zuo-Peng/chatcast/internal/parse"
)

// separator ends every narrated message so the engine pauses between them.
const separator = ". "

// Span locates one message inside a Script's text.
type Span struct {
	Start, End int
	Index      int // position of the message in the slice given to BuildText
}

// Script is the text read aloud for one narration session.
type Script struct {
	Text  string
	Spans []Span
}

// BuildText concatenates the messages into a single narration text. With
// showNames each message reads as "<sender> says: <body>".
func BuildText(msgs []parse.Message, showNames bool) Script {
	var (
		b     strings.Builder
		spans []Span
	)
	for i, m := range msgs {
		if i > 0 {
			b.WriteString(separator)
		}
		start := b.Len()
		if showNames {
			b.WriteString(m.Sender)
			b.WriteString(" says: ")
		}
		b.WriteString(m.Text)
		spans = append(spans, Span{Start: start, End: b.Len(), Index: i})
	}
	return Script{Text: b.String(), Spans: spans}
}

// MessageAt returns the index of the message being read at byte offset pos,
// or -1 when the script is empty.
func (s Script) MessageAt(pos int) int {
	if len(s.Spans) == 0 {
		return -1
	}
	i := sort.Search(len(s.Spans), func(i int) bool { return s.Spans[i].End > pos })
	if i == len(s.Spans) {
		i--
	}
	return s.Spans[i].Index
}
