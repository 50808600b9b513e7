package speech

import (
	"regexp"
	"strings"
	"unicode"
)

// Chunk is a sentence-sized piece of an utterance. Start is the byte offset
// of its first non-space character in the utterance text.
type Chunk struct {
	Start int
	Text  string
}

var boundaryRe = regexp.MustCompile(`[.!?]+\s+|\n+`)

// Split cuts text at sentence ends and line breaks. Progress is reported at
// chunk starts, so these are also the positions narration can resume from.
func Split(text string) []Chunk {
	var out []Chunk
	start := 0
	emit := func(end int) {
		seg := text[start:end]
		trimmed := strings.TrimLeftFunc(seg, unicode.IsSpace)
		lead := len(seg) - len(trimmed)
		trimmed = strings.TrimRightFunc(trimmed, unicode.IsSpace)
		if trimmed != "" {
			out = append(out, Chunk{Start: start + lead, Text: trimmed})
		}
	}
	for _, loc := range boundaryRe.FindAllStringIndex(text, -1) {
		emit(loc[1])
		start = loc[1]
	}
	emit(len(text))
	return out
}
