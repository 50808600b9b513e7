package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"github.com/Zuo-Peng/chatcast/internal/parse"
)

const snippetContext = 30

type Hit struct {
	Index   int // position in the message slice
	Sender  string
	Line    int
	Snippet string
}

// Find returns the messages whose sender or text contains every term of
// query, compared with Unicode case folding.
func Find(msgs []parse.Message, query string) []Hit {
	fold := cases.Fold()
	var terms []string
	for _, t := range strings.Fields(query) {
		terms = append(terms, fold.String(t))
	}
	if len(terms) == 0 {
		return nil
	}

	var hits []Hit
	for i, m := range msgs {
		hay := fold.String(m.Sender + "\n" + m.Text)
		matched := true
		for _, t := range terms {
			if !strings.Contains(hay, t) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		hits = append(hits, Hit{
			Index:   i,
			Sender:  m.Sender,
			Line:    m.Line,
			Snippet: makeSnippet(m.Text, strings.Fields(query)[0], snippetContext),
		})
	}
	return hits
}

// Next returns the first hit after message index after, wrapping around to
// the first hit. It returns -1 when there are no hits.
func Next(hits []Hit, after int) int {
	if len(hits) == 0 {
		return -1
	}
	for _, h := range hits {
		if h.Index > after {
			return h.Index
		}
	}
	return hits[0].Index
}

// makeSnippet extracts a snippet around the first occurrence of query in
// text, with the match wrapped in >>> <<< markers.
func makeSnippet(text, query string, contextChars int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	ms := Matches(text, query)
	if len(ms) == 0 {
		// no match, return head
		if utf8.RuneCountInString(text) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	m := ms[0]
	runes := []rune(text)
	runePos := utf8.RuneCountInString(text[:m.Start])
	matchLen := utf8.RuneCountInString(text[m.Start:m.End])
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + matchLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+matchLen]) + "<<<" +
		string(runes[runePos+matchLen:end])
	return prefix + snippet + suffix
}
