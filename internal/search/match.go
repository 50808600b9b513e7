package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Match is a byte range [Start, End) of the original text.
type Match struct {
	Start, End int
}

// folded is a case-folded copy of a text. Every byte of s maps back to the
// original rune it came from, so offsets found in s never index the
// original directly.
type folded struct {
	s          string
	start, end []int
}

func foldText(text string) folded {
	fold := cases.Fold()
	var (
		b strings.Builder
		f folded
	)
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		fr := fold.String(text[i : i+size])
		b.WriteString(fr)
		for range len(fr) {
			f.start = append(f.start, i)
			f.end = append(f.end, i+size)
		}
		i += size
	}
	f.s = b.String()
	return f
}

// Matches returns the ranges of text matching any term of query under
// Unicode case folding, sorted and merged. A match that covers part of a
// rune's folded form (the "ss" of "ß") extends to the whole rune.
func Matches(text, query string) []Match {
	terms := strings.Fields(query)
	if len(terms) == 0 || text == "" {
		return nil
	}
	fold := cases.Fold()
	f := foldText(text)

	var ms []Match
	for _, term := range terms {
		t := fold.String(term)
		if t == "" {
			continue
		}
		for from := 0; from < len(f.s); {
			idx := strings.Index(f.s[from:], t)
			if idx < 0 {
				break
			}
			fs := from + idx
			fe := fs + len(t)
			ms = append(ms, Match{Start: f.start[fs], End: f.end[fe-1]})
			from = fe
		}
	}
	if len(ms) == 0 {
		return nil
	}

	sort.Slice(ms, func(i, j int) bool { return ms[i].Start < ms[j].Start })
	merged := ms[:1]
	for _, m := range ms[1:] {
		last := &merged[len(merged)-1]
		if m.Start <= last.End {
			if m.End > last.End {
				last.End = m.End
			}
			continue
		}
		merged = append(merged, m)
	}
	return merged
}
