// Package speaker derives the two-sided layout of a chat: the first sender
// in a transcript is the primary speaker, everybody else is secondary.
package speaker

import "github.com/Zuo-Peng/chatcast/internal/parse"

type Role int

const (
	Secondary Role = iota
	Primary
)

func (r Role) String() string {
	if r == Primary {
		return "primary"
	}
	return "secondary"
}

// Classifier is recomputed from the whole message sequence whenever it
// changes; it is never updated incrementally.
type Classifier struct {
	Primary   string // sender of the first message, "" for an empty sequence
	Secondary string // first sender different from Primary, "" if none
}

// Classify scans msgs once and records the first two distinct senders.
func Classify(msgs []parse.Message) Classifier {
	var c Classifier
	for _, m := range msgs {
		if c.Primary == "" {
			c.Primary = m.Sender
			continue
		}
		if m.Sender != c.Primary {
			c.Secondary = m.Sender
			break
		}
	}
	return c
}

// IsPrimary reports whether sender is the primary speaker. It is always
// false when the sequence was empty.
func (c Classifier) IsPrimary(sender string) bool {
	return c.Primary != "" && sender == c.Primary
}

func (c Classifier) Role(sender string) Role {
	if c.IsPrimary(sender) {
		return Primary
	}
	return Secondary
}

// Collapse holds the per-role visibility toggles. A collapsed message is
// still rendered, as a thin line, but is not narrated.
type Collapse struct {
	Primary   bool
	Secondary bool
}

func (c Collapse) Collapsed(r Role) bool {
	if r == Primary {
		return c.Primary
	}
	return c.Secondary
}

// Visible returns the messages not hidden by collapse, in order.
func Visible(msgs []parse.Message, cls Classifier, collapse Collapse) []parse.Message {
	var out []parse.Message
	for _, m := range msgs {
		if collapse.Collapsed(cls.Role(m.Sender)) {
			continue
		}
		out = append(out, m)
	}
	return out
}
