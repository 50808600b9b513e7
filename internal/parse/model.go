package parse

// Message is one chat bubble recovered from an exported transcript.
type Message struct {
	Sender    string `json:"sender" yaml:"sender"`
	Timestamp string `json:"timestamp" yaml:"timestamp"` // verbatim, format varies by export
	Text      string `json:"text" yaml:"text"`
	Line      int    `json:"line" yaml:"line"` // 1-based line of the header in the source text
}
