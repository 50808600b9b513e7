package narrate

// Utterance is a single request to the speech engine.
type Utterance struct {
	Text  string
	Voice string
}

// Listener receives the events of one utterance. Offsets are byte offsets
// into Utterance.Text and point at the next word or sentence to be spoken.
// Implementations may call a Listener from any goroutine, including from
// inside Speak.
type Listener interface {
	Progress(offset int)
	Done(err error)
}

// Synthesizer is the speech capability the controller drives. Only one
// utterance is active at a time; Speak replaces nothing on its own, the
// controller always cancels first.
type Synthesizer interface {
	// Voices lists the identifiers currently available. The list may change
	// over time as the engine loads voices.
	Voices() []string
	Speak(u Utterance, l Listener) error
	// Cancel stops the active utterance. No further events of that utterance
	// are delivered with a nil error after Cancel returns.
	Cancel()
	Pause()
	Resume()
}
