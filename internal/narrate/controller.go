// Package narrate reads the visible part of a transcript aloud. A Controller
// owns a single narration session and keeps track of how far the speech
// engine got, so that switching voices mid-way continues from the same spot
// instead of starting over.
package narrate

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrUnsupported is returned by the first Start when no speech engine is
// available.
var ErrUnsupported = errors.New("narrate: speech synthesis is not available")

type Phase int

const (
	Idle Phase = iota
	Speaking
	Paused
)

func (p Phase) String() string {
	switch p {
	case Speaking:
		return "speaking"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

type Options struct {
	// PreferredVoice is selected on the first voice update that offers it.
	PreferredVoice string
	// OnChange is called after every state change and progress update,
	// outside the controller's locks.
	OnChange func(Snapshot)
	Logger   *slog.Logger
}

// Snapshot is a copy of the controller state for rendering.
type Snapshot struct {
	Phase      Phase
	CharIndex  int
	TextLen    int
	Voice      string
	VoiceOrder []string
}

// Progress returns the fraction of the session text already read.
func (s Snapshot) Progress() float64 {
	if s.TextLen == 0 {
		return 0
	}
	return float64(s.CharIndex) / float64(s.TextLen)
}

type Controller struct {
	synth  Synthesizer
	opts   Options
	logger *slog.Logger

	// ops serialises user actions, including the calls into synth.
	// mu guards the session state and is never held while calling synth.
	ops sync.Mutex
	mu  sync.Mutex

	phase     Phase
	fullText  string
	charIndex int
	voice     string
	order     []string
	gen       uint64 // generation of the active utterance
	reported  bool   // ErrUnsupported already returned
}

// New creates a controller. synth may be nil when the environment has no
// speech engine; Start then reports ErrUnsupported once.
func New(synth Synthesizer, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		synth:  synth,
		opts:   opts,
		logger: logger,
	}
}

// Available reports whether a speech engine is present.
func (c *Controller) Available() bool {
	return c.synth != nil
}

// Start begins a new session over text. It is a no-op when a session is
// already active or text is blank.
func (c *Controller) Start(text string) error {
	c.ops.Lock()
	defer c.ops.Unlock()

	if c.synth == nil {
		c.mu.Lock()
		first := !c.reported
		c.reported = true
		c.mu.Unlock()
		if first {
			return ErrUnsupported
		}
		return nil
	}

	c.mu.Lock()
	if c.phase != Idle || strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return nil
	}
	c.fullText = text
	c.charIndex = 0
	u, l := c.beginLocked(0)
	c.mu.Unlock()

	c.logger.Info("narration started", "chars", len(text), "voice", u.Voice)
	c.speak(u, l)
	return nil
}

// Toggle starts a session over text when idle and stops the active one
// otherwise.
func (c *Controller) Toggle(text string) error {
	if c.Phase() == Idle {
		return c.Start(text)
	}
	c.Stop()
	return nil
}

// Stop cancels the active utterance and returns to Idle with the position
// reset.
func (c *Controller) Stop() {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	if c.phase == Idle {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.synth.Cancel()
	c.logger.Info("narration stopped")
	c.notify(snap)
}

func (c *Controller) Pause() {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	if c.phase != Speaking {
		c.mu.Unlock()
		return
	}
	c.phase = Paused
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.synth.Pause()
	c.logger.Debug("narration paused", "char_index", snap.CharIndex)
	c.notify(snap)
}

func (c *Controller) Resume() {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	if c.phase != Paused {
		c.mu.Unlock()
		return
	}
	c.phase = Speaking
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.synth.Resume()
	c.logger.Debug("narration resumed", "char_index", snap.CharIndex)
	c.notify(snap)
}

// Restart replaces the text of an active session, for example after the
// visible messages changed. It does nothing while idle.
func (c *Controller) Restart(text string) {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	if c.phase == Idle {
		c.mu.Unlock()
		return
	}
	c.gen++
	if strings.TrimSpace(text) == "" {
		c.resetLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.synth.Cancel()
		c.notify(snap)
		return
	}
	c.fullText = text
	c.charIndex = 0
	u, l := c.beginLocked(0)
	c.mu.Unlock()

	c.synth.Cancel()
	c.logger.Info("narration restarted", "chars", len(text))
	c.speak(u, l)
}

// SelectVoice makes id the current voice and moves it to the front of the
// voice order. During a session the remaining text is spoken again with the
// new voice, starting at the last reported position.
func (c *Controller) SelectVoice(id string) {
	if id == "" {
		return
	}
	c.ops.Lock()
	defer c.ops.Unlock()

	c.mu.Lock()
	changed := id != c.voice
	c.voice = id
	c.order = promote(c.order, id)
	if c.phase == Idle || !changed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
		return
	}

	// Old utterance callbacks carry the previous generation from here on.
	c.gen++
	base := c.charIndex
	resume := c.fullText[base:]
	if strings.TrimSpace(resume) == "" {
		c.resetLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.synth.Cancel()
		c.notify(snap)
		return
	}
	u, l := c.beginLocked(base)
	c.mu.Unlock()

	c.synth.Cancel()
	c.logger.Info("narration voice switched", "voice", id, "resume_at", base)
	c.speak(u, l)
}

// UpdateVoices reconciles the voice order with the voices the engine
// currently offers and selects one when none is selected.
func (c *Controller) UpdateVoices(available []string) {
	c.mu.Lock()
	c.order = reconcile(c.order, available)
	if c.voice != "" && !contains(available, c.voice) {
		c.logger.Warn("selected voice no longer available", "voice", c.voice)
		c.voice = ""
	}
	if c.voice == "" && len(available) > 0 {
		v := available[0]
		if contains(available, c.opts.PreferredVoice) {
			v = c.opts.PreferredVoice
		}
		c.voice = v
		c.order = promote(c.order, v)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// RefreshVoices asks the engine for its voices and applies UpdateVoices.
func (c *Controller) RefreshVoices() {
	if c.synth == nil {
		return
	}
	c.UpdateVoices(c.synth.Voices())
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// beginLocked opens a new utterance over fullText[base:] and returns what
// must be handed to the engine once mu is released.
func (c *Controller) beginLocked(base int) (Utterance, *listener) {
	c.gen++
	c.phase = Speaking
	u := Utterance{Text: c.fullText[base:], Voice: c.voice}
	return u, &listener{c: c, gen: c.gen, base: base}
}

func (c *Controller) speak(u Utterance, l *listener) {
	c.notify(c.Snapshot())
	if err := c.synth.Speak(u, l); err != nil {
		c.logger.Warn("speech engine refused utterance", "err", err)
		l.Done(err)
	}
}

func (c *Controller) resetLocked() {
	c.phase = Idle
	c.fullText = ""
	c.charIndex = 0
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:      c.phase,
		CharIndex:  c.charIndex,
		TextLen:    len(c.fullText),
		Voice:      c.voice,
		VoiceOrder: append([]string(nil), c.order...),
	}
}

func (c *Controller) notify(s Snapshot) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(s)
	}
}

// listener rebases engine offsets into fullText coordinates and drops
// events from utterances that are no longer active.
type listener struct {
	c    *Controller
	gen  uint64
	base int
}

func (l *listener) Progress(offset int) {
	c := l.c
	c.mu.Lock()
	if l.gen != c.gen || c.phase != Speaking {
		c.mu.Unlock()
		return
	}
	pos := runeFloor(c.fullText, l.base+offset)
	if pos <= c.charIndex {
		c.mu.Unlock()
		return
	}
	c.charIndex = pos
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (l *listener) Done(err error) {
	c := l.c
	c.mu.Lock()
	if l.gen != c.gen || c.phase == Idle {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("narration ended with engine error", "err", err)
	} else {
		c.logger.Info("narration finished")
	}
	c.notify(snap)
}

// runeFloor clamps pos into s and moves it back to a rune boundary.
func runeFloor(s string, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(s) {
		return len(s)
	}
	for pos > 0 && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
