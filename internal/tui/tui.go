package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zuo-Peng/chatcast/internal/autoscroll"
	"github.com/Zuo-Peng/chatcast/internal/narrate"
	"github.com/Zuo-Peng/chatcast/internal/parse"
	"github.com/Zuo-Peng/chatcast/internal/search"
	"github.com/Zuo-Peng/chatcast/internal/speaker"
)

const (
	voiceRefreshInterval = 30 * time.Second
	speedStep            = 0.5
	minSpeed             = 0.5
)

// Loader produces the raw message sequence; it is called again on re-parse.
type Loader func() ([]parse.Message, error)

type Options struct {
	Title          string
	Load           Loader
	Synth          narrate.Synthesizer // nil when no speech engine exists
	PreferredVoice string
	ShowNames      bool
	ScrollSpeed    float64
	FrameInterval  time.Duration
	Logger         *slog.Logger
}

// message types

// narrationMsg signals a narration state change. Update reads the latest
// snapshot since these can arrive out of order.
type narrationMsg struct{}

type voicesRefreshedMsg struct{}

type voiceTickMsg struct{}

type reparsedMsg struct {
	msgs []parse.Message
	err  error
}

// settings is shared by every copy of the model.
type settings struct {
	speed float64
}

// model

type model struct {
	title  string
	load   Loader
	logger *slog.Logger

	msgs      []parse.Message
	cls       speaker.Classifier
	collapse  speaker.Collapse
	showNames bool

	narrator  *narrate.Controller
	snap      narrate.Snapshot
	script    narrate.Script
	scriptIdx []int // script span index -> index in msgs
	current   int   // message being narrated, -1 for none

	settings *settings
	frames   *frameScheduler
	scroller *lineScroller
	scroll   *autoscroll.Controller

	findInput textinput.Model
	finding   bool
	query     string
	hits      []search.Hit
	hitAt     int

	preview viewport.Model
	starts  []int

	voicePanel  bool
	voiceCursor int
	voiceOffset int

	notice   string
	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(msgs []parse.Message, narrator *narrate.Controller, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Find..."
	ti.Prompt = "/ "
	ti.PromptStyle = styleInputPrompt
	ti.TextStyle = styleInput
	ti.CharLimit = 256

	interval := opts.FrameInterval
	if interval <= 0 {
		interval = 33 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	st := &settings{speed: opts.ScrollSpeed}
	frames := newFrameScheduler(interval)
	scroller := &lineScroller{}

	m := model{
		title:     opts.Title,
		load:      opts.Load,
		logger:    logger,
		msgs:      msgs,
		cls:       speaker.Classify(msgs),
		showNames: opts.ShowNames,
		narrator:  narrator,
		snap:      narrator.Snapshot(),
		current:   -1,
		settings:  st,
		frames:    frames,
		scroller:  scroller,
		scroll:    autoscroll.New(frames, scroller, func() float64 { return st.speed }),
		findInput: ti,
		hitAt:     -1,
		preview:   newViewport(0, 0),
	}
	m.rerender()
	return m
}

// Run loads the transcript and blocks until the TUI exits.
func Run(opts Options) error {
	msgs, err := opts.Load()
	if err != nil {
		return err
	}

	var p *tea.Program
	narrator := narrate.New(opts.Synth, narrate.Options{
		PreferredVoice: opts.PreferredVoice,
		Logger:         opts.Logger,
		OnChange: func(narrate.Snapshot) {
			// Send blocks until Update reads it; callbacks may run inside Update.
			go p.Send(narrationMsg{})
		},
	})

	m := newModel(msgs, narrator, opts)
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	narrator.Stop()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// Init starts loading voices.
func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refreshVoices())
}

// Update handles messages and hands out any frame ticks requested while
// handling them.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, next.frames.drain())
}

func (m model) update(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		y := m.preview.YOffset
		m.preview = newViewport(m.transcriptWidth(), m.panelHeight())
		m.rerender()
		m.preview.SetYOffset(y)
		return m, nil

	case frameMsg:
		m.frames.fire(msg)
		if n := m.scroller.take(); n > 0 {
			m.preview.LineDown(n)
		}
		return m, nil

	case narrationMsg:
		m.applySnapshot(m.narrator.Snapshot())
		return m, nil

	case voicesRefreshedMsg:
		m.applySnapshot(m.narrator.Snapshot())
		return m, tea.Tick(voiceRefreshInterval, func(time.Time) tea.Msg { return voiceTickMsg{} })

	case voiceTickMsg:
		return m, m.refreshVoices()

	case reparsedMsg:
		if msg.err != nil {
			m.notice = "Re-parse failed: " + msg.err.Error()
			return m, nil
		}
		m.setMessages(msg.msgs)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.finding {
		return m.handleFindKey(msg)
	}
	if m.voicePanel {
		if mm, cmd, ok := m.handleVoiceKey(msg); ok {
			return mm, cmd
		}
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.scroll.Stop()
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.notice = ""
		return m, nil

	case key.Matches(msg, keys.AutoScroll):
		if m.scroll.Toggle() {
			m.logger.Debug("auto-scroll started", "speed", m.settings.speed)
		} else {
			m.logger.Debug("auto-scroll stopped")
		}
		return m, nil

	case key.Matches(msg, keys.Faster):
		m.settings.speed += speedStep
		return m, nil

	case key.Matches(msg, keys.Slower):
		if m.settings.speed-speedStep >= minSpeed {
			m.settings.speed -= speedStep
		}
		return m, nil

	case key.Matches(msg, keys.Narrate):
		m.toggleNarration()
		return m, nil

	case key.Matches(msg, keys.Pause):
		switch m.narrator.Phase() {
		case narrate.Speaking:
			m.narrator.Pause()
		case narrate.Paused:
			m.narrator.Resume()
		}
		m.applySnapshot(m.narrator.Snapshot())
		return m, nil

	case key.Matches(msg, keys.Voices):
		m.voicePanel = !m.voicePanel
		m.voiceCursor, m.voiceOffset = 0, 0
		m.resize()
		return m, nil

	case key.Matches(msg, keys.CollapsePrimary):
		m.collapse.Primary = !m.collapse.Primary
		m.visibilityChanged()
		return m, nil

	case key.Matches(msg, keys.CollapseSecondary):
		m.collapse.Secondary = !m.collapse.Secondary
		m.visibilityChanged()
		return m, nil

	case key.Matches(msg, keys.ExpandAll):
		m.collapse = speaker.Collapse{}
		m.visibilityChanged()
		return m, nil

	case key.Matches(msg, keys.ToggleNames):
		m.showNames = !m.showNames
		m.visibilityChanged()
		return m, nil

	case key.Matches(msg, keys.Find):
		m.finding = true
		m.findInput.SetValue(m.query)
		return m, m.findInput.Focus()

	case key.Matches(msg, keys.NextHit):
		m.nextHit()
		return m, nil

	case key.Matches(msg, keys.Reload):
		return m, m.reparse()
	}

	// Remaining keys scroll the transcript
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// handleFindKey routes keys to the find input, so space types a space
// instead of toggling auto-scroll.
func (m model) handleFindKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		m.finding = false
		m.findInput.Blur()
		m.query = strings.TrimSpace(m.findInput.Value())
		m.hits = search.Find(m.msgs, m.query)
		m.hitAt = -1
		if m.query != "" && len(m.hits) == 0 {
			m.notice = fmt.Sprintf("No match for %q", m.query)
		} else {
			m.notice = ""
		}
		m.rerender()
		m.nextHit()
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.finding = false
		m.findInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.findInput, cmd = m.findInput.Update(msg)
	return m, cmd
}

func (m model) handleVoiceKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	voices := m.snap.VoiceOrder
	switch {
	case key.Matches(msg, keys.Up):
		if m.voiceCursor > 0 {
			m.voiceCursor--
			m.adjustVoiceScroll(m.panelHeight())
		}
		return m, nil, true

	case key.Matches(msg, keys.Down):
		if m.voiceCursor < len(voices)-1 {
			m.voiceCursor++
			m.adjustVoiceScroll(m.panelHeight())
		}
		return m, nil, true

	case key.Matches(msg, keys.Enter):
		if m.voiceCursor < len(voices) {
			v := voices[m.voiceCursor]
			m.narrator.SelectVoice(v)
			m.logger.Info("voice selected", "voice", v)
		}
		m.voicePanel = false
		m.resize()
		m.applySnapshot(m.narrator.Snapshot())
		return m, nil, true

	case key.Matches(msg, keys.Cancel):
		m.voicePanel = false
		m.resize()
		return m, nil, true
	}
	return m, nil, false
}

// toggleNarration starts reading the visible messages or stops the
// current session.
func (m *model) toggleNarration() {
	if m.narrator.Phase() != narrate.Idle {
		m.narrator.Stop()
		m.applySnapshot(m.narrator.Snapshot())
		return
	}

	m.prepareScript()
	err := m.narrator.Start(m.script.Text)
	if errors.Is(err, narrate.ErrUnsupported) {
		m.notice = "Speech synthesis is not available on this system"
	} else if err != nil {
		m.notice = "Narration failed: " + err.Error()
	}
	m.applySnapshot(m.narrator.Snapshot())
}

// prepareScript builds the narration text from the visible messages.
func (m *model) prepareScript() {
	var visible []parse.Message
	m.scriptIdx = m.scriptIdx[:0]
	for i, msg := range m.msgs {
		if m.collapse.Collapsed(m.cls.Role(msg.Sender)) {
			continue
		}
		visible = append(visible, msg)
		m.scriptIdx = append(m.scriptIdx, i)
	}
	m.script = narrate.BuildText(visible, m.showNames)
}

// visibilityChanged re-renders and restarts an active narration so it
// reads the new visible set.
func (m *model) visibilityChanged() {
	if m.narrator.Phase() != narrate.Idle {
		m.prepareScript()
		m.narrator.Restart(m.script.Text)
		m.snap = m.narrator.Snapshot()
	}
	m.current = m.currentMessage()
	m.rerender()
}

func (m *model) applySnapshot(s narrate.Snapshot) {
	m.snap = s
	if m.voiceCursor >= len(s.VoiceOrder) {
		m.voiceCursor = 0
		m.voiceOffset = 0
	}
	cur := m.currentMessage()
	if cur == m.current {
		return
	}
	m.current = cur
	m.rerender()
	if cur >= 0 && !m.scroll.Running() {
		m.jumpTo(cur)
	}
}

func (m model) currentMessage() int {
	if m.snap.Phase == narrate.Idle || m.scriptIdx == nil {
		return -1
	}
	i := m.script.MessageAt(m.snap.CharIndex)
	if i < 0 || i >= len(m.scriptIdx) {
		return -1
	}
	return m.scriptIdx[i]
}

// setMessages replaces the transcript after a re-parse. A running
// narration keeps reading the text it started with.
func (m *model) setMessages(msgs []parse.Message) {
	m.msgs = msgs
	m.cls = speaker.Classify(msgs)
	m.collapse = speaker.Collapse{}
	m.scriptIdx = nil
	m.current = -1
	m.hits = search.Find(msgs, m.query)
	m.hitAt = -1
	m.notice = fmt.Sprintf("Parsed %d messages", len(msgs))
	m.rerender()
}

func (m *model) nextHit() {
	i := search.Next(m.hits, m.hitAt)
	if i < 0 {
		return
	}
	m.hitAt = i
	m.jumpTo(i)
	for k, h := range m.hits {
		if h.Index == i {
			m.notice = fmt.Sprintf("hit %d/%d: %s line %d: %s", k+1, len(m.hits), h.Sender, h.Line, renderSnippet(h.Snippet))
			break
		}
	}
}

// renderSnippet styles the >>>match<<< span of a search snippet.
func renderSnippet(s string) string {
	before, rest, ok := strings.Cut(s, ">>>")
	if !ok {
		return s
	}
	match, after, _ := strings.Cut(rest, "<<<")
	return before + styleHit.Render(match) + after
}

func (m model) reparse() tea.Cmd {
	load := m.load
	if load == nil {
		return nil
	}
	return func() tea.Msg {
		msgs, err := load()
		return reparsedMsg{msgs: msgs, err: err}
	}
}

func (m model) refreshVoices() tea.Cmd {
	narrator := m.narrator
	if !narrator.Available() {
		return nil
	}
	return func() tea.Msg {
		narrator.RefreshVoices()
		return voicesRefreshedMsg{}
	}
}

// resize recreates the viewport after the panel layout changed.
func (m *model) resize() {
	y := m.preview.YOffset
	m.preview = newViewport(m.transcriptWidth(), m.panelHeight())
	m.rerender()
	m.preview.SetYOffset(y)
}

// View renders the full TUI.
func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	// Input row
	var inputRow string
	if m.finding {
		inputRow = m.findInput.View()
	} else {
		inputRow = styleTitle.Render(m.title)
	}

	panelH := m.panelHeight()
	transcriptPanel := styleActiveBorder.
		Width(m.transcriptWidth()).
		Height(panelH).
		Render(m.preview.View())

	panels := transcriptPanel
	if m.voicePanel {
		voiceW := m.voiceWidth()
		voicePanel := stylePanelBorder.
			Width(voiceW).
			Height(panelH).
			Render(m.renderVoices(voiceW, panelH))
		panels = lipgloss.JoinHorizontal(lipgloss.Top, transcriptPanel, voicePanel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, inputRow, panels, m.statusBar())
}

// helper methods

func (m model) transcriptWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.voicePanel {
		// 70% for the transcript, minus border padding
		w := m.width*70/100 - 4
		if w < 20 {
			w = 20
		}
		return w
	}
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) voiceWidth() int {
	if m.width <= 0 {
		return 30
	}
	w := m.width*30/100 - 2
	if w < 12 {
		w = 12
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract input row (1) + status bar (1) + borders (2)
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	if m.notice != "" {
		return styleNotice.MaxWidth(m.width).Render(m.notice)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d messages", len(m.msgs)))

	switch m.snap.Phase {
	case narrate.Speaking:
		parts = append(parts, styleSpeaking.Render(fmt.Sprintf("speaking %d%%", int(m.snap.Progress()*100))))
	case narrate.Paused:
		parts = append(parts, fmt.Sprintf("paused %d%%", int(m.snap.Progress()*100)))
	}
	if m.snap.Voice != "" {
		parts = append(parts, "voice "+m.snap.Voice)
	}

	if m.scroll.Running() {
		parts = append(parts, fmt.Sprintf("scroll %.1f/s", m.settings.speed))
	}
	if m.query != "" {
		parts = append(parts, fmt.Sprintf("%d hits", len(m.hits)))
	}
	parts = append(parts, "s narrate", "p pause", "v voices", "space scroll", "1/2/0 collapse", "/ find", "q quit")
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
