package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/chatcast/internal/narrate"
	"github.com/Zuo-Peng/chatcast/internal/narrate/mock"
	"github.com/Zuo-Peng/chatcast/internal/parse"
)

func chat(n int) []parse.Message {
	var msgs []parse.Message
	for i := 0; i < n; i++ {
		sender := "Alice"
		if i%2 == 1 {
			sender = "Bob"
		}
		msgs = append(msgs, parse.Message{
			Sender:    sender,
			Timestamp: "01.01.24 10:00",
			Text:      fmt.Sprintf("message number %d", i),
			Line:      i * 2,
		})
	}
	return msgs
}

func newTestModel(t *testing.T, msgs []parse.Message, synth narrate.Synthesizer) model {
	t.Helper()
	narrator := narrate.New(synth, narrate.Options{})
	m := newModel(msgs, narrator, Options{
		Title:       "test",
		Load:        func() ([]parse.Message, error) { return msgs, nil },
		ShowNames:   true,
		ScrollSpeed: 2,
	})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(model)
	require.True(t, ok)
	return mm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestSpaceTogglesAutoScroll(t *testing.T) {
	m := newTestModel(t, chat(4), &mock.Synthesizer{})

	m = send(t, m, space)
	assert.True(t, m.scroll.Running())
	assert.Len(t, m.frames.pending, 1)

	m = send(t, m, space)
	assert.False(t, m.scroll.Running())
	assert.Empty(t, m.frames.pending)
}

func TestSpaceInFindInputTypesSpace(t *testing.T) {
	m := newTestModel(t, chat(4), &mock.Synthesizer{})

	m = send(t, m, runes("/"))
	require.True(t, m.finding)
	m = send(t, m, runes("a"))
	m = send(t, m, space)
	m = send(t, m, runes("b"))

	assert.False(t, m.scroll.Running())
	assert.Equal(t, "a b", m.findInput.Value())
}

func TestFramesScrollViewport(t *testing.T) {
	m := newTestModel(t, chat(40), &mock.Synthesizer{})
	m = send(t, m, space)

	start := time.Now()
	m = send(t, m, frameMsg{id: m.frames.next, at: start})
	assert.Equal(t, 0, m.preview.YOffset)

	m = send(t, m, frameMsg{id: m.frames.next, at: start.Add(time.Second)})
	assert.Equal(t, 2, m.preview.YOffset)
}

func TestCancelledFrameIgnored(t *testing.T) {
	m := newTestModel(t, chat(40), &mock.Synthesizer{})
	m = send(t, m, space)
	id := m.frames.next
	m = send(t, m, space)

	m = send(t, m, frameMsg{id: id, at: time.Now()})
	assert.Equal(t, 0, m.preview.YOffset)
	assert.Empty(t, m.frames.pending)
}

func TestSpeedKeys(t *testing.T) {
	m := newTestModel(t, chat(2), &mock.Synthesizer{})

	m = send(t, m, runes("+"))
	assert.InDelta(t, 2.5, m.settings.speed, 1e-9)
	for i := 0; i < 10; i++ {
		m = send(t, m, runes("-"))
	}
	assert.InDelta(t, minSpeed, m.settings.speed, 1e-9)
}

func TestNarrateKeyStartsSpeaking(t *testing.T) {
	msgs := chat(3)
	synth := &mock.Synthesizer{}
	m := newTestModel(t, msgs, synth)

	m = send(t, m, runes("s"))

	require.Len(t, synth.Calls(), 1)
	assert.Equal(t, narrate.BuildText(msgs, true).Text, synth.Last().Utterance.Text)
	assert.Equal(t, narrate.Speaking, m.snap.Phase)
	assert.Equal(t, 0, m.current)

	m = send(t, m, runes("s"))
	assert.Equal(t, narrate.Idle, m.snap.Phase)
	assert.Equal(t, -1, m.current)
}

func TestNarrateUnsupportedShowsNotice(t *testing.T) {
	m := newTestModel(t, chat(2), nil)

	m = send(t, m, runes("s"))
	assert.Contains(t, m.notice, "not available")
	assert.Equal(t, narrate.Idle, m.snap.Phase)
}

func TestProgressFollowsCurrentMessage(t *testing.T) {
	msgs := chat(40)
	synth := &mock.Synthesizer{}
	m := newTestModel(t, msgs, synth)
	m = send(t, m, runes("s"))

	script := narrate.BuildText(msgs, true)
	synth.Last().Listener.Progress(script.Spans[30].Start)
	m = send(t, m, narrationMsg{})

	assert.Equal(t, 30, m.current)
	assert.Equal(t, m.starts[30], m.preview.YOffset)
}

func TestCollapseRestartsNarration(t *testing.T) {
	msgs := chat(4)
	synth := &mock.Synthesizer{}
	m := newTestModel(t, msgs, synth)
	m = send(t, m, runes("s"))

	m = send(t, m, runes("1"))

	require.Len(t, synth.Calls(), 2)
	assert.Equal(t, 1, synth.CancelCount)
	bob := []parse.Message{msgs[1], msgs[3]}
	assert.Equal(t, narrate.BuildText(bob, true).Text, synth.Last().Utterance.Text)
	assert.Equal(t, 1, m.current)
}

func TestCollapseBothEndsNarration(t *testing.T) {
	synth := &mock.Synthesizer{}
	m := newTestModel(t, chat(4), synth)
	m = send(t, m, runes("s"))

	m = send(t, m, runes("1"))
	m = send(t, m, runes("2"))

	assert.Equal(t, narrate.Idle, m.snap.Phase)
	assert.Len(t, synth.Calls(), 2)
}

func TestCollapseWhileIdleDoesNotSpeak(t *testing.T) {
	synth := &mock.Synthesizer{}
	m := newTestModel(t, chat(4), synth)

	m = send(t, m, runes("2"))
	assert.True(t, m.collapse.Secondary)
	m = send(t, m, runes("0"))
	assert.False(t, m.collapse.Secondary)
	assert.Empty(t, synth.Calls())
}

func TestPauseKey(t *testing.T) {
	synth := &mock.Synthesizer{}
	m := newTestModel(t, chat(2), synth)
	m = send(t, m, runes("s"))

	m = send(t, m, runes("p"))
	assert.Equal(t, narrate.Paused, m.snap.Phase)
	m = send(t, m, runes("p"))
	assert.Equal(t, narrate.Speaking, m.snap.Phase)
	assert.Equal(t, 1, synth.PauseCount)
	assert.Equal(t, 1, synth.ResumeCount)
}

func TestVoicePickerSelects(t *testing.T) {
	synth := &mock.Synthesizer{VoicesResult: []string{"en", "de", "fr"}}
	m := newTestModel(t, chat(2), synth)
	m = send(t, m, m.refreshVoices()())
	require.Equal(t, "en", m.snap.Voice)

	m = send(t, m, runes("v"))
	require.True(t, m.voicePanel)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.voicePanel)
	assert.Equal(t, "de", m.snap.Voice)
	assert.Equal(t, []string{"de", "en", "fr"}, m.snap.VoiceOrder)
}

func TestFindJumpsToHit(t *testing.T) {
	m := newTestModel(t, chat(40), &mock.Synthesizer{})

	m = send(t, m, runes("/"))
	for _, r := range "number 30" {
		if r == ' ' {
			m = send(t, m, space)
			continue
		}
		m = send(t, m, runes(string(r)))
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.finding)
	require.Len(t, m.hits, 1)
	assert.Equal(t, 30, m.hitAt)
	assert.Equal(t, m.starts[30], m.preview.YOffset)
	assert.Contains(t, m.notice, "hit 1/1: Alice line 60: ")
	assert.Contains(t, m.notice, "number 30")
}

func TestNextHitCyclesNotice(t *testing.T) {
	m := newTestModel(t, chat(6), &mock.Synthesizer{})

	m = send(t, m, runes("/"))
	m = send(t, m, runes("Bob"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.hits, 3)
	assert.Contains(t, m.notice, "hit 1/3: Bob line 2: ")

	m = send(t, m, runes("n"))
	assert.Equal(t, 3, m.hitAt)
	assert.Contains(t, m.notice, "hit 2/3: Bob line 6: ")
}

func TestRenderSnippet(t *testing.T) {
	assert.Equal(t, "plain", renderSnippet("plain"))
	out := renderSnippet("...the >>>word<<< here...")
	assert.Contains(t, out, "word")
	assert.NotContains(t, out, ">>>")
	assert.NotContains(t, out, "<<<")
}

func TestFormatVoiceLineFitsWidth(t *testing.T) {
	long := "a-very-long-voice-name-that-overflows"
	for _, width := range []int{4, 12, 30} {
		for _, selected := range []bool{false, true} {
			for _, active := range []bool{false, true} {
				line := formatVoiceLine(long, width, selected, active)
				assert.LessOrEqual(t, lipgloss.Width(line), width, "width=%d selected=%v active=%v", width, selected, active)
			}
		}
	}
	assert.Contains(t, formatVoiceLine("en", 12, false, true), "en *")
}

func TestFindNoMatchNotice(t *testing.T) {
	m := newTestModel(t, chat(3), &mock.Synthesizer{})

	m = send(t, m, runes("/"))
	m = send(t, m, runes("zzz"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.hits)
	assert.Contains(t, m.notice, "No match")
}

func TestReparseResetsCollapse(t *testing.T) {
	m := newTestModel(t, chat(4), &mock.Synthesizer{})
	m = send(t, m, runes("1"))
	require.True(t, m.collapse.Primary)

	_, cmd := m.update(runes("R"))
	require.NotNil(t, cmd)
	m = send(t, m, cmd())

	assert.False(t, m.collapse.Primary)
	assert.Len(t, m.msgs, 4)
	assert.Contains(t, m.notice, "Parsed 4 messages")
}

func TestViewShowsStatus(t *testing.T) {
	synth := &mock.Synthesizer{}
	m := newTestModel(t, chat(3), synth)
	m = send(t, m, runes("s"))

	out := m.View()
	assert.Contains(t, out, "3 messages")
	assert.Contains(t, out, "speaking 0%")
}
