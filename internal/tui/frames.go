package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zuo-Peng/chatcast/internal/autoscroll"
)

// frameMsg is delivered when a requested frame is due.
type frameMsg struct {
	id autoscroll.FrameID
	at time.Time
}

// frameScheduler adapts bubbletea ticks to autoscroll.Scheduler. Requests
// made during Update are turned into commands by drain; callbacks run on
// the update loop when their frameMsg arrives.
type frameScheduler struct {
	interval time.Duration
	next     autoscroll.FrameID
	pending  map[autoscroll.FrameID]func(time.Time)
	cmds     []tea.Cmd
}

func newFrameScheduler(interval time.Duration) *frameScheduler {
	return &frameScheduler{
		interval: interval,
		pending:  make(map[autoscroll.FrameID]func(time.Time)),
	}
}

func (f *frameScheduler) RequestFrame(fn func(time.Time)) autoscroll.FrameID {
	f.next++
	id := f.next
	f.pending[id] = fn
	f.cmds = append(f.cmds, tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg{id: id, at: t}
	}))
	return id
}

func (f *frameScheduler) CancelFrame(id autoscroll.FrameID) {
	delete(f.pending, id)
}

// fire runs the callback for msg unless it was cancelled.
func (f *frameScheduler) fire(msg frameMsg) {
	fn, ok := f.pending[msg.id]
	if !ok {
		return
	}
	delete(f.pending, msg.id)
	fn(msg.at)
}

// drain returns the ticks requested since the last call.
func (f *frameScheduler) drain() tea.Cmd {
	if len(f.cmds) == 0 {
		return nil
	}
	cmds := f.cmds
	f.cmds = nil
	return tea.Batch(cmds...)
}

// lineScroller collects scroll distance for the viewport, which lives in
// the model value and is applied after the frame callbacks ran.
type lineScroller struct {
	lines int
}

func (s *lineScroller) ScrollBy(delta int) {
	s.lines += delta
}

func (s *lineScroller) take() int {
	n := s.lines
	s.lines = 0
	return n
}
