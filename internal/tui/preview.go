package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Zuo-Peng/chatcast/internal/render"
)

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	return vp
}

// rerender lays the transcript out again, keeping the scroll position.
func (m *model) rerender() {
	content, starts := render.Transcript(m.msgs, render.Options{
		Width:     m.transcriptWidth(),
		ShowNames: m.showNames,
		Collapse:  m.collapse,
		Query:     m.query,
		Current:   m.current,
	})
	y := m.preview.YOffset
	m.preview.SetContent(content)
	m.preview.SetYOffset(y)
	m.starts = starts
}

// jumpTo scrolls so that message i is at the top of the viewport.
func (m *model) jumpTo(i int) {
	if i < 0 || i >= len(m.starts) {
		return
	}
	m.preview.SetYOffset(m.starts[i])
}
