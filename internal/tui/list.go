package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each voice occupies.
const linesPerItem = 1

// renderVoices renders the voice picker: most recently used first, the
// active voice marked.
func (m model) renderVoices(width, height int) string {
	voices := m.snap.VoiceOrder
	if len(voices) == 0 {
		msg := "No voices"
		if !m.narrator.Available() {
			msg = "No speech engine"
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	var lines []string
	for i, v := range voices {
		if i < m.voiceOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatVoiceLine(v, width, i == m.voiceCursor, v == m.snap.Voice))
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatVoiceLine formats one voice as "[>] name [*]".
func formatVoiceLine(voice string, width int, selected, active bool) string {
	nameMax := width - 2
	if active {
		nameMax -= 2
	}
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(voice) > nameMax {
		voice = runewidth.Truncate(voice, nameMax, "")
	}

	style := styleListNormal
	if active {
		style = styleListActive
		voice += " *"
	}
	if selected {
		return styleListSelected.Render("> ") + style.Render(voice)
	}
	return "  " + style.Render(voice)
}

// adjustVoiceScroll keeps the cursor visible within the voice panel.
func (m *model) adjustVoiceScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.voiceCursor < m.voiceOffset {
		m.voiceOffset = m.voiceCursor
	}
	if m.voiceCursor >= m.voiceOffset+visibleItems {
		m.voiceOffset = m.voiceCursor - visibleItems + 1
	}
}
