package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("13")  // bright magenta, left bubbles
	colorSecondary = lipgloss.Color("12")  // bright blue, right bubbles
	colorDim       = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray
	colorWarn      = lipgloss.Color("9")   // bright red

	// Input area
	styleInput = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	// Voice list
	styleListSelected = lipgloss.NewStyle().
				Foreground(colorHighlight).
				Bold(true)

	styleListNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleListActive = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Panels
	stylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSecondary)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorWarn).
			Padding(0, 1)

	styleHit = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	// Panel titles
	styleTitle = lipgloss.NewStyle().
			Foreground(colorDim).
			Bold(true)

	styleSpeaking = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)
