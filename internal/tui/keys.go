package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up                key.Binding
	Down              key.Binding
	Enter             key.Binding
	Quit              key.Binding
	Cancel            key.Binding
	AutoScroll        key.Binding
	Faster            key.Binding
	Slower            key.Binding
	Narrate           key.Binding
	Pause             key.Binding
	Voices            key.Binding
	CollapsePrimary   key.Binding
	CollapseSecondary key.Binding
	ExpandAll         key.Binding
	ToggleNames       key.Binding
	Find              key.Binding
	NextHit           key.Binding
	Reload            key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	AutoScroll: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "auto-scroll"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Narrate: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "narrate"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	Voices: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "voices"),
	),
	CollapsePrimary: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "toggle left"),
	),
	CollapseSecondary: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "toggle right"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "expand all"),
	),
	ToggleNames: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "names"),
	),
	Find: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find"),
	),
	NextHit: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next hit"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "re-parse"),
	),
}
