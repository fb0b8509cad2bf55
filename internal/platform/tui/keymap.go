package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockpath/internal/core"
)

// KeyMap defines the key bindings of the scene view.
type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Level1 key.Binding
	Level2 key.Binding
	Level3 key.Binding
	Tap    key.Binding
	Reroll key.Binding
	Table  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Tap, k.Reroll, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Level1, k.Level2, k.Level3},
		{k.Tap, k.Reroll, k.Table},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev level"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next level"),
		),
		Level1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "level 1"),
		),
		Level2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "level 2"),
		),
		Level3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "level 3"),
		),
		Tap: key.NewBinding(
			key.WithKeys(" ", "t"),
			key.WithHelp("space/t", "tap shadow"),
		),
		Reroll: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-roll"),
		),
		Table: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "placements"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a view action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Prev):
		return core.ActionPrevLevel
	case key.Matches(msg, k.Next):
		return core.ActionNextLevel
	case key.Matches(msg, k.Level1):
		return core.ActionLevel1
	case key.Matches(msg, k.Level2):
		return core.ActionLevel2
	case key.Matches(msg, k.Level3):
		return core.ActionLevel3
	case key.Matches(msg, k.Tap):
		return core.ActionTap
	case key.Matches(msg, k.Reroll):
		return core.ActionReroll
	case key.Matches(msg, k.Table):
		return core.ActionTable
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
