package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
)

// KeyMap holds the play view bindings. It implements help.KeyMap.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Undo      key.Binding
	Save      key.Binding
	Load      key.Binding
	Restart   key.Binding
	FullReset key.Binding
	Overlay   key.Binding
	Reload    key.Binding
	Levels    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.Restart, k.Overlay, k.Levels, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Undo, k.Save, k.Load},
		{k.Restart, k.FullReset, k.Reload},
		{k.Overlay, k.Levels, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Undo:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "undo")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Load:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load")),
		Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		FullReset: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "full reset")),
		Overlay:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "requirements")),
		Reload:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reload file")),
		Levels:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "levels")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MapKey translates a key message to a game action. Keys handled by the
// model itself (help, levels, quit) map to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.Save):
		return core.ActionSave
	case key.Matches(msg, k.Load):
		return core.ActionLoad
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.FullReset):
		return core.ActionFullReset
	case key.Matches(msg, k.Overlay):
		return core.ActionToggleRequirements
	case key.Matches(msg, k.Reload):
		return core.ActionConfirm
	}
	return core.ActionNone
}

// unlockChord recognises f9 immediately followed by f11. Any other key in
// between disarms it.
type unlockChord struct {
	armed bool
}

// Feed records a key and reports whether it completed the chord.
func (c *unlockChord) Feed(k string) bool {
	switch {
	case k == "f9":
		c.armed = true
		return false
	case k == "f11" && c.armed:
		c.armed = false
		return true
	}
	c.armed = false
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "up", "k":
		return MenuActionUp
	case "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "esc", "tab":
		return MenuActionBack
	}
	return MenuActionNone
}
