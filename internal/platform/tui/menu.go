package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
)

// MenuItem is one selectable entry.
type MenuItem struct {
	ID     string
	Title  string
	Detail string
}

// MenuModel is a vertical list picker. Standalone it quits the program on
// select or back; embedded in the play view it only records the outcome.
type MenuModel struct {
	title    string
	items    []MenuItem
	cursor   int
	width    int
	height   int
	embedded bool

	quitting bool
	closed   bool
	selected *MenuItem
}

// NewMenuModel creates a menu with the cursor on the first item.
func NewMenuModel(title string, items []MenuItem, width, height int) MenuModel {
	return MenuModel{title: title, items: items, width: width, height: height}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.closed = true
			if !m.embedded {
				return m, tea.Quit
			}
		}

	case MenuActionBack:
		m.closed = true
		if !m.embedded {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	first, last := m.window()
	if first > 0 {
		b.WriteString(dimStyle.Render("  ↑ more"))
		b.WriteString("\n")
	}
	for i := first; i < last; i++ {
		item := m.items[i]
		line := "  " + item.Title
		if item.Detail != "" {
			line += dimStyle.Render("  " + item.Detail)
		}
		if i == m.cursor {
			line = cursorStyle.Render("> " + item.Title)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if last < len(m.items) {
		b.WriteString(dimStyle.Render("  ↓ more"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move  enter select  esc back  q quit"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frameStyle.Render(b.String()))
}

// window returns the visible item range so the cursor stays on screen.
func (m MenuModel) window() (int, int) {
	rows := m.height - 10
	if rows < 3 {
		rows = 3
	}
	if len(m.items) <= rows {
		return 0, len(m.items)
	}
	first := m.cursor - rows/2
	if first < 0 {
		first = 0
	}
	if first+rows > len(m.items) {
		first = len(m.items) - rows
	}
	return first, first + rows
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// levelMenu builds the embedded level picker for a game that supports it.
func levelMenu(p registry.LevelPicker, current, width, height int) MenuModel {
	names := p.LevelNames()
	items := make([]MenuItem, len(names))
	for i, name := range names {
		items[i] = MenuItem{ID: fmt.Sprint(i), Title: fmt.Sprintf("%2d. %s", i+1, name)}
	}
	m := NewMenuModel("Select a level", items, width, height)
	m.embedded = true
	if current >= 0 && current < len(items) {
		m.cursor = current
	}
	return m
}

// MenuResult holds the result of running the mode menu.
type MenuResult struct {
	ModeID string
	Quit   bool
}

// RunMenu lets the player pick a registered mode.
func RunMenu(width, height int) (MenuResult, error) {
	modes := registry.List()
	items := make([]MenuItem, len(modes))
	for i, g := range modes {
		items[i] = MenuItem{ID: g.ID, Title: g.Title, Detail: g.Description}
	}

	p := tea.NewProgram(NewMenuModel("G R I D W A L K", items, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{}, err
	}

	m, ok := final.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Quit: true}, nil
	}
	return MenuResult{ModeID: m.Selected().ID}, nil
}
