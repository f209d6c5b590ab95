package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 24
	maxSessions        = 50
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextSession key.Binding
	PrevSession key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSession, k.PrevSession, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.NextSession, k.PrevSession, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSession: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next session"),
		),
		PrevSession: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev session"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses recorded sessions and their per-level summaries.
type HistoryModel struct {
	store    *storage.Store
	sessions []storage.SessionInfo
	cursor   int
	levels   []storage.LevelSummary
	err      error

	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewHistoryModel loads the most recent sessions from store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	m.sessions, m.err = store.RecentSessions(maxSessions)
	m.loadSession()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 20},
		{Title: "Tries", Width: 6},
		{Title: "Deaths", Width: 7},
		{Title: "Best", Width: 6},
		{Title: "Solved", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadSession fills the table with the summary of the selected session.
func (m *HistoryModel) loadSession() {
	m.levels = nil
	if len(m.sessions) > 0 {
		levels, err := m.store.Summary(m.sessions[m.cursor].SessionID)
		if err != nil {
			m.err = err
		}
		m.levels = levels
	}

	rows := make([]table.Row, len(m.levels))
	for i, ls := range m.levels {
		best, solved := "-", "no"
		if ls.Completed {
			best, solved = fmt.Sprint(ls.BestSteps), "yes"
		}
		rows[i] = table.Row{
			fmt.Sprint(ls.Level + 1),
			ls.Name,
			fmt.Sprint(ls.Attempts),
			fmt.Sprint(ls.Deaths),
			best,
			solved,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSession):
			if len(m.sessions) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sessions)
				m.loadSession()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSession):
			if len(m.sessions) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sessions)) % len(m.sessions)
				m.loadSession()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.loadSession()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	title := "HISTORY"
	if len(m.sessions) > 0 {
		s := m.sessions[m.cursor]
		title = fmt.Sprintf("HISTORY - %s, %s", s.Mode, s.LastPlay.Format("Jan 02 15:04"))
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(title))
	b.WriteString("\n\n")

	content := frameStyle.Render(m.tableContent())
	if m.showSidebar {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Sessions\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.sessions {
		line := fmt.Sprintf("%s %d/%d", s.Mode, s.Solved, s.Runs)
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return frameStyle.Width(sidebarWidth).Render(sb.String())
}

func (m HistoryModel) tableContent() string {
	if m.err != nil {
		return dimStyle.Render("cannot read history: " + m.err.Error())
	}
	if len(m.levels) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nPlay with --db <file> to keep a history.")
	}
	return m.table.View()
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, width, height int) error {
	_, err := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen()).Run()
	return err
}
