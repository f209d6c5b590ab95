// Package tui runs a registry.Game inside a Bubble Tea program. It maps
// keys to actions, renders the game's Screen with lipgloss and forwards
// debug console commands to the game between frames.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/console"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
)

// CommandMsg carries one debug console line to the update loop.
type CommandMsg string

// Resizer is implemented by games that track the terminal size.
type Resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for playing a game. Update is the only
// place game state changes: keys and console commands alike become input
// frames applied there.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	chord  unlockChord
	picker *MenuModel
	last   core.StepResult

	quitting bool
}

// NewModel resets the game and jumps to level start when the game
// supports level selection.
func NewModel(game registry.Game, cfg core.RuntimeConfig, start int) Model {
	game.Reset(cfg)
	if lp, ok := game.(registry.LevelPicker); ok && start > 0 {
		_ = lp.Select(start)
	}

	m := Model{
		game:   game,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	m.last = core.StepResult{State: game.State()}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case CommandMsg:
		m.last = m.game.Step(core.CommandFrame(string(msg)))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chord.Feed(msg.String()) {
		m.last = m.game.Step(core.FrameOf(core.ActionDevUnlock))
		return m, nil
	}

	if m.picker != nil {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.boardHeight())
		return m, nil

	case key.Matches(msg, m.keys.Levels):
		if lp, ok := m.game.(registry.LevelPicker); ok {
			picker := levelMenu(lp, m.game.State().Level, m.config.ScreenW, m.config.ScreenH)
			m.picker = &picker
		}
		return m, nil
	}

	if action := m.keys.MapKey(msg); action != core.ActionNone {
		m.last = m.game.Step(core.FrameOf(action))
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker, cmd := m.picker.handleKey(msg)
	if picker.IsQuitting() {
		m.quitting = true
		return m, cmd
	}

	if sel := picker.Selected(); sel != nil {
		idx, err := strconv.Atoi(sel.ID)
		if lp, ok := m.game.(registry.LevelPicker); ok && err == nil {
			if err := lp.Select(idx); err != nil {
				m.last.Message = err.Error()
			} else {
				m.last = core.StepResult{State: m.game.State()}
			}
		}
	}

	if picker.closed {
		m.picker = nil
	} else {
		m.picker = &picker
	}
	return m, cmd
}

// handleResize processes window resize events. Game state is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.boardHeight())
	if r, ok := m.game.(Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	}
	if m.picker != nil {
		m.picker.width = msg.Width
		m.picker.height = msg.Height
	}
	return m
}

// boardHeight is the screen height left after the help footer.
func (m Model) boardHeight() int {
	lines := 1
	if m.help.ShowAll {
		lines = 0
		for _, col := range m.keys.FullHelp() {
			lines = max(lines, len(col))
		}
	}
	return max(m.config.ScreenH-lines, 1)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picker != nil {
		return m.picker.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + dimStyle.Render(m.help.View(m.keys))
}

// Last returns the result of the most recent input frame.
func (m Model) Last() core.StepResult {
	return m.last
}

// RunOptions configure Run.
type RunOptions struct {
	StartLevel int

	// Console, when set, reads debug commands while the game runs. The
	// program then takes keyboard input from the controlling terminal.
	Console *console.Listener
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(ctx context.Context, game registry.Game, cfg core.RuntimeConfig, opts RunOptions) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Console != nil {
		progOpts = append(progOpts, tea.WithInputTTY())
	}

	p := tea.NewProgram(NewModel(game, cfg, opts.StartLevel), progOpts...)

	if opts.Console != nil {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		opts.Console.Start(ctx, func(cmd string) {
			p.Send(CommandMsg(cmd))
		})
	}

	_, err := p.Run()
	return err
}
