// Package gridwalk adapts the puzzle session to the platform Game
// interface: it turns input frames into controller calls and draws the
// board into a core.Screen.
package gridwalk

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/session"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
)

// Mode describes where a game gets its levels.
type Mode struct {
	ID          string
	Title       string
	Description string

	// File is read from the levels directory; empty means the built-in pack.
	File string

	// Fallback plays the built-in pack when File is missing or empty.
	Fallback bool

	// Edit keeps the player on a solved level and creates File from the
	// template when it does not exist.
	Edit bool
}

// Modes lists the registered modes.
var Modes = []Mode{
	{ID: "levels", Title: "Campaign", Description: "the built-in level pack"},
	{ID: "user", Title: "User levels", Description: "user_levels.json from the levels directory", File: "user_levels.json", Fallback: true},
	{ID: "edit", Title: "Level editor", Description: "edit_user_level.json, reloaded with enter", File: "edit_user_level.json", Edit: true},
}

func init() {
	for _, m := range Modes {
		registry.Register(registry.GameInfo{ID: m.ID, Title: m.Title, Description: m.Description},
			func(opts registry.Options) (registry.Game, error) {
				return New(m, opts)
			})
	}
}

// Game implements registry.Game and registry.LevelPicker.
type Game struct {
	mode Mode
	opts registry.Options
	log  *log.Logger
	grid grid.Grid
	path string // level file, empty for the built-in pack

	ctrl *session.Controller
	cfg  core.RuntimeConfig

	message string
	output  string // last console output
}

// New loads the mode's pack and starts at its first level.
func New(mode Mode, opts registry.Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		mode: mode,
		opts: opts,
		log:  logger,
		grid: grid.Grid{Cols: opts.GridCols, Rows: opts.GridRows},
		cfg:  core.DefaultConfig(),
	}
	if g.grid.Cols < 1 || g.grid.Rows < 1 {
		g.grid = levels.DefaultGrid
	}
	if mode.File != "" {
		g.path = filepath.Join(opts.LevelsDir, mode.File)
	}

	pack, err := g.loadPack()
	if err != nil {
		return nil, err
	}

	g.ctrl, err = session.New(pack, 0, session.Options{
		HistoryLimit: opts.HistoryLimit,
		StepHorizon:  opts.StepHorizon,
		EditMode:     mode.Edit,
		Hints:        opts.Hints,
		Logger:       logger,
		Observer:     g.observe,
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) loadPack() (levels.Pack, error) {
	if g.opts.Pack != "" && !g.mode.Edit {
		pack, err := levels.NewLoader(g.opts.LevelsDir, g.grid).LoadByName(g.opts.Pack)
		if err != nil {
			return levels.Pack{}, err
		}
		g.path = pack.Source
		g.log.Info("pack loaded", "name", pack.Name, "path", pack.Source, "levels", pack.Len())
		return pack, nil
	}
	if g.path == "" {
		return levels.Builtin(g.grid)
	}

	if g.mode.Edit {
		created, err := levels.EnsureTemplate(g.path)
		if err != nil {
			return levels.Pack{}, err
		}
		if created {
			g.log.Info("template written", "path", g.path)
		}
	}

	pack, err := levels.LoadPackFile(g.path, g.grid)
	if err != nil && g.mode.Fallback {
		g.log.Warn("user levels unavailable, playing built-in pack", "path", g.path, "err", err)
		return levels.Builtin(g.grid)
	}
	if err != nil {
		return levels.Pack{}, err
	}

	for i, r := range pack.Reports {
		for _, e := range r.Errors {
			g.log.Warn("level problem", "level", i+1, "err", e.Error())
		}
	}
	return pack, nil
}

func (g *Game) observe(e session.Event) {
	if g.opts.OnRun == nil {
		return
	}
	g.opts.OnRun(registry.RunEvent{
		Mode:    g.mode.ID,
		Level:   e.Level,
		Name:    e.Name,
		Outcome: e.Outcome,
		Steps:   e.Steps,
	})
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.mode.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.mode.Title }

// Reset restarts the pack from its first level with a full reset.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.message = ""
	g.output = ""
	_ = g.ctrl.Select(0)
	if !cfg.ShowRequirements {
		g.ctrl.ToggleRequirements()
	}
}

// Resize updates the screen size without touching game state.
func (g *Game) Resize(w, h int) {
	g.cfg.ScreenW = w
	g.cfg.ScreenH = h
}

// LevelNames returns the display titles of the pack.
func (g *Game) LevelNames() []string {
	pack := g.ctrl.Pack()
	names := make([]string, pack.Len())
	for i, lvl := range pack.Levels {
		names[i] = lvl.Title(i)
	}
	return names
}

// FindLevel looks a level up by its name, ignoring case.
func (g *Game) FindLevel(name string) (int, error) {
	return g.ctrl.Pack().Find(name)
}

// Select jumps to a level with a full reset.
func (g *Game) Select(index int) error {
	g.message = ""
	return g.ctrl.Select(index)
}

// Controller exposes the session for the front end's status line.
func (g *Game) Controller() *session.Controller { return g.ctrl }

var moveActions = []struct {
	action core.Action
	side   grid.Side
}{
	{core.ActionUp, grid.SideUp},
	{core.ActionDown, grid.SideDown},
	{core.ActionLeft, grid.SideLeft},
	{core.ActionRight, grid.SideRight},
}

// Step applies one input frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Command != "" {
		g.output = g.ctrl.Exec(in.Command)
		return core.StepResult{State: g.State(), Output: g.output}
	}

	if in.Has(core.ActionDevUnlock) {
		g.ctrl.Unlock()
		g.message = "dev console unlocked"
	}

	if g.ctrl.Complete() {
		if in.Has(core.ActionRestart) || in.Has(core.ActionFullReset) || in.Has(core.ActionConfirm) {
			_ = g.ctrl.Select(0)
			g.message = "starting over"
		}
		return g.result()
	}

	for _, m := range moveActions {
		if in.Has(m.action) {
			g.message = g.describe(g.ctrl.Move(m.side))
			return g.result()
		}
	}

	switch {
	case in.Has(core.ActionUndo):
		g.message = "undo"
		if err := g.ctrl.Undo(); errors.Is(err, session.ErrNothingToUndo) {
			g.message = "nothing to undo"
		}
	case in.Has(core.ActionSave):
		g.ctrl.Save()
		g.message = "saved"
	case in.Has(core.ActionLoad):
		g.message = "loaded"
		if err := g.ctrl.Load(); errors.Is(err, session.ErrNoManualSave) {
			g.message = "no manual save"
		}
	case in.Has(core.ActionRestart):
		g.ctrl.Reload(false)
		g.message = "level restarted"
	case in.Has(core.ActionFullReset):
		g.ctrl.Reload(true)
		g.message = "full reset"
	case in.Has(core.ActionToggleRequirements):
		g.ctrl.ToggleRequirements()
	case in.Has(core.ActionConfirm) && g.mode.Edit:
		g.message = g.reloadFile()
	}
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Message: g.message}
}

// reloadFile re-reads the edit file and restarts it.
func (g *Game) reloadFile() string {
	pack, err := levels.LoadPackFile(g.path, g.grid)
	if err != nil {
		g.log.Error("reload failed", "path", g.path, "err", err)
		return "reload failed: " + err.Error()
	}
	if err := g.ctrl.ReplacePack(pack); err != nil {
		return "reload failed: " + err.Error()
	}
	g.log.Info("level file reloaded", "path", g.path, "levels", pack.Len())
	return "reloaded " + filepath.Base(g.path)
}

func (g *Game) describe(res session.Result) string {
	switch res.Outcome {
	case session.OutcomeDied:
		return fmt.Sprintf("you died (%s poison) after %d steps", res.Cause, res.Steps)
	case session.OutcomeSolved:
		switch {
		case res.Complete:
			return fmt.Sprintf("all %d levels solved!", g.ctrl.Pack().Len())
		case res.Advanced:
			return fmt.Sprintf("solved in %d steps, next level", res.Steps)
		default:
			return fmt.Sprintf("solved in %d steps: r to retry, enter to reload the file", res.Steps)
		}
	case session.OutcomeSuppressed:
		return "conditions met, victory disabled"
	case session.OutcomeBlocked:
		switch {
		case res.Push.OutOfBounds:
			return "edge of the grid"
		case res.Push.BlockedByWall:
			return "wall"
		case res.Push.BlockedByBox:
			return "it will not budge"
		}
	}
	return ""
}

// State reports progress through the pack.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:    g.ctrl.Index(),
		Levels:   g.ctrl.Pack().Len(),
		Steps:    g.ctrl.Steps(),
		Deaths:   g.ctrl.Deaths(),
		GameOver: g.ctrl.Complete(),
		Won:      g.ctrl.Complete(),
	}
}
