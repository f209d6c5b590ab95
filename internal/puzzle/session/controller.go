// Package session runs one play-through of a level pack: it resolves
// moves, keeps the movement record and savestates, and advances the
// campaign on victory.
//
// A Controller is not safe for concurrent use. The UI loop owns it and is
// the only caller; the debug console hands commands to that loop instead
// of calling in directly.
package session

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/movable"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/rules"
)

// Outcome classifies a move.
type Outcome uint8

const (
	OutcomeMoved Outcome = iota
	OutcomeBlocked
	OutcomeDied
	OutcomeSolved     // level solved, controller moved on or finished
	OutcomeSuppressed // conditions held but victory is disabled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeDied:
		return "died"
	case OutcomeSolved:
		return "solved"
	case OutcomeSuppressed:
		return "suppressed"
	}
	return "unknown"
}

// DeathCause says which poison check killed the player.
type DeathCause string

const (
	CauseExit  DeathCause = "exit"
	CausePush  DeathCause = "push"
	CauseEntry DeathCause = "entry"
)

// Result describes what a single move did.
type Result struct {
	Outcome Outcome
	Cause   DeathCause
	Push    movable.PushResult

	// Steps is the step count of the attempt that ended the level, for
	// deaths and victories.
	Steps int

	// Advanced is set when victory loaded the next level; Complete when
	// the last level was solved.
	Advanced bool
	Complete bool
}

// Event is reported to the Observer on deaths and victories.
type Event struct {
	Level   int
	Name    string
	Outcome string
	Steps   int
}

// Options configure a Controller.
type Options struct {
	HistoryLimit int
	StepHorizon  int // see rules.Context.Horizon
	EditMode     bool
	Hints        bool
	Logger       *log.Logger
	Observer     func(Event)
}

// Dev holds the debug console toggles.
type Dev struct {
	Unlocked       bool
	ShowCoords     bool
	DisableVictory bool
}

// Controller is the movement controller plus campaign state.
type Controller struct {
	pack  levels.Pack
	index int
	level levels.Level
	opts  Options
	log   *log.Logger

	pos       grid.Coord
	path      []grid.Coord
	history   []grid.Side
	recording []grid.Side
	movables  *movable.Manager
	walls     []grid.Barrier
	poison    []grid.Barrier

	states *StateManager
	dev    Dev

	showRequirements bool
	requirements     rules.Requirements
	conditionCells   []grid.Coord

	deaths   int
	solved   bool
	complete bool
}

// New starts the pack at level index with a full reset.
func New(pack levels.Pack, index int, opts Options) (*Controller, error) {
	if pack.Len() == 0 {
		return nil, levels.ErrNoLevels
	}
	if _, err := pack.Level(index); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		pack:   pack,
		opts:   opts,
		log:    logger,
		states: NewStateManager(opts.HistoryLimit),
	}
	c.loadLevel(index, true)
	return c, nil
}

// loadLevel (re)starts level i. A full reset also clears savestates.
func (c *Controller) loadLevel(i int, full bool) {
	c.index = i
	c.level = c.pack.Levels[i]
	c.solved = false

	c.pos = c.level.Start
	c.path = []grid.Coord{c.level.Start}
	c.history = []grid.Side{}
	c.recording = nil
	c.movables = c.level.NewMovables()
	c.walls = slices.Clone(c.level.Walls)
	c.poison = slices.Clone(c.level.Poison)

	c.showRequirements = true
	c.requirements = rules.Describe(c.level.Conditions, c.level.Grid)
	// Global conditions are shown but never decide victory.
	c.requirements.Merge(rules.Describe(c.level.GlobalConditions, c.level.Grid))
	c.conditionCells = rules.ConditionCells(c.level.Conditions, c.level.Grid)

	if full {
		c.states.Reset()
		c.log.Info("full reset", "level", i+1, "name", c.level.Title(i))
	} else {
		c.log.Info("soft reset", "level", i+1, "undo", c.states.Len())
	}

	c.log.Info("level loaded", "name", c.level.Title(i), "grid", c.level.Grid.String())
	if c.opts.Hints && c.level.Hint != "" {
		c.log.Info("hint", "text", c.level.Hint)
	}
}

// Reload restarts the current level. A soft reload keeps undo and the
// manual save.
func (c *Controller) Reload(full bool) {
	c.loadLevel(c.index, full)
}

// Select jumps to level i with a full reset.
func (c *Controller) Select(i int) error {
	if _, err := c.pack.Level(i); err != nil {
		return err
	}
	c.complete = false
	c.loadLevel(i, true)
	return nil
}

// ReplacePack swaps in a freshly read pack and restarts at its first
// level. Used by edit mode to pick up file changes.
func (c *Controller) ReplacePack(pack levels.Pack) error {
	if pack.Len() == 0 {
		return levels.ErrNoLevels
	}
	c.pack = pack
	c.complete = false
	c.loadLevel(0, true)
	return nil
}

func (c *Controller) snapshot(movables movable.State) Snapshot {
	return Snapshot{
		Pos:       c.pos,
		Path:      c.path,
		History:   c.history,
		Recording: c.recording,
		Movables:  movables,
		StepCount: len(c.path),
	}
}

func (c *Controller) restore(s Snapshot) {
	c.pos = s.Pos
	c.path = s.Path
	c.history = s.History
	c.recording = s.Recording
	c.movables.Restore(s.Movables)
	if len(c.path) > 1 {
		c.showRequirements = false
	}
}

// Move attempts one step in dir. Blocked attempts still count: the
// direction is recorded and the unchanged position is appended to the path.
func (c *Controller) Move(dir grid.Side) Result {
	if c.complete {
		return Result{Outcome: OutcomeBlocked}
	}
	if c.showRequirements && len(c.path) == 1 {
		c.showRequirements = false
	}

	if grid.CheckExitPoison(c.pos, dir, c.poison) {
		c.states.Push(c.snapshot(c.movables.Snapshot()))
		return c.die(CauseExit, movable.PushResult{})
	}

	before := c.movables.Snapshot()
	push := c.movables.TryPush(c.pos, dir, movable.Terrain{
		Grid:   c.level.Grid,
		Walls:  c.walls,
		Poison: c.poison,
	})

	if push.HitPoison {
		c.states.Push(c.snapshot(before))
		return c.die(CausePush, push)
	}

	res := Result{Outcome: OutcomeBlocked, Push: push}
	if push.CanMove {
		if grid.CheckEntryPoison(push.TargetPos, dir, c.poison, c.level.Grid) {
			c.states.Push(c.snapshot(before))
			return c.die(CauseEntry, push)
		}

		c.states.Push(c.snapshot(before))
		c.pos = push.TargetPos
		res.Outcome = OutcomeMoved
		if len(push.MovesMade) > 0 {
			c.log.Debug("pushed", "objects", len(push.MovesMade), "dir", dir.String())
		}
	}

	c.history = append(c.history, dir)
	c.recording = append(c.recording, dir)
	c.path = append(c.path, c.pos)

	if !rules.CheckAll(c.level.Conditions, c.context()) {
		return res
	}

	if c.dev.DisableVictory {
		c.log.Info("victory suppressed", "level", c.index+1)
		res.Outcome = OutcomeSuppressed
		return res
	}
	return c.win(res)
}

func (c *Controller) context() rules.Context {
	return rules.Context{
		Path:    c.path,
		Pos:     c.pos,
		Grid:    c.level.Grid,
		History: c.history,
		Horizon: c.opts.StepHorizon,
	}
}

func (c *Controller) die(cause DeathCause, push movable.PushResult) Result {
	steps := len(c.path)
	c.deaths++
	c.log.Warn("player died", "cause", string(cause), "level", c.index+1, "step", steps)
	c.notify("death", steps)
	c.loadLevel(c.index, false)
	return Result{Outcome: OutcomeDied, Cause: cause, Push: push, Steps: steps}
}

func (c *Controller) win(res Result) Result {
	res.Outcome = OutcomeSolved
	res.Steps = len(c.path) - 1
	c.solved = true
	c.log.Info("level solved", "level", c.index+1, "name", c.level.Title(c.index), "steps", res.Steps)
	c.notify("victory", res.Steps)

	if c.opts.EditMode {
		return res
	}
	if next := c.index + 1; next < c.pack.Len() {
		c.loadLevel(next, true)
		res.Advanced = true
		return res
	}
	c.complete = true
	res.Complete = true
	c.log.Info("game complete", "levels", c.pack.Len(), "deaths", c.deaths)
	return res
}

func (c *Controller) notify(outcome string, steps int) {
	if c.opts.Observer == nil {
		return
	}
	c.opts.Observer(Event{
		Level:   c.index,
		Name:    c.level.Title(c.index),
		Outcome: outcome,
		Steps:   steps,
	})
}

// Undo restores the newest snapshot.
func (c *Controller) Undo() error {
	s, err := c.states.Pop()
	if err != nil {
		c.log.Info("undo: history empty")
		return err
	}
	c.restore(s)
	c.log.Debug("undo", "step", len(c.path)-1, "remaining", c.states.Len())
	return nil
}

// Save stores the current state in the manual slot.
func (c *Controller) Save() {
	c.states.Save(c.snapshot(c.movables.Snapshot()))
	c.log.Info("saved", "step", len(c.path))
}

// Load restores the manual slot.
func (c *Controller) Load() error {
	s, err := c.states.Load()
	if err != nil {
		return err
	}
	c.restore(s)
	c.log.Info("loaded", "step", len(c.path))
	return nil
}

// ToggleRequirements shows or hides the requirement overlay.
func (c *Controller) ToggleRequirements() {
	c.showRequirements = !c.showRequirements
}

// Unlock enables the debug console.
func (c *Controller) Unlock() {
	if !c.dev.Unlocked {
		c.dev.Unlocked = true
		c.log.Info("debug console unlocked")
	}
}

// Accessors used by renderers.

func (c *Controller) Pack() levels.Pack                { return c.pack }
func (c *Controller) Index() int                       { return c.index }
func (c *Controller) Level() levels.Level              { return c.level }
func (c *Controller) Pos() grid.Coord                  { return c.pos }
func (c *Controller) Path() []grid.Coord               { return c.path }
func (c *Controller) History() []grid.Side             { return c.history }
func (c *Controller) Recording() []grid.Side           { return c.recording }
func (c *Controller) Movables() *movable.Manager       { return c.movables }
func (c *Controller) Walls() []grid.Barrier            { return c.walls }
func (c *Controller) Poison() []grid.Barrier           { return c.poison }
func (c *Controller) Dev() Dev                         { return c.dev }
func (c *Controller) Deaths() int                      { return c.deaths }
func (c *Controller) Steps() int                       { return len(c.path) - 1 }
func (c *Controller) Solved() bool                     { return c.solved }
func (c *Controller) Complete() bool                   { return c.complete }
func (c *Controller) EditMode() bool                   { return c.opts.EditMode }
func (c *Controller) UndoDepth() int                   { return c.states.Len() }
func (c *Controller) HasSave() bool                    { return c.states.HasSave() }
func (c *Controller) ShowRequirements() bool           { return c.showRequirements }
func (c *Controller) Requirements() rules.Requirements { return c.requirements }
func (c *Controller) ConditionCells() []grid.Coord     { return c.conditionCells }
