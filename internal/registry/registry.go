// Package registry provides a global registry of playable modes.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
)

// ErrUnknownMode is returned by Create for ids nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is the interface every playable mode implements.
// It contains no Bubble Tea code; the platform maps keys to actions and
// paints the screen buffer.
type Game interface {
	// ID returns the mode identifier used on the command line.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset restarts the mode from its first level.
	Reset(cfg core.RuntimeConfig)

	// Step applies one input frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. The screen is pre-cleared.
	Render(dst *core.Screen)

	// State returns the current progress.
	State() core.GameState
}

// LevelPicker is implemented by games that can jump to a level.
type LevelPicker interface {
	LevelNames() []string
	Select(index int) error

	// FindLevel returns the index of the level called name.
	FindLevel(name string) (int, error)
}

// RunEvent reports a finished attempt (death or victory) to the host.
type RunEvent struct {
	Mode    string
	Level   int
	Name    string
	Outcome string
	Steps   int
}

// Options are handed to a Factory.
type Options struct {
	LevelsDir    string
	Pack         string // pack file name under LevelsDir, replaces the mode's own levels
	GridCols     int
	GridRows     int
	HistoryLimit int
	StepHorizon  int
	Hints        bool
	Logger       *log.Logger
	OnRun        func(RunEvent)
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new instance of a mode.
type Factory func(opts Options) (Game, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a mode. Panics if the id is already taken.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a mode by its ID.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return e.factory(opts)
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
