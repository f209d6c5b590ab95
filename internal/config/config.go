// Package config provides YAML-based settings loading for gridwalk.
package config

import (
	"fmt"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
)

// Settings is the full configuration file.
type Settings struct {
	Game    GameSettings    `yaml:"game"`
	UI      UISettings      `yaml:"ui"`
	Console ConsoleSettings `yaml:"console"`
	Storage StorageSettings `yaml:"storage"`
	Log     LogSettings     `yaml:"log"`
}

// GameSettings tune the puzzle engine.
type GameSettings struct {
	HistoryLimit int   `yaml:"history_limit"` // undo depth
	StepHorizon  int   `yaml:"step_horizon"`  // bound for expanding step expressions
	DefaultGrid  []int `yaml:"default_grid"`  // [cols, rows]
	Hints        bool  `yaml:"hints"`

	// LevelsDir holds user_levels.json and edit_user_level.json.
	LevelsDir string `yaml:"levels_dir"`
}

// UISettings tune the terminal renderer.
type UISettings struct {
	CellWidth        int  `yaml:"cell_width"`
	ShowRequirements bool `yaml:"show_requirements"`
	ShowCoords       bool `yaml:"show_coords"`
}

// ConsoleSettings control the debug command listener.
type ConsoleSettings struct {
	Enabled bool `yaml:"enabled"`
}

// StorageSettings locate the session journal.
type StorageSettings struct {
	Path string `yaml:"path"` // sqlite DSN
}

// LogSettings configure the logger.
type LogSettings struct {
	Level string `yaml:"level"`
}

// Grid returns the default grid as a grid.Grid.
func (g GameSettings) Grid() grid.Grid {
	if len(g.DefaultGrid) != 2 {
		return grid.Grid{Cols: 16, Rows: 12}
	}
	return grid.Grid{Cols: g.DefaultGrid[0], Rows: g.DefaultGrid[1]}
}

const (
	minCellWidth = 3
	maxCellWidth = 8
	maxGridSide  = 64
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "fatal": true}

// Validate clamps out-of-range values in place. It returns an error only
// for values that cannot be repaired.
func (s *Settings) Validate() error {
	if s.Game.HistoryLimit < 1 {
		s.Game.HistoryLimit = 1
	}
	if s.Game.StepHorizon < 1 {
		s.Game.StepHorizon = 500
	}
	if len(s.Game.DefaultGrid) != 2 {
		s.Game.DefaultGrid = []int{16, 12}
	}
	for i, v := range s.Game.DefaultGrid {
		s.Game.DefaultGrid[i] = clamp(v, 1, maxGridSide)
	}
	s.UI.CellWidth = clamp(s.UI.CellWidth, minCellWidth, maxCellWidth)
	if s.Game.LevelsDir == "" {
		s.Game.LevelsDir = "."
	}
	if s.Storage.Path == "" {
		s.Storage.Path = ":memory:"
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if !logLevels[s.Log.Level] {
		return fmt.Errorf("config: unknown log level %q", s.Log.Level)
	}
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
