package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	CellWidth int // interior width of a board cell

	ShowRequirements bool // requirement overlay on at level start
	ShowCoords       bool // coordinate labels in cells
	Hints            bool // show level hints in the side panel
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:          100,
		ScreenH:          30,
		CellWidth:        4,
		ShowRequirements: true,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Level    int // zero-based index of the current level
	Levels   int // levels in the pack
	Steps    int
	Deaths   int
	GameOver bool // the last level was solved
	Won      bool
}

// StepResult is returned by Game.Step after each input frame.
type StepResult struct {
	State GameState

	// Message is a one-line status for the player, empty when nothing
	// noteworthy happened.
	Message string

	// Output is console output produced by a command frame.
	Output string
}
