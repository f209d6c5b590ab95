package config

import (
	_ "embed"
)

//go:embed defaults/gridwalk.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Game: GameSettings{
			HistoryLimit: 200,
			StepHorizon:  500,
			DefaultGrid:  []int{16, 12},
			LevelsDir:    ".",
		},
		UI: UISettings{
			CellWidth:        4,
			ShowRequirements: true,
		},
		Storage: StorageSettings{Path: ":memory:"},
		Log:     LogSettings{Level: "info"},
	}
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
