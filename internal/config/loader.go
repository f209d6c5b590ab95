package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig   = "GRIDWALK_CONFIG"
	EnvLogLevel = "GRIDWALK_LOG_LEVEL"
	EnvLevels   = "GRIDWALK_LEVELS"
	EnvDB       = "GRIDWALK_DB"
)

// Load reads settings and reports where they came from.
// Search order: customPath -> ~/.gridwalk/configs/gridwalk.yaml -> ./configs/gridwalk.yaml -> embedded default
//
// Files are decoded over DefaultSettings, so a partial file only changes
// the keys it names. A broken custom path is an error; broken files found
// by searching are skipped.
func Load(customPath string) (Settings, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultSettings(), "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultSettings(), "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", "gridwalk.yaml")}
	if p := userConfigPath("gridwalk.yaml"); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), "builtin", nil
	}
	return cfg, "embedded", nil
}

func parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridwalk", "configs", filename)
}

// ApplyEnv overrides settings from environment variables. getenv is
// usually os.Getenv.
func ApplyEnv(cfg *Settings, getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvLevels); v != "" {
		cfg.Game.LevelsDir = v
	}
	if v := getenv(EnvDB); v != "" {
		cfg.Storage.Path = v
	}
}
