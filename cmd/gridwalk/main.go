// gridwalk is a terminal grid puzzle: walk the board, push boxes, avoid
// poisoned edges and satisfy each level's conditions.
//
// Usage:
//
//	gridwalk list               - List playable modes
//	gridwalk play [mode]        - Play a mode (menu when omitted)
//	gridwalk levels [mode]      - List the levels of a mode
//	gridwalk check <file>       - Validate a level file
//	gridwalk history            - Browse recorded sessions
//
// Global flags:
//
//	--config <path>     - Settings file (default search: ~/.gridwalk/configs, ./configs)
//	--log-file <path>   - Write logs to a file
//	--log-level <lvl>   - debug, info, warn or error
//	--levels <dir>      - Directory holding user_levels.json and edit_user_level.json
//	--hints             - Show level hints
//	--console           - Read debug console commands from stdin while playing
//	--db <dsn>          - sqlite session journal (default :memory:)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/config"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/core"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"

	// Register the puzzle modes
	_ "github.com/Pikatyu8/my-lil-puzzle-game/internal/games/gridwalk"
)

var (
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	flagLevels   string
	flagHints    bool
	flagConsole  bool
	flagDBPath   string
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridwalk",
	Short: "gridwalk - a grid puzzle for your terminal",
	Long: `gridwalk is a terminal puzzle game. Each level is a grid with walls,
poisoned edges and pushable boxes; a level is solved by walking a path that
satisfies its conditions.

Available commands:
  list     - Show playable modes
  play     - Play a mode
  levels   - List the levels of a mode
  check    - Validate a level file
  history  - Browse recorded sessions

Examples:
  gridwalk play levels
  gridwalk play user --levels ./my-levels --hints
  gridwalk play edit --console
  gridwalk check edit_user_level.json`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a settings YAML file")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLevels, "levels", "", "Directory with user level files")
	pf.BoolVar(&flagHints, "hints", false, "Show level hints")
	pf.BoolVar(&flagConsole, "console", false, "Read debug console commands from stdin")
	pf.StringVar(&flagDBPath, "db", "", "sqlite session journal (default :memory:)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadSettings applies the config file, then the environment, then flags
// the user actually set.
func loadSettings(cmd *cobra.Command) (config.Settings, string, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}

	cfg, source, err := config.Load(path)
	if err != nil {
		return cfg, source, err
	}
	config.ApplyEnv(&cfg, os.Getenv)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("levels") {
		cfg.Game.LevelsDir = flagLevels
	}
	if flags.Changed("hints") {
		cfg.Game.Hints = flagHints
	}
	if flags.Changed("console") {
		cfg.Console.Enabled = flagConsole
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// newLogger writes to --log-file when given. Otherwise interactive
// commands discard logs (the TUI owns the terminal) and plain commands use
// stderr. The returned close func is never nil.
func newLogger(cfg config.Settings, interactive bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gridwalk",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		closeFn()
		return nil, func() {}, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}

// gameOptions maps settings onto registry options.
func gameOptions(cfg config.Settings, logger *log.Logger) registry.Options {
	g := cfg.Game.Grid()
	return registry.Options{
		LevelsDir:    cfg.Game.LevelsDir,
		GridCols:     g.Cols,
		GridRows:     g.Rows,
		HistoryLimit: cfg.Game.HistoryLimit,
		StepHorizon:  cfg.Game.StepHorizon,
		Hints:        cfg.Game.Hints,
		Logger:       logger,
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig(cfg config.Settings) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.CellWidth = cfg.UI.CellWidth
	rc.ShowRequirements = cfg.UI.ShowRequirements
	rc.ShowCoords = cfg.UI.ShowCoords
	rc.Hints = cfg.Game.Hints
	return rc
}
