package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/platform/tui"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/console"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/storage"
)

var (
	flagLevel string
	flagPack  string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode, or pick one from a menu.

Controls:
  Arrows     - Move
  z          - Undo
  s / l      - Save / load the manual savestate
  r / R      - Restart the level / full reset
  x          - Toggle the requirement overlay
  Enter      - Reload the level file (edit mode)
  Tab        - Level picker
  F9 then F11 - Unlock the debug console
  ?          - Full help
  q/Ctrl+C   - Quit

With --console, debug commands are read from stdin while the game runs
(1 recording, 2 clear recording, 3 coordinates, 4 visited cells,
5 toggle victory, 6 rigid groups, help).

Examples:
  gridwalk play
  gridwalk play levels --level 4
  gridwalk play levels --level "Four corners"
  gridwalk play user --levels ./packs --pack extra
  gridwalk play edit --levels ./work
  gridwalk play user --db ./gridwalk.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "1", "Level to start at: a 1-based number or a level name")
	playCmd.Flags().StringVar(&flagPack, "pack", "", "Play the named pack file from the levels directory")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, source, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("settings loaded", "source", source)

	rc := runtimeConfig(cfg)

	modeID := ""
	if len(args) == 1 {
		modeID = args[0]
	} else {
		res, err := tui.RunMenu(rc.ScreenW, rc.ScreenH)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		modeID = res.ModeID
	}
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (run 'gridwalk list')", modeID)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionID := storage.NewSessionID()
	logger = logger.With("session", sessionID[:8])

	opts := gameOptions(cfg, logger)
	opts.Pack = flagPack
	opts.OnRun = func(e registry.RunEvent) {
		_, err := store.RecordRun(storage.Run{
			SessionID: sessionID,
			Mode:      e.Mode,
			Level:     e.Level,
			Name:      e.Name,
			Outcome:   e.Outcome,
			Steps:     e.Steps,
		})
		if err != nil {
			logger.Error("journal write failed", "err", err)
		}
	}

	game, err := registry.Create(modeID, opts)
	if err != nil {
		return err
	}
	start := 0
	if lp, ok := game.(registry.LevelPicker); ok {
		if start, err = startLevel(lp, flagLevel); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runOpts := tui.RunOptions{StartLevel: start}
	if cfg.Console.Enabled {
		runOpts.Console = &console.Listener{In: os.Stdin, Logger: logger}
		logger.Info("debug console listening on stdin")
	}

	logger.Info("session started", "mode", modeID, "level", start+1)
	if err := tui.Run(ctx, game, rc, runOpts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	return printSummary(store, sessionID, logger)
}

// startLevel resolves --level to a 0-based index. Numbers are 1-based;
// anything else is looked up by level name.
func startLevel(lp registry.LevelPicker, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return lp.FindLevel(arg)
	}
	if count := len(lp.LevelNames()); n < 1 || n > count {
		return 0, fmt.Errorf("level %d out of range 1-%d", n, count)
	}
	return n - 1, nil
}

// printSummary reports per-level results of the session that just ended.
func printSummary(store *storage.Store, sessionID string, logger *log.Logger) error {
	summary, err := store.Summary(sessionID)
	if err != nil {
		return err
	}
	logger.Info("session ended", "levels", len(summary))
	if len(summary) == 0 {
		return nil
	}

	fmt.Println("Session summary")
	fmt.Println()
	fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "#", "Level", "Tries", "Deaths", "Best")
	fmt.Printf("  %-4s  %-24s  %-6s  %-6s  %s\n", "-", "-----", "-----", "------", "----")

	solved := 0
	for _, ls := range summary {
		best := "-"
		if ls.Completed {
			best = fmt.Sprint(ls.BestSteps)
			solved++
		}
		fmt.Printf("  %-4d  %-24s  %-6d  %-6d  %s\n", ls.Level+1, ls.Name, ls.Attempts, ls.Deaths, best)
	}
	fmt.Println()
	fmt.Printf("Solved %d of %d levels played.\n", solved, len(summary))
	return nil
}
