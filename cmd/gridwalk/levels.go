package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/grid"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
)

var flagPacks bool

var levelsCmd = &cobra.Command{
	Use:   "levels [mode]",
	Short: "List the levels of a mode",
	Long: `Prints the level names of a mode's pack, numbered for 'play --level'.
With --packs, lists every pack file found below the levels directory
instead, by the name 'play --pack' accepts.

Examples:
  gridwalk levels
  gridwalk levels user --levels ./my-levels
  gridwalk levels --packs --levels ./packs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagPacks, "packs", false, "List the pack files in the levels directory")
}

func runLevels(cmd *cobra.Command, args []string) error {
	modeID := "levels"
	if len(args) == 1 {
		modeID = args[0]
	}

	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	if flagPacks {
		return listPacks(cfg.Game.LevelsDir, cfg.Game.Grid())
	}

	game, err := registry.Create(modeID, gameOptions(cfg, logger))
	if err != nil {
		return err
	}
	lp, ok := game.(registry.LevelPicker)
	if !ok {
		return fmt.Errorf("mode %q has no level list", modeID)
	}

	fmt.Printf("%s levels:\n\n", game.Title())
	for i, name := range lp.LevelNames() {
		fmt.Printf("  %3d  %s\n", i+1, name)
	}
	return nil
}

func listPacks(dir string, defaultGrid grid.Grid) error {
	packs, err := levels.NewLoader(dir, defaultGrid).LoadAll()
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		fmt.Printf("No level packs found in %s.\n", dir)
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %s\n", "Pack", "Levels", "Errors", "File")
	fmt.Printf("  %-16s  %-6s  %-6s  %s\n", "----", "------", "------", "----")
	for _, p := range packs {
		bad := 0
		for _, r := range p.Reports {
			if !r.OK() {
				bad++
			}
		}
		fmt.Printf("  %-16s  %-6d  %-6d  %s\n", p.Name, p.Len(), bad, p.Source)
	}
	return nil
}
