package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/puzzle/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a level file",
	Long: `Checks every level in a JSON or YAML pack and prints errors and
warnings. Exits non-zero when any level has errors.

Examples:
  gridwalk check user_levels.json
  gridwalk check levels/pack.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	reports, err := levels.CheckFile(args[0])
	if err != nil {
		return err
	}

	failed := 0
	for i, r := range reports {
		status := "ok"
		if !r.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Printf("level %d: %s\n", i+1, status)
		for _, e := range r.Errors {
			fmt.Printf("  error   %s\n", e)
		}
		for _, w := range r.Warnings {
			fmt.Printf("  warning %s\n", w)
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d levels have errors", failed, len(reports))
	}
	fmt.Printf("All %d levels are valid.\n", len(reports))
	return nil
}
