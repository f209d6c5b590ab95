package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/platform/tui"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagClear string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded sessions",
	Long: `Shows sessions recorded in the journal. The default journal lives in
memory, so pass --db (or set storage.path) to keep one between runs.

Examples:
  gridwalk history --db ./gridwalk.db
  gridwalk history --db ./gridwalk.db --plain --limit 5
  gridwalk history --db ./gridwalk.db --clear 3f2a9c1e`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of opening the browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Sessions to print with --plain")
	historyCmd.Flags().StringVar(&flagClear, "clear", "", "Delete the session whose id starts with this prefix")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear != "" {
		id, err := clearSession(store, flagClear)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted session %s.\n", id)
		return nil
	}

	if !flagPlain {
		rc := runtimeConfig(cfg)
		return tui.RunHistory(store, rc.ScreenW, rc.ScreenH)
	}

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %-6s  %s\n", "Session", "Mode", "Runs", "Solved", "Deaths", "Last played")
	fmt.Printf("  %-8s  %-8s  %-5s  %-6s  %-6s  %s\n", "-------", "----", "----", "------", "------", "-----------")
	for _, s := range sessions {
		fmt.Printf("  %-8s  %-8s  %-5d  %-6d  %-6d  %s\n",
			s.SessionID[:min(8, len(s.SessionID))], s.Mode, s.Runs, s.Solved, s.Deaths,
			s.LastPlay.Format("2006-01-02 15:04"))
	}
	return nil
}

// clearSession deletes the one session whose id starts with prefix.
func clearSession(store *storage.Store, prefix string) (string, error) {
	sessions, err := store.RecentSessions(math.MaxInt32)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, s := range sessions {
		if strings.HasPrefix(s.SessionID, prefix) {
			matches = append(matches, s.SessionID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no session starts with %q", prefix)
	case 1:
		return matches[0], store.ClearSession(matches[0])
	}
	return "", fmt.Errorf("%d sessions start with %q, use a longer prefix", len(matches), prefix)
}
