package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Pikatyu8/my-lil-puzzle-game/internal/config"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/registry"
	"github.com/Pikatyu8/my-lil-puzzle-game/internal/storage"
)

// parsed returns a command carrying the global flags, parsed from args.
func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().AddFlagSet(rootCmd.PersistentFlags())
	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridwalk.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsPrecedence(t *testing.T) {
	path := writeConfig(t, "game:\n  levels_dir: from-file\n  hints: false\nlog:\n  level: warn\n")
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvDB, "")
	t.Setenv(config.EnvLevels, "from-env")

	cmd := parsed(t, "--config", path, "--hints", "--db", "journal.db")
	cfg, source, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}

	if source != path {
		t.Errorf("source = %q", source)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("file value lost: log level %q", cfg.Log.Level)
	}
	if cfg.Game.LevelsDir != "from-env" {
		t.Errorf("env should beat the file: %q", cfg.Game.LevelsDir)
	}
	if !cfg.Game.Hints || cfg.Storage.Path != "journal.db" {
		t.Errorf("flags not applied: hints %v db %q", cfg.Game.Hints, cfg.Storage.Path)
	}
	if cfg.Game.HistoryLimit != config.DefaultSettings().Game.HistoryLimit {
		t.Errorf("unset keys should keep defaults: %d", cfg.Game.HistoryLimit)
	}
}

func TestLoadSettingsConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "ui:\n  cell_width: 6\n")
	t.Setenv(config.EnvConfig, path)

	cfg, _, err := loadSettings(parsed(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.CellWidth != 6 {
		t.Errorf("cell width = %d", cfg.UI.CellWidth)
	}
}

func TestLoadSettingsRejectsBadLogLevel(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "")
	if _, _, err := loadSettings(parsed(t, "--log-level", "loud")); err == nil {
		t.Error("unknown log level accepted")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	cfg := config.DefaultSettings()
	cfg.Log.Level = "debug"
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	defer closeLog()
	if logger.GetLevel().String() != "debug" {
		t.Errorf("level = %v", logger.GetLevel())
	}
}

func TestStartLevel(t *testing.T) {
	game, err := registry.Create("levels", registry.Options{})
	if err != nil {
		t.Fatal(err)
	}
	lp := game.(registry.LevelPicker)

	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 0},
		{arg: "3", want: 2},
		{arg: "detour", want: 1},
		{arg: "0", wantErr: true},
		{arg: "999", wantErr: true},
		{arg: "No such level", wantErr: true},
	}
	for _, tt := range tests {
		got, err := startLevel(lp, tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("startLevel(%q) error = %v", tt.arg, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("startLevel(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestClearSessionByPrefix(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, id := range []string{"abc111", "abc222", "xyz333"} {
		if _, err := store.RecordRun(storage.Run{SessionID: id, Mode: "levels", Name: "x", Outcome: storage.OutcomeDeath}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := clearSession(store, "abc"); err == nil {
		t.Error("ambiguous prefix accepted")
	}
	if _, err := clearSession(store, "nope"); err == nil {
		t.Error("unknown prefix accepted")
	}

	id, err := clearSession(store, "abc2")
	if err != nil || id != "abc222" {
		t.Fatalf("clearSession = %q, %v", id, err)
	}
	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Errorf("sessions left = %+v", sessions)
	}
	for _, s := range sessions {
		if s.SessionID == "abc222" {
			t.Error("cleared session still listed")
		}
	}
}
