// ABOUTME: Root Cobra command for the mapty CLI.
// ABOUTME: Loads config and opens the storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/mapty/internal/config"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.SugaredLogger
	store  *storage.WorkoutStore

	flagBackend   string
	flagDataDir   string
	flagEphemeral bool
)

// skipStorage marks commands (and their subcommands) that never touch
// workout storage.
const skipStorage = "skip-storage"

func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipStorage]; ok {
			return false
		}
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

var rootCmd = &cobra.Command{
	Use:   "mapty",
	Short: "Map your running and cycling workouts",
	Long: `Mapty records running and cycling workouts at the places you did them.

THE MAP:

  $ mapty serve                         # Open http://127.0.0.1:8080
  Click the map to log a workout there; click a workout in the list to
  fly back to it.

FROM THE TERMINAL:

  $ mapty add running 5 25 180 --at 51.5,-0.12   # distance km, minutes, cadence
  $ mapty add cycling 20 60 150 --at 51.5,-0.12  # distance km, minutes, elevation m
  $ mapty list                                   # Every workout
  $ mapty list --type cycling                    # Filter by type
  $ mapty show 1a2b3c4d                          # One workout by short ID

DERIVED METRICS:

  Running pace is duration / distance (min/km).
  Cycling speed is distance / hours (km/h).

MCP INTEGRATION:

  Run 'mapty mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "mapty": { "command": "mapty", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts live in badger at ~/.local/share/mapty/badger by default.
  Choose sqlite, charm (synced) or memory with --backend or 'backend' in
  ~/.config/mapty/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A failed RunE skips PostRun; release what the last run left open.
		if store != nil {
			_ = store.Close()
			store = nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cfg)

		logger, err = cfg.NewLogger()
		if err != nil {
			return err
		}

		if !needsStorage(cmd) {
			return nil
		}

		slot, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		store = storage.NewWorkoutStore(slot)
		logger.Debugw("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if store != nil {
			err := store.Close()
			store = nil
			return err
		}
		return nil
	},
}

// applyFlags layers command-line overrides onto the loaded config.
func applyFlags(c *config.Config) {
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagEphemeral {
		c.Backend = "memory"
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: badger, sqlite, charm or memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/mapty)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep workouts in memory only")
}
