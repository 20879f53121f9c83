// ABOUTME: CLI command for deleting every workout.
// ABOUTME: Clears the storage slot through the App, as the page's reset button does.
package main

import (
	"github.com/fatih/color"
	"github.com/harperreed/mapty/internal/ui"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all workouts",
	Long: `Delete every stored workout, like the Reset button on the map page.

CAUTION:

  There is no confirmation and no undo. Export first if in doubt:
    mapty export -o backup.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		count := len(store.Load())

		session := ui.NewSession(store, cfg.AppOptions(logger), cfg.GetLocation())
		session.App.Reset()

		color.Yellow("✗ Deleted %d workouts", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
