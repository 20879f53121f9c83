// ABOUTME: CLI commands for listing and showing workouts.
// ABOUTME: Lines mirror the map page's list entries.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listType  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List workouts",
	Long: `List workouts in the order they were recorded.

OUTPUT FORMAT:

  Each line shows: ID  DATE  DESCRIPTION  DETAILS

  The ID is the 8-character short ID accepted by 'mapty show'.

EXAMPLES:

  mapty list                    # Last 20 workouts
  mapty list --type running     # Only runs
  mapty list -n 0               # Everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter *models.WorkoutType
		if listType != "" {
			wt, err := models.ParseWorkoutType(listType)
			if err != nil {
				return err
			}
			filter = &wt
		}

		workouts := models.FilterByType(store.Load(), filter)
		if listLimit > 0 && len(workouts) > listLimit {
			workouts = workouts[len(workouts)-listLimit:]
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		for _, w := range workouts {
			printWorkoutLine(w)
		}

		faint := color.New(color.Faint)
		for _, s := range storage.Summarize(workouts) {
			fmt.Println(faint.Sprintf("%s: %d workouts, %s km, %s min",
				s.Type.Title(), s.Count, trimFloat(s.TotalDistance), trimFloat(s.TotalDuration)))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one workout",
	Long: `Show a workout by its full ID or its 8-character short ID.

EXAMPLES:

  mapty show 1a2b3c4d`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := models.FindWorkout(store.Load(), args[0])
		if err != nil {
			return err
		}

		item := app.ItemFor(w)
		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(item.Title), w.Icon())
		fmt.Printf("  %s %s\n", faint.Sprint("ID:      "), w.ID)
		fmt.Printf("  %s %s\n", faint.Sprint("Date:    "), w.Date.Format("2006-01-02 15:04"))
		fmt.Printf("  %s %s\n", faint.Sprint("Location:"), w.Coords)
		for _, d := range item.Details {
			fmt.Printf("  %s %s %s\n", d.Icon, d.Value, d.Unit)
		}
		return nil
	},
}

func printWorkoutLine(w *models.Workout) {
	faint := color.New(color.Faint)
	item := app.ItemFor(w)

	details := make([]string, 0, len(item.Details))
	for _, d := range item.Details {
		details = append(details, fmt.Sprintf("%s %s %s", d.Icon, d.Value, d.Unit))
	}

	fmt.Printf("%s %s %s %s\n",
		faint.Sprint(w.ShortID()),
		faint.Sprint(w.Date.Format("2006-01-02 15:04")),
		padRight(item.Title, 22),
		strings.Join(details, "  "))
}

func trimFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by workout type (running, cycling)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results, most recent kept (0 for all)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
