// ABOUTME: CLI command for recording a workout.
// ABOUTME: Runs the same click-fill-submit flow the map page uses.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/ui"
	"github.com/spf13/cobra"
)

var addAt string

var addCmd = &cobra.Command{
	Use:     "add <running|cycling> <distance> <duration> <cadence|elevation>",
	Aliases: []string{"a"},
	Short:   "Record a workout",
	Long: `Record a running or cycling workout.

ARGUMENTS:

  distance    km, positive
  duration    minutes, positive
  cadence     running only: steps/min, positive
  elevation   cycling only: elevation gain in meters

The workout is placed at --at (lat,lng). Without --at the configured
location is used.

EXAMPLES:

  mapty add running 5 25 180 --at 51.5,-0.12
  mapty add cycling 20 60 150 --at 51.5,-0.12
  mapty a running 10 52 172             # uses the configured location`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		wt, err := models.ParseWorkoutType(args[0])
		if err != nil {
			return err
		}

		here := cfg.GetLocation()
		at, err := resolveLocation(addAt, here)
		if err != nil {
			return err
		}
		if here == nil {
			here = &at
		}

		values := app.FormValues{
			Type:     string(wt),
			Distance: args[1],
			Duration: args[2],
		}
		if wt == models.WorkoutRunning {
			values.Cadence = args[3]
		} else {
			values.Elevation = args[3]
		}

		session := ui.NewSession(store, cfg.AppOptions(logger), here)
		w, err := session.Record(at, values)
		if err != nil {
			return err
		}

		color.Green("✓ Added %s %s", w.Description, w.Icon())
		printWorkoutLine(w)
		return nil
	},
}

// resolveLocation picks the --at value, falling back to the configured
// location.
func resolveLocation(flag string, fallback *models.Coords) (models.Coords, error) {
	if flag != "" {
		return parseCoords(flag)
	}
	if fallback == nil {
		return models.Coords{}, fmt.Errorf("no location: pass --at lat,lng or run 'mapty config set-location lat,lng'")
	}
	return *fallback, nil
}

// parseCoords reads "lat,lng" in degrees.
func parseCoords(s string) (models.Coords, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return models.Coords{}, fmt.Errorf("invalid coordinates %q (use lat,lng)", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coords{}, fmt.Errorf("invalid latitude: %s", parts[0])
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coords{}, fmt.Errorf("invalid longitude: %s", parts[1])
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.Coords{}, fmt.Errorf("coordinates out of range: %s", s)
	}
	return models.Coords{Lat: lat, Lng: lng}, nil
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "workout location as lat,lng")
	rootCmd.AddCommand(addCmd)
}
