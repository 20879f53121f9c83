// ABOUTME: List item rendering for workouts.
// ABOUTME: Details are an exhaustive match on the workout type.
package app

import (
	"strconv"

	"github.com/harperreed/mapty/internal/models"
)

// Detail is one icon/value/unit cell of a list item.
type Detail struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// ListItem is a rendered workout entry. ID is the lookup key for clicks.
type ListItem struct {
	ID      string             `json:"id"`
	Type    models.WorkoutType `json:"type"`
	Title   string             `json:"title"`
	Details []Detail           `json:"details"`
}

// ItemFor renders a workout list entry.
func ItemFor(w *models.Workout) ListItem {
	item := ListItem{
		ID:    w.ID,
		Type:  w.Type,
		Title: w.Description,
		Details: []Detail{
			{Icon: w.Icon(), Value: formatNumber(w.Distance), Unit: "km"},
			{Icon: "⏱", Value: formatNumber(w.Duration), Unit: "min"},
		},
	}

	switch w.Type {
	case models.WorkoutRunning:
		item.Details = append(item.Details,
			Detail{Icon: "⚡️", Value: formatFixed1(w.Running.Pace), Unit: "min/km"},
			Detail{Icon: "🦶🏼", Value: formatFixed1(w.Running.Cadence), Unit: "spm"},
		)
	case models.WorkoutCycling:
		item.Details = append(item.Details,
			Detail{Icon: "⚡️", Value: formatFixed1(w.Cycling.Speed), Unit: "km/h"},
			Detail{Icon: "⛰", Value: formatNumber(w.Cycling.ElevationGain), Unit: "m"},
		)
	}
	return item
}

// formatNumber prints the shortest representation, like a JS number.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFixed1(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
