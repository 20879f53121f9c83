// ABOUTME: Tests for the headless session used by the CLI and MCP server.
// ABOUTME: Covers recording both types, alert-backed errors and form value formatting.
package ui

import (
	"testing"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRecord(t *testing.T) {
	store := storage.NewWorkoutStore(storage.NewMemorySlot())
	here := models.Coords{Lat: 1, Lng: 2}
	s := NewSession(store, app.Options{}, &here)

	w, err := s.Record(models.Coords{Lat: 10, Lng: 20}, FormValuesFor(models.WorkoutCycling, 20, 60, 150))
	require.NoError(t, err)
	assert.Equal(t, 20.0, w.Cycling.Speed)
	assert.Equal(t, models.Coords{Lat: 10, Lng: 20}, w.Coords)
	assert.Equal(t, models.WorkoutCycling, s.Surface.Form.Row)
	assert.Len(t, store.Load(), 1)
}

func TestSessionRecordInvalid(t *testing.T) {
	store := storage.NewWorkoutStore(storage.NewMemorySlot())
	here := models.Coords{Lat: 1, Lng: 2}
	s := NewSession(store, app.Options{}, &here)

	_, err := s.Record(here, FormValuesFor(models.WorkoutRunning, 5, 25, 0))
	require.Error(t, err)
	assert.Equal(t, app.AlertInvalidInput, err.Error())
	assert.Nil(t, store.Load())
}

func TestSessionWithoutLocation(t *testing.T) {
	store := storage.NewWorkoutStore(storage.NewMemorySlot())
	s := NewSession(store, app.Options{}, nil)

	_, err := s.Record(models.Coords{}, FormValuesFor(models.WorkoutRunning, 5, 25, 180))
	require.Error(t, err)
	assert.Equal(t, app.AlertNoLocation, err.Error())
}

func TestFormValuesFor(t *testing.T) {
	assert.Equal(t,
		app.FormValues{Type: "running", Distance: "5.5", Duration: "25", Cadence: "180"},
		FormValuesFor(models.WorkoutRunning, 5.5, 25, 180))
	assert.Equal(t,
		app.FormValues{Type: "cycling", Distance: "20", Duration: "60", Elevation: "-10"},
		FormValuesFor(models.WorkoutCycling, 20, 60, -10))
}
