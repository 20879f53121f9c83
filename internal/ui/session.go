// ABOUTME: Headless App session: drives the controller through the in-memory surface.
// ABOUTME: The CLI and MCP server record workouts the same way a browser user would.
package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/harperreed/mapty/internal/app"
	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
)

// Session is a started App bound to its own surface.
type Session struct {
	Surface *Surface
	App     *app.App
}

// NewSession starts an App against store. here answers geolocation; nil
// means location is unavailable and the map never loads.
func NewSession(store *storage.WorkoutStore, opts app.Options, here *models.Coords) *Session {
	surface := NewSurface()
	a := app.New(surface.Ports(FixedLocator{Coords: here}), store, opts)
	a.Start()
	return &Session{Surface: surface, App: a}
}

// Record clicks the map at `at`, fills the form and submits. A failed
// submission returns the alerts it raised as the error.
func (s *Session) Record(at models.Coords, values app.FormValues) (*models.Workout, error) {
	if !s.Surface.Map.Click(at) {
		return nil, s.alertError(app.AlertNoLocation)
	}
	s.Surface.Form.SetType(values.Type)
	s.App.ChangeType()
	s.Surface.Form.Fill(values)

	w := s.App.Submit()
	if w == nil {
		return nil, s.alertError(app.AlertInvalidInput)
	}
	return w, nil
}

func (s *Session) alertError(fallback string) error {
	alerts := s.Surface.Alerts.Drain()
	if len(alerts) == 0 {
		return errors.New(fallback)
	}
	return errors.New(strings.Join(alerts, "; "))
}

// FormValuesFor formats numeric inputs as the form's text fields. extra is
// cadence for running and elevation gain for cycling.
func FormValuesFor(t models.WorkoutType, distance, duration, extra float64) app.FormValues {
	v := app.FormValues{
		Type:     string(t),
		Distance: formatInput(distance),
		Duration: formatInput(duration),
	}
	switch t {
	case models.WorkoutRunning:
		v.Cadence = formatInput(extra)
	case models.WorkoutCycling:
		v.Elevation = formatInput(extra)
	}
	return v
}

func formatInput(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
