// ABOUTME: Form controller: hidden/visible states, row toggling and submit validation.
// ABOUTME: Validation failures clear the inputs and alert; nothing is created.
package app

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/mapty/internal/models"
)

// FormTransitionDelay is how long the form's display transition stays off
// after an instant hide.
const FormTransitionDelay = time.Second

type formState int

const (
	formHidden formState = iota
	formVisible
)

func (s formState) String() string {
	if s == formVisible {
		return "visible"
	}
	return "hidden"
}

type formController struct {
	view  FormView
	state formState
	// at is the map click that opened the form.
	at models.Coords
}

func newFormController(view FormView) *formController {
	return &formController{view: view, state: formHidden}
}

func (f *formController) show(at models.Coords) {
	f.at = at
	f.state = formVisible
	f.view.Show()
	f.view.FocusDistance()
}

func (f *formController) hide() {
	f.view.Clear()
	f.view.Hide(FormTransitionDelay)
	f.state = formHidden
}

func (f *formController) visible() bool {
	return f.state == formVisible
}

// syncRows shows the row for the currently selected type. An unknown type
// falls back to running, the form's default.
func (f *formController) syncRows() {
	wt, err := models.ParseWorkoutType(f.view.Values().Type)
	if err != nil {
		wt = models.WorkoutRunning
	}
	f.view.ShowRow(wt)
}

// workoutInput is a validated form submission.
type workoutInput struct {
	Type      models.WorkoutType
	Distance  float64
	Duration  float64
	Cadence   float64
	Elevation float64
}

// validate checks that every field the type needs is a finite number and
// that distance and duration are positive. Running cadence must be
// positive; cycling elevation only finite.
func validate(values FormValues) (workoutInput, bool) {
	wt, err := models.ParseWorkoutType(values.Type)
	if err != nil {
		return workoutInput{}, false
	}

	distance, ok1 := parseNumber(values.Distance)
	duration, ok2 := parseNumber(values.Duration)
	if !ok1 || !ok2 || !allPositive(distance, duration) {
		return workoutInput{}, false
	}

	in := workoutInput{Type: wt, Distance: distance, Duration: duration}
	switch wt {
	case models.WorkoutRunning:
		cadence, ok := parseNumber(values.Cadence)
		if !ok || !allPositive(cadence) {
			return workoutInput{}, false
		}
		in.Cadence = cadence
	case models.WorkoutCycling:
		elevation, ok := parseNumber(values.Elevation)
		if !ok {
			return workoutInput{}, false
		}
		in.Elevation = elevation
	}
	return in, true
}

// parseNumber accepts a finite decimal number. Blank input is not a number.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func allPositive(values ...float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}
	return true
}

func (in workoutInput) build(date time.Time, at models.Coords) *models.Workout {
	switch in.Type {
	case models.WorkoutCycling:
		return models.NewCyclingAt(date, at, in.Distance, in.Duration, in.Elevation)
	default:
		return models.NewRunningAt(date, at, in.Distance, in.Duration, in.Cadence)
	}
}
