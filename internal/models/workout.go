// ABOUTME: Workout model: a shared base record plus one running or cycling payload.
// ABOUTME: Derived metrics (pace, speed) and the description are computed at construction.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coords) String() string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lng)
}

// Workout is a recorded activity session. Exactly one of Running or Cycling
// is set, matching Type.
type Workout struct {
	ID          string
	Date        time.Time
	Coords      Coords
	Distance    float64 // km
	Duration    float64 // minutes
	Description string
	Type        WorkoutType

	Running *Running
	Cycling *Cycling
}

// Running holds the running-only fields.
type Running struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km, derived
}

// Cycling holds the cycling-only fields.
type Cycling struct {
	ElevationGain float64 // meters
	Speed         float64 // km/h, derived
}

// NewID returns a time-ordered UUID (v7) string. The leading bits encode the
// creation timestamp; the rest is random.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewRunning creates a running workout recorded now.
func NewRunning(coords Coords, distance, duration, cadence float64) *Workout {
	return NewRunningAt(time.Now(), coords, distance, duration, cadence)
}

// NewRunningAt creates a running workout with a custom creation date.
func NewRunningAt(date time.Time, coords Coords, distance, duration, cadence float64) *Workout {
	w := newWorkout(date, WorkoutRunning, coords, distance, duration)
	w.Running = &Running{Cadence: cadence}
	w.Derive()
	w.setDescription()
	return w
}

// NewCycling creates a cycling workout recorded now.
func NewCycling(coords Coords, distance, duration, elevationGain float64) *Workout {
	return NewCyclingAt(time.Now(), coords, distance, duration, elevationGain)
}

// NewCyclingAt creates a cycling workout with a custom creation date.
func NewCyclingAt(date time.Time, coords Coords, distance, duration, elevationGain float64) *Workout {
	w := newWorkout(date, WorkoutCycling, coords, distance, duration)
	w.Cycling = &Cycling{ElevationGain: elevationGain}
	w.Derive()
	w.setDescription()
	return w
}

func newWorkout(date time.Time, t WorkoutType, coords Coords, distance, duration float64) *Workout {
	return &Workout{
		ID:       NewID(),
		Date:     date,
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Type:     t,
	}
}

// Derive recomputes the variant's derived metric from the base fields.
func (w *Workout) Derive() {
	switch w.Type {
	case WorkoutRunning:
		if w.Running != nil {
			w.Running.Pace = w.Duration / w.Distance
		}
	case WorkoutCycling:
		if w.Cycling != nil {
			w.Cycling.Speed = w.Distance / (w.Duration / 60)
		}
	}
}

// setDescription must run after Type and Date are fixed.
func (w *Workout) setDescription() {
	w.Description = DescriptionFor(w.Type, w.Date)
}

// DescriptionFor builds the "{Type} on {Month} {Day}" label.
func DescriptionFor(t WorkoutType, date time.Time) string {
	return fmt.Sprintf("%s on %s %d", t.Title(), date.Month(), date.Day())
}

// Icon returns the emoji for the workout's type.
func (w *Workout) Icon() string {
	return w.Type.Icon()
}

// ShortID returns the trailing random part of the ID, for display.
func (w *Workout) ShortID() string {
	if len(w.ID) <= 8 {
		return w.ID
	}
	return w.ID[len(w.ID)-8:]
}

// Valid reports whether the variant payload matches the type tag.
func (w *Workout) Valid() bool {
	switch w.Type {
	case WorkoutRunning:
		return w.Running != nil && w.Cycling == nil
	case WorkoutCycling:
		return w.Cycling != nil && w.Running == nil
	default:
		return false
	}
}

// Clone returns a deep copy.
func (w *Workout) Clone() *Workout {
	c := *w
	if w.Running != nil {
		r := *w.Running
		c.Running = &r
	}
	if w.Cycling != nil {
		cy := *w.Cycling
		c.Cycling = &cy
	}
	return &c
}

// FilterByType returns the workouts of one type, preserving order.
// A nil type returns every workout.
func FilterByType(workouts []*Workout, t *WorkoutType) []*Workout {
	var out []*Workout
	for _, w := range workouts {
		if t != nil && w.Type != *t {
			continue
		}
		out = append(out, w)
	}
	return out
}

// FindWorkout returns the first workout whose ID equals ref. If none match
// exactly, a ref that is a suffix of exactly one ID (as printed by ShortID)
// resolves to that workout.
func FindWorkout(workouts []*Workout, ref string) (*Workout, error) {
	for _, w := range workouts {
		if w.ID == ref {
			return w, nil
		}
	}

	var match *Workout
	for _, w := range workouts {
		if ref != "" && strings.HasSuffix(w.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id %s: matches multiple workouts", ref)
			}
			match = w
		}
	}
	if match == nil {
		return nil, fmt.Errorf("not found: %s", ref)
	}
	return match, nil
}
