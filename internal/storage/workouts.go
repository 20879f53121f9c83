// ABOUTME: WorkoutStore persists the whole workout list under one slot key.
// ABOUTME: The record layout matches the browser's localStorage JSON for workouts.
package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/harperreed/mapty/internal/models"
)

// WorkoutsKey is the slot key holding the serialized workout list.
const WorkoutsKey = "workouts"

// Record is the plain-data form of a workout. Variant fields are present
// only for the matching type.
type Record struct {
	Date          time.Time  `json:"date" yaml:"date"`
	ID            string     `json:"id" yaml:"id"`
	Coords        [2]float64 `json:"coords" yaml:"coords,flow"`
	Distance      float64    `json:"distance" yaml:"distance"`
	Duration      float64    `json:"duration" yaml:"duration"`
	Type          string     `json:"type" yaml:"type"`
	Description   string     `json:"description" yaml:"description"`
	Cadence       *float64   `json:"cadence,omitempty" yaml:"cadence,omitempty"`
	Pace          *float64   `json:"pace,omitempty" yaml:"pace,omitempty"`
	ElevationGain *float64   `json:"elevationGain,omitempty" yaml:"elevation_gain,omitempty"`
	Speed         *float64   `json:"speed,omitempty" yaml:"speed,omitempty"`
}

// RecordFromWorkout flattens a workout into a Record.
func RecordFromWorkout(w *models.Workout) Record {
	r := Record{
		Date:        w.Date,
		ID:          w.ID,
		Coords:      [2]float64{w.Coords.Lat, w.Coords.Lng},
		Distance:    w.Distance,
		Duration:    w.Duration,
		Type:        string(w.Type),
		Description: w.Description,
	}
	switch w.Type {
	case models.WorkoutRunning:
		r.Cadence = float64Ptr(w.Running.Cadence)
		r.Pace = float64Ptr(w.Running.Pace)
	case models.WorkoutCycling:
		r.ElevationGain = float64Ptr(w.Cycling.ElevationGain)
		r.Speed = float64Ptr(w.Cycling.Speed)
	}
	return r
}

// Workout rebuilds the tagged workout. Derived metrics are recomputed from
// the base fields; the stored description is kept. Records whose base
// fields would not pass form validation are rejected.
func (r Record) Workout() (*models.Workout, error) {
	wt, err := models.ParseWorkoutType(r.Type)
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		return nil, fmt.Errorf("workout record has no id")
	}
	if !positive(r.Distance) || !positive(r.Duration) {
		return nil, fmt.Errorf("workout %s: distance and duration must be positive", r.ID)
	}
	if wt == models.WorkoutRunning && (r.Cadence == nil || !positive(*r.Cadence)) {
		return nil, fmt.Errorf("workout %s: running cadence must be positive", r.ID)
	}
	if wt == models.WorkoutCycling && r.ElevationGain != nil && !finite(*r.ElevationGain) {
		return nil, fmt.Errorf("workout %s: elevation gain must be finite", r.ID)
	}

	w := &models.Workout{
		ID:          r.ID,
		Date:        r.Date,
		Coords:      models.Coords{Lat: r.Coords[0], Lng: r.Coords[1]},
		Distance:    r.Distance,
		Duration:    r.Duration,
		Description: r.Description,
		Type:        wt,
	}
	switch wt {
	case models.WorkoutRunning:
		w.Running = &models.Running{Cadence: deref(r.Cadence)}
	case models.WorkoutCycling:
		w.Cycling = &models.Cycling{ElevationGain: deref(r.ElevationGain)}
	}
	w.Derive()
	if w.Description == "" {
		w.Description = models.DescriptionFor(w.Type, w.Date)
	}
	return w, nil
}

// WorkoutStore reads and writes the workout list in a Slot.
type WorkoutStore struct {
	slot Slot
}

// NewWorkoutStore wraps a slot.
func NewWorkoutStore(slot Slot) *WorkoutStore {
	return &WorkoutStore{slot: slot}
}

// Slot returns the underlying slot.
func (s *WorkoutStore) Slot() Slot {
	return s.slot
}

// Save overwrites the stored list with workouts.
func (s *WorkoutStore) Save(workouts []*models.Workout) error {
	records := make([]Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, RecordFromWorkout(w))
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal workouts: %w", err)
	}
	if err := s.slot.Set(WorkoutsKey, data); err != nil {
		return fmt.Errorf("save workouts: %w", err)
	}
	return nil
}

// Load returns the stored list, or nil if the slot is empty or holds
// something unparsable. Entries that are not a known workout type are
// dropped.
func (s *WorkoutStore) Load() []*models.Workout {
	data, err := s.slot.Get(WorkoutsKey)
	if err != nil {
		return nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	if records == nil {
		return nil
	}

	workouts := make([]*models.Workout, 0, len(records))
	for _, r := range records {
		w, err := r.Workout()
		if err != nil {
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts
}

// Clear removes the stored list.
func (s *WorkoutStore) Clear() error {
	if err := s.slot.Delete(WorkoutsKey); err != nil {
		return fmt.Errorf("clear workouts: %w", err)
	}
	return nil
}

// Close closes the underlying slot.
func (s *WorkoutStore) Close() error {
	return s.slot.Close()
}

func positive(f float64) bool {
	return finite(f) && f > 0
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func float64Ptr(f float64) *float64 {
	return &f
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
