// ABOUTME: Export and import functionality for the workout list.
// ABOUTME: Supports JSON and YAML export; imports JSON exports or raw slot arrays.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/mapty/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version    string    `json:"version" yaml:"version"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Tool       string    `json:"tool" yaml:"tool"`
	Workouts   []Record  `json:"workouts" yaml:"workouts"`
}

// GetAllData builds an export of the stored list.
func (s *WorkoutStore) GetAllData() *ExportData {
	workouts := s.Load()
	records := make([]Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, RecordFromWorkout(w))
	}
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "mapty",
		Workouts:   records,
	}
}

// ExportJSON exports all data as JSON.
func (s *WorkoutStore) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(s.GetAllData(), "", "  ")
}

// ExportYAML exports all data as YAML.
func (s *WorkoutStore) ExportYAML() ([]byte, error) {
	return yaml.Marshal(s.GetAllData())
}

// ImportJSON appends the workouts in data to the stored list. data may be an
// ExportData document or a bare array as kept in the slot. Workouts whose ID
// is already stored are skipped. Returns the number imported.
func (s *WorkoutStore) ImportJSON(data []byte) (int, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		var export ExportData
		if err := json.Unmarshal(data, &export); err != nil {
			return 0, fmt.Errorf("unmarshal JSON: %w", err)
		}
		records = export.Workouts
	}
	return s.ImportRecords(records)
}

// ImportRecords appends records not already stored, in order.
func (s *WorkoutStore) ImportRecords(records []Record) (int, error) {
	existing := s.Load()
	seen := make(map[string]bool, len(existing))
	for _, w := range existing {
		seen[w.ID] = true
	}

	imported := 0
	for i, r := range records {
		w, err := r.Workout()
		if err != nil {
			return 0, fmt.Errorf("import workout %d: %w", i, err)
		}
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		existing = append(existing, w)
		imported++
	}

	if imported == 0 {
		return 0, nil
	}
	if err := s.Save(existing); err != nil {
		return 0, err
	}
	return imported, nil
}

// Summary aggregates totals per workout type.
type Summary struct {
	Type          models.WorkoutType `json:"type"`
	Count         int                `json:"count"`
	TotalDistance float64            `json:"total_distance_km"`
	TotalDuration float64            `json:"total_duration_min"`
}

// Summarize totals distance and duration per type, in AllWorkoutTypes order.
func Summarize(workouts []*models.Workout) []Summary {
	byType := make(map[models.WorkoutType]*Summary)
	for _, w := range workouts {
		s, ok := byType[w.Type]
		if !ok {
			s = &Summary{Type: w.Type}
			byType[w.Type] = s
		}
		s.Count++
		s.TotalDistance += w.Distance
		s.TotalDuration += w.Duration
	}

	var out []Summary
	for _, wt := range models.AllWorkoutTypes {
		if s, ok := byType[wt]; ok {
			out = append(out, *s)
		}
	}
	return out
}
