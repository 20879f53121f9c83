// ABOUTME: WorkoutType enum and per-type display data for workouts.
// ABOUTME: Running and cycling are the only variants; lookups are exhaustive.
package models

import (
	"fmt"
	"strings"
)

// WorkoutType discriminates the workout variants.
type WorkoutType string

const (
	WorkoutRunning WorkoutType = "running"
	WorkoutCycling WorkoutType = "cycling"
)

// AllWorkoutTypes returns all valid workout types.
var AllWorkoutTypes = []WorkoutType{WorkoutRunning, WorkoutCycling}

// WorkoutIcons maps workout types to the emoji shown on popups and list items.
var WorkoutIcons = map[WorkoutType]string{
	WorkoutRunning: "🏃‍♂️",
	WorkoutCycling: "🚴‍♀️",
}

// IsValidWorkoutType checks if a string is a valid workout type.
func IsValidWorkoutType(s string) bool {
	for _, wt := range AllWorkoutTypes {
		if string(wt) == s {
			return true
		}
	}
	return false
}

// ParseWorkoutType accepts a type name in any case.
func ParseWorkoutType(s string) (WorkoutType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !IsValidWorkoutType(s) {
		return "", fmt.Errorf("unknown workout type: %q (valid: running, cycling)", s)
	}
	return WorkoutType(s), nil
}

// Icon returns the emoji for the type.
func (t WorkoutType) Icon() string {
	return WorkoutIcons[t]
}

// Title returns the type name with its first letter upper-cased.
func (t WorkoutType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
