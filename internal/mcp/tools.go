// ABOUTME: MCP tool implementations for workouts.
// ABOUTME: add_workout runs the same form flow as the map page; the rest read or reset the log.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/mapty/internal/models"
	"github.com/harperreed/mapty/internal/storage"
	"github.com/harperreed/mapty/internal/ui"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Record a running or cycling workout at a map location",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts in the order they were recorded, optionally filtered by type",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get one workout by ID or short ID",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workouts",
		Description: "Delete every stored workout. There is no undo",
	}, s.handleResetWorkouts)
}

// Tool input/output types

type addWorkoutInput struct {
	Type          string  `json:"type" jsonschema:"running or cycling"`
	Lat           float64 `json:"lat" jsonschema:"latitude of the workout in degrees"`
	Lng           float64 `json:"lng" jsonschema:"longitude of the workout in degrees"`
	Distance      float64 `json:"distance" jsonschema:"distance in km, positive"`
	Duration      float64 `json:"duration" jsonschema:"duration in minutes, positive"`
	Cadence       float64 `json:"cadence,omitempty" jsonschema:"running cadence in steps/min, positive"`
	ElevationGain float64 `json:"elevation_gain,omitempty" jsonschema:"cycling elevation gain in meters"`
}

type workoutOutput struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Pace        *float64 `json:"pace,omitempty"`
	Speed       *float64 `json:"speed,omitempty"`
	Message     string   `json:"message"`
}

type listWorkoutsInput struct {
	Type  string `json:"type,omitempty" jsonschema:"filter by workout type"`
	Limit int    `json:"limit,omitempty" jsonschema:"max results, most recent kept (default 20)"`
}

type listWorkoutsOutput struct {
	Count    int              `json:"count"`
	Workouts []storage.Record `json:"workouts"`
	Message  string           `json:"message,omitempty"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"workout ID or short ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	wt, err := models.ParseWorkoutType(input.Type)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	at := models.Coords{Lat: input.Lat, Lng: input.Lng}
	here := s.here
	if here == nil {
		here = &at
	}

	extra := input.Cadence
	if wt == models.WorkoutCycling {
		extra = input.ElevationGain
	}

	session := ui.NewSession(s.store, s.opts, here)
	w, err := session.Record(at, ui.FormValuesFor(wt, input.Distance, input.Duration, extra))
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to add workout: %w", err)
	}

	out := workoutOutput{
		ID:          w.ID,
		Type:        string(w.Type),
		Description: w.Description,
	}
	switch w.Type {
	case models.WorkoutRunning:
		out.Pace = &w.Running.Pace
		out.Message = fmt.Sprintf("Added %s, %.1f min/km (ID: %s)", w.Description, w.Running.Pace, w.ShortID())
	case models.WorkoutCycling:
		out.Speed = &w.Cycling.Speed
		out.Message = fmt.Sprintf("Added %s, %.1f km/h (ID: %s)", w.Description, w.Cycling.Speed, w.ShortID())
	}
	return nil, out, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var filter *models.WorkoutType
	if input.Type != "" {
		wt, err := models.ParseWorkoutType(input.Type)
		if err != nil {
			return nil, nil, err
		}
		filter = &wt
	}

	workouts := models.FilterByType(s.store.Load(), filter)
	if len(workouts) > input.Limit {
		workouts = workouts[len(workouts)-input.Limit:]
	}
	if len(workouts) == 0 {
		return nil, listWorkoutsOutput{Workouts: []storage.Record{}, Message: "No workouts found."}, nil
	}

	records := make([]storage.Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, storage.RecordFromWorkout(w))
	}
	return nil, listWorkoutsOutput{Count: len(records), Workouts: records}, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	w, err := models.FindWorkout(s.store.Load(), input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, storage.RecordFromWorkout(w), nil
}

func (s *Server) handleResetWorkouts(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	count := len(s.store.Load())
	session := ui.NewSession(s.store, s.opts, s.here)
	session.App.Reset()

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %d workouts", count),
	}, nil
}
