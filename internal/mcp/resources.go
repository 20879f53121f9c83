// ABOUTME: MCP resource implementations for workouts.
// ABOUTME: Provides mapty://workouts, the full list with per-type totals.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/mapty/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const workoutsURI = "mapty://workouts"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Workouts",
		Description: "Every recorded workout with totals per type",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)
}

type workoutsResource struct {
	Workouts []storage.Record  `json:"workouts"`
	Totals   []storage.Summary `json:"totals"`
}

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.store.Load()

	result := workoutsResource{
		Workouts: make([]storage.Record, 0, len(workouts)),
		Totals:   storage.Summarize(workouts),
	}
	for _, w := range workouts {
		result.Workouts = append(result.Workouts, storage.RecordFromWorkout(w))
	}
	if result.Totals == nil {
		result.Totals = []storage.Summary{}
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      workoutsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
