// ABOUTME: MCP resource implementations for the gym workout store.
// ABOUTME: Provides gym://catalog and gym://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// gym://catalog - exercises grouped by muscle group
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://catalog",
		Name:        "Exercise Catalog",
		Description: "All exercises grouped by muscle group",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// gym://today - workouts logged today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://today",
		Name:        "Today's Workouts",
		Description: "All workouts logged today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	grouped, err := s.repo.ExercisesByGroup()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	// Keyed by group name in display order, with the display metadata
	// alongside so a client can render headings.
	groups := make([]map[string]any, 0, len(models.AllMuscleGroups))
	for _, g := range models.AllMuscleGroups {
		info := models.MuscleGroupInfo[g]
		groups = append(groups, map[string]any{
			"group":     g,
			"label":     info.Label,
			"icon":      info.Icon,
			"color":     info.Color,
			"exercises": grouped[g],
		})
	}

	data, err := json.MarshalIndent(map[string]any{"groups": groups}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gym://catalog",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.saver.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush pending save: %w", err)
	}

	today := models.Today()
	workouts, err := s.repo.WorkoutsByDate(today)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	result := map[string]any{
		"date":     today,
		"workouts": workouts,
		"count":    len(workouts),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "gym://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
