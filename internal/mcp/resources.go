// ABOUTME: MCP resource implementations for the lift workout store.
// ABOUTME: Provides lift://catalog, lift://recent, and lift://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// lift://catalog - the exercise library
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://catalog",
		Name:        "Exercise Catalog",
		Description: "All exercises with aliases, muscles, and equipment",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// lift://recent - last 10 workout sessions
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://recent",
		Name:        "Recent Workouts",
		Description: "Last 10 workout sessions",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// lift://summary - gyms, templates, usage, and upcoming plans
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "lift://summary",
		Name:        "Training Summary",
		Description: "Gyms, templates, exercise usage, and upcoming planned workouts",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.db.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return jsonResource("lift://catalog", exercises)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sessions, err := s.db.ListSessions(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	return jsonResource("lift://recent", sessions)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	spaces, err := s.db.ListSpaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list gyms: %w", err)
	}

	templates, err := s.db.ListTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	usage, err := s.db.UsageReports()
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}

	plans, err := s.db.ListPlans(time.Now().Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := map[string]any{
		"generated_at":   time.Now().Format(time.RFC3339),
		"gyms":           spaces,
		"templates":      templates,
		"exercise_usage": usage,
		"upcoming_plans": plans,
	}
	return jsonResource("lift://summary", result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
