// ABOUTME: MCP tool implementations for the lift workout store.
// ABOUTME: Resolution, history queries, and the validate/execute draft flow.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/lift/internal/draft"
	"github.com/harperreed/lift/internal/models"
	"github.com/harperreed/lift/internal/resolver"
)

func (s *Server) registerTools() {
	// resolve_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "resolve_exercise",
		Description: "Resolve a free-text exercise name to a canonical exercise ID",
	}, s.handleResolveExercise)

	// search_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Search the exercise library by name or alias",
	}, s.handleSearchExercises)

	// list_gyms
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_gyms",
		Description: "List workout spaces (gyms) and their equipment",
	}, s.handleListGyms)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List recent workout sessions",
	}, s.handleListWorkouts)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout session with all items and sets",
	}, s.handleGetWorkout)

	// last_performance
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "last_performance",
		Description: "Get the most recent sets performed for given exercises",
	}, s.handleLastPerformance)

	// validate_action
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "validate_action",
		Description: "Dry-run validate a proposed workout, template, or gym without saving",
	}, s.handleValidateAction)

	// execute_action
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "execute_action",
		Description: "Validate and commit a proposed workout, template, or gym",
	}, s.handleExecuteAction)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log one set against the active workout session",
	}, s.handleLogSet)

	// finish_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish the active workout session, optionally with a reflection",
	}, s.handleFinishWorkout)
}

// Tool input/output types

type resolveExerciseInput struct {
	Name string `json:"name" jsonschema:"Free-text exercise reference (e.g. \"db bench\")"`
}

type searchExercisesInput struct {
	Query string `json:"query" jsonschema:"Search text matched against names and aliases"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type listWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type getWorkoutInput struct {
	ID int64 `json:"id" jsonschema:"Workout session ID"`
}

type lastPerformanceInput struct {
	ExerciseIDs []int64 `json:"exercise_ids" jsonschema:"Exercise IDs to look up"`
}

type actionInput struct {
	Action draft.Draft `json:"action" jsonschema:"The proposed action draft"`
}

type validateOutput struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

type executeOutput struct {
	Kind       string   `json:"kind"`
	SessionID  int64    `json:"session_id,omitempty"`
	TemplateID int64    `json:"template_id,omitempty"`
	GymID      int64    `json:"gym_id,omitempty"`
	GymName    string   `json:"gym_name,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Message    string   `json:"message"`
}

type logSetInput struct {
	Exercise string   `json:"exercise" jsonschema:"Exercise name or alias"`
	Reps     string   `json:"reps" jsonschema:"Reps performed (e.g. \"8\")"`
	Weight   *float64 `json:"weight,omitempty" jsonschema:"Weight used"`
	Warmup   bool     `json:"warmup,omitempty" jsonschema:"Mark the set as a warmup"`
}

type finishWorkoutInput struct {
	Reflection string `json:"reflection,omitempty" jsonschema:"How the workout went"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleResolveExercise(ctx context.Context, req *mcp.CallToolRequest, input resolveExerciseInput) (*mcp.CallToolResult, resolver.Resolution, error) {
	ix, err := s.index()
	if err != nil {
		return nil, resolver.Resolution{}, err
	}
	return nil, ix.Resolve(input.Name, s.policy), nil
}

func (s *Server) handleSearchExercises(ctx context.Context, req *mcp.CallToolRequest, input searchExercisesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	exercises, err := s.db.ListExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	q := resolver.Normalize(input.Query)
	var matches []map[string]any
	for _, e := range exercises {
		if !matchesQuery(q, e.Name, e.Aliases) {
			continue
		}
		matches = append(matches, map[string]any{
			"id":              e.ID,
			"name":            e.Name,
			"aliases":         e.Aliases,
			"primary_muscles": e.PrimaryMuscles,
			"equipment":       e.RequiredEquipment,
		})
		if len(matches) >= input.Limit {
			break
		}
	}

	if len(matches) == 0 {
		return nil, map[string]any{"message": "No exercises found."}, nil
	}
	return nil, matches, nil
}

func matchesQuery(q, name string, aliases []string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(resolver.Normalize(name), q) {
		return true
	}
	for _, a := range aliases {
		if strings.Contains(resolver.Normalize(a), q) {
			return true
		}
	}
	return false
}

func (s *Server) handleListGyms(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	spaces, err := s.db.ListSpaces()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list gyms: %w", err)
	}
	if len(spaces) == 0 {
		return nil, map[string]any{"message": "No gyms configured."}, nil
	}
	return nil, spaces, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	sessions, err := s.db.ListSessions(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if len(sessions) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	session, exercises, err := s.db.GetSessionWithSets(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("workout not found: %d", input.ID)
	}

	names := make(map[int64]string, len(exercises))
	for id, e := range exercises {
		names[id] = e.Name
	}
	return nil, map[string]any{
		"session":        session,
		"exercise_names": names,
	}, nil
}

func (s *Server) handleLastPerformance(ctx context.Context, req *mcp.CallToolRequest, input lastPerformanceInput) (*mcp.CallToolResult, any, error) {
	perf, err := s.db.LastPerformance(input.ExerciseIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load performance: %w", err)
	}
	if len(perf) == 0 {
		return nil, map[string]any{"message": "No history for those exercises."}, nil
	}
	return nil, perf, nil
}

func (s *Server) handleValidateAction(ctx context.Context, req *mcp.CallToolRequest, input actionInput) (*mcp.CallToolResult, validateOutput, error) {
	snap, err := draft.SnapshotFrom(s.db)
	if err != nil {
		return nil, validateOutput{}, fmt.Errorf("failed to snapshot store: %w", err)
	}

	result := draft.Validate(&input.Action, snap)
	return nil, validateOutput{
		Valid:    result.Valid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}, nil
}

func (s *Server) handleExecuteAction(ctx context.Context, req *mcp.CallToolRequest, input actionInput) (*mcp.CallToolResult, executeOutput, error) {
	snap, err := draft.SnapshotFrom(s.db)
	if err != nil {
		return nil, executeOutput{}, fmt.Errorf("failed to snapshot store: %w", err)
	}

	result := draft.Validate(&input.Action, snap)
	if !result.Valid {
		return nil, executeOutput{}, fmt.Errorf("draft is invalid: %s", strings.Join(result.Errors, "; "))
	}

	res, err := s.executor.Execute(result.Normalized)
	if err != nil {
		return nil, executeOutput{}, fmt.Errorf("failed to execute draft: %w", err)
	}

	out := executeOutput{
		Kind:       string(res.Kind),
		SessionID:  res.SessionID,
		TemplateID: res.TemplateID,
		GymID:      res.SpaceID,
		GymName:    res.SpaceName,
		Warnings:   result.Warnings,
	}
	switch res.Kind {
	case draft.KindCreateWorkout:
		out.Message = fmt.Sprintf("Created workout session %d", res.SessionID)
	case draft.KindCreateTemplate:
		out.Message = fmt.Sprintf("Created template %d", res.TemplateID)
	case draft.KindCreateGym:
		out.Message = fmt.Sprintf("Created gym %q (ID: %d)", res.SpaceName, res.SpaceID)
	}
	return nil, out, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	session, err := s.db.ActiveSession()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load active session: %w", err)
	}
	if session == nil {
		return nil, simpleOutput{}, fmt.Errorf("no active workout; create one with execute_action first")
	}

	ix, err := s.index()
	if err != nil {
		return nil, simpleOutput{}, err
	}
	res := ix.Resolve(input.Exercise, s.policy)
	if res.Status != resolver.StatusResolved {
		names := make([]string, 0, len(res.Suggestions))
		for _, sug := range res.Suggestions {
			names = append(names, sug.Name)
		}
		return nil, simpleOutput{}, fmt.Errorf("could not resolve %q; did you mean: %s", input.Exercise, strings.Join(names, ", "))
	}

	set, err := s.db.AddSetToSession(session.ID, res.ExerciseID, models.SessionSet{
		Reps:       input.Reps,
		Weight:     input.Weight,
		IsWarmup:   input.Warmup,
		IsComplete: true,
	})
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log set: %w", err)
	}

	name := ix.Exercise(res.ExerciseID).Name
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %s set %d: %s reps", name, set.SetNumber, set.Reps),
	}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input finishWorkoutInput) (*mcp.CallToolResult, simpleOutput, error) {
	session, err := s.db.ActiveSession()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load active session: %w", err)
	}
	if session == nil {
		return nil, simpleOutput{}, fmt.Errorf("no active workout")
	}

	if err := s.db.FinishSession(session.ID, input.Reflection); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to finish workout: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Finished workout session %d", session.ID),
	}, nil
}

// index builds a fresh resolver index from current exercises.
func (s *Server) index() (*resolver.Index, error) {
	exercises, err := s.db.ListExercises()
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return resolver.BuildIndex(exercises), nil
}
