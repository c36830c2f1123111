// ABOUTME: Schema of the propose_action tool the assistant must call.
// ABOUTME: Mirrors the draft contract so tool input parses straight into a Draft.
package assistant

import "github.com/anthropics/anthropic-sdk-go"

const proposeActionToolName = "propose_action"

// proposeActionTool describes the only way the assistant may change
// state: emitting a draft for the validator to check. Exercises must be
// referenced by their numeric ids from the catalog in the system prompt.
func proposeActionTool() anthropic.ToolParam {
	setSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reps":      map[string]any{"type": "string", "description": "Rep target, e.g. \"8\" or \"8-12\""},
			"weight":    map[string]any{"type": "number", "description": "Weight in the user's unit, omit if unknown"},
			"is_warmup": map[string]any{"type": "boolean"},
		},
	}
	exerciseSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"exercise_id":  map[string]any{"type": "integer", "description": "Canonical exercise id from the catalog"},
			"name":         map[string]any{"type": "string"},
			"sets":         map[string]any{"type": "array", "items": setSchema},
			"rest_seconds": map[string]any{"type": "integer"},
			"notes":        map[string]any{"type": "string"},
		},
		"required": []string{"exercise_id"},
	}

	return anthropic.ToolParam{
		Name: proposeActionToolName,
		Description: anthropic.String(
			"Propose a workout, template, or gym to create. " +
				"The proposal is validated and shown to the user before anything is saved."),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: map[string]any{
				"kind": map[string]any{
					"type": "string",
					"enum": []string{"create_workout", "create_template", "create_gym"},
				},
				"confidence": map[string]any{
					"type":        "number",
					"description": "How confident you are in the proposal, 0 to 1",
				},
				"title":   map[string]any{"type": "string"},
				"summary": map[string]any{"type": "string"},
				"workout": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"space_id":    map[string]any{"type": "integer"},
						"template_id": map[string]any{"type": "integer"},
						"note":        map[string]any{"type": "string"},
						"exercises":   map[string]any{"type": "array", "items": exerciseSchema},
					},
				},
				"template": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":      map[string]any{"type": "string"},
						"space_id":  map[string]any{"type": "integer"},
						"exercises": map[string]any{"type": "array", "items": exerciseSchema},
					},
					"required": []string{"name"},
				},
				"gym": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":          map[string]any{"type": "string"},
						"description":   map[string]any{"type": "string"},
						"equipment_ids": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"is_default":    map[string]any{"type": "boolean"},
						"is_temporary":  map[string]any{"type": "boolean"},
					},
					"required": []string{"name"},
				},
			},
			Required: []string{"kind"},
		},
	}
}
