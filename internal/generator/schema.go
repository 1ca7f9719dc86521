package generator

import "github.com/abhisek/edugen/internal/llm"

// DraftSchema defines the JSON schema for generated content. Counts are
// enforced by the validators rather than minItems, which strict
// structured-output modes reject.
var DraftSchema = &llm.Schema{
	Name:        "content-draft",
	Description: "An explanation of a topic followed by multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "A clear, age-appropriate explanation of the topic in 2-3 paragraphs",
			},
			"mcqs": map[string]any{
				"type":        "array",
				"description": "The multiple-choice questions",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": `Exactly 4 options labeled "A) ...", "B) ...", "C) ...", "D) ..."`,
						},
						"answer": map[string]any{
							"type":        "string",
							"description": `The correct option, e.g. "B) Acute"`,
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"explanation", "mcqs"},
		"additionalProperties": false,
	},
}
