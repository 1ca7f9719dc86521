package reviewer

import "github.com/abhisek/edugen/internal/llm"

// VerdictSchema accepts the shapes reviewers are known to drift into:
// feedback as a list, a single string, or missing altogether. It is Loose,
// so providers are only asked for a JSON object and the shape is checked
// locally.
var VerdictSchema = &llm.Schema{
	Name:        "review-verdict",
	Description: "A pass/fail review decision with feedback points",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{
				"type":        "string",
				"description": `"pass" or "fail"`,
			},
			"feedback": map[string]any{
				"type":        []any{"array", "string", "null"},
				"description": "Specific, actionable feedback points",
			},
		},
	},
	Loose: true,
}
