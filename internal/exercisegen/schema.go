package exercisegen

import "github.com/rgilks/comprehendo-sub000/internal/llm"

// optionsDef is the JSON schema for a four-key A-D string map.
func optionsDef(desc string) map[string]any {
	return map[string]any{
		"type":        "object",
		"description": desc,
		"properties": map[string]any{
			"A": map[string]any{"type": "string", "minLength": 1},
			"B": map[string]any{"type": "string", "minLength": 1},
			"C": map[string]any{"type": "string", "minLength": 1},
			"D": map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"A", "B", "C", "D"},
		"additionalProperties": false,
	}
}

// ExerciseSchema defines the JSON schema for exercise generation responses.
var ExerciseSchema = &llm.Schema{
	Name:        "reading-exercise",
	Description: "A reading-comprehension exercise: passage, question, four options, explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"paragraph": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The reading passage in the passage language, calibrated to the CEFR level",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The topic the passage is about",
			},
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One comprehension question about the passage, in the question language",
			},
			"options":      optionsDef("Four answer options keyed A-D, in the question language"),
			"explanations": optionsDef("Per-option explanation of why it is correct or incorrect"),
			"correctAnswer": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D"},
				"description": "The key of the single correct option",
			},
			"relevantText": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Verbatim quote from the paragraph that supports the correct answer",
			},
		},
		"required": []any{
			"paragraph", "topic", "question", "options",
			"explanations", "correctAnswer", "relevantText",
		},
		"additionalProperties": false,
	},
}
