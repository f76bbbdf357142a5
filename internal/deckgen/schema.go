package deckgen

import "github.com/abhisek/flashiz/internal/llm"

// DeckSchema defines the JSON schema for LLM deck generation responses.
var DeckSchema = &llm.Schema{
	Name:        "flashcard-deck",
	Description: "A flashcard deck for a study topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short deck title derived from the topic",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "One-sentence summary of what the deck covers",
			},
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "The prompt side: a term, question, or phrase",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "The answer side, short enough to type",
						},
						"alternatives": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Other acceptable spellings or names of the answer. Empty array when none.",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A short nudge toward the answer without giving it away. Empty string when none.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences of context shown after answering",
						},
					},
					"required":             []any{"front", "back", "alternatives", "hint", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "description", "cards"},
		"additionalProperties": false,
	},
}
