package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// deckSchemaDef is the JSON Schema every deck file must satisfy before the
// semantic checks in Load run.
var deckSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"description": map[string]any{
			"type": "string",
		},
		"cards": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"front": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text": map[string]any{"type": "string", "minLength": 1},
							"hint": map[string]any{"type": "string"},
						},
						"required": []any{"text"},
					},
					"back": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"text": map[string]any{"type": "string", "minLength": 1},
							"alternatives": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string", "minLength": 1},
							},
							"explanation": map[string]any{"type": "string"},
						},
						"required": []any{"text"},
					},
					"tags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"match": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"ignoreCase":    map[string]any{"type": "boolean"},
							"ignoreAccents": map[string]any{"type": "boolean"},
							"allowTypoDistance": map[string]any{
								"type":    "integer",
								"minimum": 0,
								"maximum": 3,
							},
						},
					},
				},
				"required": []any{"id", "front", "back"},
			},
		},
	},
	"required": []any{"title", "cards"},
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validateDocument checks raw deck JSON against the deck schema.
func validateDocument(raw []byte) error {
	schemaOnce.Do(func() {
		defBytes, err := json.Marshal(deckSchemaDef)
		if err != nil {
			schemaErr = fmt.Errorf("marshal deck schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse deck schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://deck.json", def); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://deck.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("deck schema validation failed: %w", err)
	}
	return nil
}
