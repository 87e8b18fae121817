package extract

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bulkSchemaDef is the JSON Schema for the bulk-generation reply envelope.
// Bulk batches are validated against it after a cascade tier succeeds,
// because the orchestrator depends on exact, well-formed counts.
var bulkSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "integer"},
					"passage":  map[string]any{"type": "string"},
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 4,
						"maxItems": 4,
					},
					"answer": map[string]any{
						"type": "string",
						"enum": []any{"A", "B", "C", "D", "a", "b", "c", "d"},
					},
				},
				"required": []any{"id", "question", "options", "answer"},
			},
		},
	},
	"required": []any{"questions"},
}

var (
	bulkSchemaOnce sync.Once
	bulkSchema     *jsonschema.Schema
	bulkSchemaErr  error
)

// compiledBulkSchema compiles the bulk envelope schema once and caches it.
func compiledBulkSchema() (*jsonschema.Schema, error) {
	bulkSchemaOnce.Do(func() {
		defBytes, err := json.Marshal(bulkSchemaDef)
		if err != nil {
			bulkSchemaErr = fmt.Errorf("marshal bulk schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			bulkSchemaErr = fmt.Errorf("parse bulk schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://bulk-questions.json"
		if err := c.AddResource(url, def); err != nil {
			bulkSchemaErr = fmt.Errorf("add bulk schema resource: %w", err)
			return
		}
		bulkSchema, bulkSchemaErr = c.Compile(url)
	})
	return bulkSchema, bulkSchemaErr
}

// validateBulkEnvelope validates recovered records against the bulk
// schema. Records are re-encoded through the wire envelope so repairs
// made by later cascade tiers are validated in canonical form.
func validateBulkEnvelope(records []wireQuestion) error {
	schema, err := compiledBulkSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(wireEnvelope{Questions: records})
	if err != nil {
		return err
	}
	var parsed any
	if err := json.Unmarshal(encoded, &parsed); err != nil {
		return err
	}

	return schema.Validate(parsed)
}
