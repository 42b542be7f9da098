package ai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const analysisSchemaJSON = `{
	"type": "object",
	"required": ["summary", "fallacies", "questions"],
	"properties": {
		"summary": {"type": "string", "minLength": 1},
		"fallacies": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type", "description"],
				"properties": {
					"type": {"type": "string"},
					"description": {"type": "string"}
				}
			}
		},
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["level", "question"],
				"properties": {
					"level": {"type": "string"},
					"question": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

const questionsSchemaJSON = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["level", "question"],
				"properties": {
					"level": {"type": "string"},
					"question": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`

const evaluationSchemaJSON = `{
	"type": "object",
	"required": ["score", "feedback"],
	"properties": {
		"score": {"type": "number"},
		"feedback": {"type": "string"}
	}
}`

var (
	analysisSchema   = jsonschema.MustCompileString("analysis.json", analysisSchemaJSON)
	questionsSchema  = jsonschema.MustCompileString("questions.json", questionsSchemaJSON)
	evaluationSchema = jsonschema.MustCompileString("evaluation.json", evaluationSchemaJSON)
)

// decodeValidated unmarshals raw model output into target after checking it
// against the given schema. A schema mismatch is an upstream failure of the
// call, not something to pass through as an untyped blob.
func decodeValidated(schema *jsonschema.Schema, raw string, target interface{}) error {
	var generic interface{}
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()
	if err := decoder.Decode(&generic); err != nil {
		return fmt.Errorf("model returned invalid json: %w", err)
	}

	if err := schema.Validate(generic); err != nil {
		return fmt.Errorf("model response does not match expected schema: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}

	return nil
}
