package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Personal-Repositories-Space/prepme/internal/problem"
)

// problemSchema is the shape a problem file must have to be listed or
// loaded. Only the id is required; everything else is optional so that
// files written by older versions still load.
const problemSchema = `{
  "type": "object",
  "required": ["id"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "url": {"type": "string"},
    "description": {"type": "string"},
    "platformId": {"type": "string"},
    "notes": {"type": "string"},
    "solution": {"type": "string"},
    "difficulty": {"type": "string"},
    "timestamp": {"type": "integer"},
    "lastUpdated": {"type": "integer"},
    "box": {"type": "integer"},
    "lastReviewed": {"type": "integer"},
    "nextReviewDate": {"type": "integer"}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// getProblemSchema compiles the problem schema once and caches it.
func getProblemSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(problemSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse problem schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://problem.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://problem.json")
	})
	return compiledSchema, compileErr
}

// decodeProblem parses and validates a problem file. Returns false for
// anything that is not a valid problem record.
func decodeProblem(data []byte) (*problem.Record, bool) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, false
	}

	schema, err := getProblemSchema()
	if err != nil {
		return nil, false
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, false
	}

	var rec problem.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}
