package save

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// saveSchema is the JSON Schema every loaded save must satisfy before it is
// decoded into File. Kept permissive on extras so older builds can read saves
// written by newer minor versions.
const saveSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": [
    "schemaVersion", "playerName", "totalProblemsSolved",
    "totalProblemsAttempted", "currentDifficultyLevel", "sessionsPlayed",
    "unlockedRewards", "sessionHistory", "updatedAt"
  ],
  "properties": {
    "schemaVersion": {"type": "string", "minLength": 1},
    "playerName": {"type": "string", "minLength": 1},
    "totalProblemsSolved": {"type": "integer", "minimum": 0},
    "totalProblemsAttempted": {"type": "integer", "minimum": 0},
    "currentDifficultyLevel": {"type": "integer", "minimum": 1},
    "sessionsPlayed": {"type": "integer", "minimum": 0},
    "unlockedRewards": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["subjectName", "imagePath", "earnedAt", "milestoneSolvedCount"],
        "properties": {
          "subjectName": {"type": "string", "minLength": 1},
          "imagePath": {"type": "string"},
          "earnedAt": {"type": "string"},
          "milestoneSolvedCount": {"type": "integer", "minimum": 1}
        }
      }
    },
    "sessionHistory": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["sessionId", "startedAt", "solvedProblems", "attemptedProblems"],
        "properties": {
          "sessionId": {"type": "string", "minLength": 1},
          "startedAt": {"type": "string"},
          "endedAt": {"type": ["string", "null"]},
          "solvedProblems": {"type": "integer", "minimum": 0},
          "attemptedProblems": {"type": "integer", "minimum": 0}
        }
      }
    },
    "updatedAt": {"type": "string"}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateSave checks raw JSON against the save schema.
func validateSave(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("save is not valid JSON: %w", err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile save schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("save failed schema validation: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(saveSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://save.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
