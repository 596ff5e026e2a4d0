package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	ErrInvalidJSON   = errors.New("could not parse JSON")
	ErrInvalidFormat = errors.New("invalid state format")
)

const schemaURL = "schema://brainbuilder/appstate.json"

// shapeSchema covers what every consumer of a stored document relies on.
// progress is deliberately absent: a missing or malformed map is reset.
const shapeSchema = `{
	"type": "object",
	"required": ["version", "topics"],
	"properties": {
		"version": {"const": 1},
		"topics": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"color": {"type": "string"},
					"cards": {"type": ["array", "null"]}
				}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func appStateSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(shapeSchema), &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Parse decodes and validates a stored or imported document.
// Errors wrap ErrInvalidJSON or ErrInvalidFormat.
func Parse(data []byte) (*AppState, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	sch, err := appStateSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var raw struct {
		Topics   json.RawMessage `json:"topics"`
		Progress json.RawMessage `json:"progress"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	st := Default()
	if err := json.Unmarshal(raw.Topics, &st.Topics); err != nil {
		return nil, fmt.Errorf("%w: topics: %v", ErrInvalidFormat, err)
	}
	for _, t := range st.Topics {
		if t.Cards == nil {
			t.Cards = []Card{}
		}
	}

	if m, ok := doc.(map[string]any); ok {
		if _, isMap := m["progress"].(map[string]any); isMap {
			if err := json.Unmarshal(raw.Progress, &st.Progress); err != nil {
				return nil, fmt.Errorf("%w: progress: %v", ErrInvalidFormat, err)
			}
		}
	}
	if st.Progress == nil {
		st.Progress = map[string]*TopicProgress{}
	}
	return st, nil
}

// CheckVersion reports whether data is a JSON document with version 1.
// It is the only check the blob server applies before storing a body.
func CheckVersion(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	m, _ := doc.(map[string]any)
	if v, _ := m["version"].(float64); v != Version {
		return fmt.Errorf("%w: version must be %d", ErrInvalidFormat, Version)
	}
	return nil
}

// Encode returns the compact JSON form used for the cache and the wire.
func Encode(s *AppState) ([]byte, error) {
	return json.Marshal(s)
}

// EncodeIndent returns the pretty-printed form used for backups.
func EncodeIndent(s *AppState) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
