package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schema describes the shape of one endpoint's response.
type schema struct {
	Name       string
	Definition map[string]any
}

var cardSchema = map[string]any{
	"type":     "object",
	"required": []string{"id"},
	"properties": map[string]any{
		"id":        map[string]any{"type": "integer"},
		"spanish":   map[string]any{"type": "string"},
		"russian":   map[string]any{"type": "string"},
		"has_audio": map[string]any{"type": "boolean"},
		"audio_url": map[string]any{"type": []string{"string", "null"}},
	},
}

var idList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "integer"},
}

var (
	cardsSchema = &schema{
		Name:       "cards",
		Definition: map[string]any{"type": "array", "items": cardSchema},
	}

	progressSchema = &schema{
		Name: "progress",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"known", "unknown"},
			"properties": map[string]any{
				"known":         idList,
				"unknown":       idList,
				"total_known":   map[string]any{"type": "integer", "minimum": 0},
				"total_unknown": map[string]any{"type": "integer", "minimum": 0},
			},
		},
	}

	statsSchema = &schema{
		Name: "stats",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"total_cards", "known", "unknown", "not_started"},
			"properties": map[string]any{
				"total_cards": map[string]any{"type": "integer"},
				"known":       map[string]any{"type": "integer"},
				"unknown":     map[string]any{"type": "integer"},
				"not_started": map[string]any{"type": "integer"},
			},
		},
	}

	modesSchema = &schema{
		Name: "modes",
		Definition: map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []string{"id"},
				"properties": map[string]any{
					"id":          map[string]any{"type": "string"},
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
				},
			},
		},
	}

	authSchema = &schema{
		Name: "auth",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"user_id", "token"},
			"properties": map[string]any{
				"user_id":     map[string]any{"type": "integer"},
				"telegram_id": map[string]any{"type": "string"},
				"username":    map[string]any{"type": []string{"string", "null"}},
				"token":       map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse validates raw JSON against s.
// Returns *MalformedResponseError on failure.
func validateResponse(endpoint string, s *schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &MalformedResponseError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(s)
	if err != nil {
		return &MalformedResponseError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("compile schema %q: %w", s.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &MalformedResponseError{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(s *schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(s.Name, compiled)
	return compiled, nil
}
