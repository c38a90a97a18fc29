package store

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator checks stored blobs against the JSON Schema registered for their key.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read embedded schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile("schemas/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		key := strings.TrimSuffix(e.Name(), ".json")
		if err := compiler.AddResource(schemaURL(key), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", key, err)
		}
		keys = append(keys, key)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(keys))}
	for _, key := range keys {
		s, err := compiler.Compile(schemaURL(key))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", key, err)
		}
		v.schemas[key] = s
	}
	return v, nil
}

// Validate checks data against the schema for key.
// Keys without a schema pass as long as data is valid JSON.
func (v *Validator) Validate(key string, data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}

	s, ok := v.schemas[key]
	if !ok {
		return nil
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("validate %s: %w", key, err)
	}
	return nil
}

// HasSchema reports whether a schema is registered for key.
func (v *Validator) HasSchema(key string) bool {
	_, ok := v.schemas[key]
	return ok
}

func schemaURL(key string) string {
	return "https://todolist.local/schemas/" + key + ".json"
}
