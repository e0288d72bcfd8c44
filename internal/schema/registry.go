// Package schema embeds the JSON Schemas records are validated against.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// registry lists all embedded schema names.
var registry = []string{"Creature"}

// Schema is one embedded record schema with its compiled validator.
type Schema struct {
	Name     string // record kind (e.g., "Creature")
	Raw      []byte // schema document as embedded
	compiled *jsonschema.Schema
}

var (
	mu       sync.Mutex
	compiled = make(map[string]*Schema)
)

// All returns all schemas, compiling each on first use.
func All() ([]*Schema, error) {
	schemas := make([]*Schema, 0, len(registry))
	for _, name := range registry {
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// Get returns a single schema by name, compiling it on first use.
func Get(name string) (*Schema, error) {
	mu.Lock()
	defer mu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	known := false
	for _, n := range registry {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("schema not found: %s", name)
	}

	filename := fmt.Sprintf("schemas/%s.json", strings.ToLower(name))
	raw, err := schemaFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(filename, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", name, err)
	}
	sch, err := compiler.Compile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	s := &Schema{Name: name, Raw: raw, compiled: sch}
	compiled[name] = s
	return s, nil
}

// Validate checks an already-decoded JSON document against the schema.
func (s *Schema) Validate(doc any) error {
	if err := s.compiled.Validate(doc); err != nil {
		return fmt.Errorf("document does not match %s schema: %w", s.Name, err)
	}
	return nil
}

// ValidateRecord round-trips a record through JSON and validates the result.
// Validation sees exactly what serialization produces.
func (s *Schema) ValidateRecord(rec any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to serialize record: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return s.Validate(doc)
}
