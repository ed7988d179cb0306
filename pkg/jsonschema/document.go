package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Draft07 is the meta-schema URI stamped on every compiled document.
	Draft07 = "http://json-schema.org/draft-07/schema#"

	definitionsPrefix = "#/definitions/"
)

// Document is the root envelope produced by a compilation: every reachable
// schema lives in Definitions and Ref points at the root one.
type Document struct {
	Schema      string              `json:"$schema" yaml:"$schema"`
	Definitions map[string]Fragment `json:"definitions" yaml:"definitions"`
	Ref         string              `json:"$ref" yaml:"$ref"`
}

// DefinitionRef returns the $ref pointer for a definition name.
func DefinitionRef(name string) string {
	return definitionsPrefix + name
}

// DefinitionName extracts the definition name from a local $ref pointer.
func DefinitionName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, definitionsPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(ref, definitionsPrefix)
	return name, name != ""
}

// RootName returns the name of the definition the document points at.
func (d *Document) RootName() string {
	if d == nil {
		return ""
	}
	name, _ := DefinitionName(d.Ref)
	return name
}

// Root returns the root definition.
func (d *Document) Root() (Fragment, bool) {
	if d == nil {
		return nil, false
	}
	root, ok := d.Definitions[d.RootName()]
	return root, ok
}

// Map returns the document as a plain mapping.
func (d *Document) Map() map[string]any {
	definitions := make(map[string]any, len(d.Definitions))
	for name, fragment := range d.Definitions {
		definitions[name] = fragment
	}
	return map[string]any{
		"$schema":     d.Schema,
		"definitions": definitions,
		"$ref":        d.Ref,
	}
}

// JSON encodes the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode json: %w", err)
	}
	return data, nil
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: encode yaml: %w", err)
	}
	return data, nil
}
