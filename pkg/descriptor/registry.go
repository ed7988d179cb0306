package descriptor

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSchemaNotFound is returned when a registry has no schema for a name.
var ErrSchemaNotFound = errors.New("descriptor: schema not found")

// Registry resolves nested references given by schema name.
type Registry interface {
	Lookup(name string) (*Schema, error)
}

// MapRegistry is an in-memory Registry keyed by schema name.
type MapRegistry struct {
	schemas map[string]*Schema
}

// NewRegistry constructs a registry holding the supplied schemas.
func NewRegistry(schemas ...*Schema) *MapRegistry {
	reg := &MapRegistry{schemas: make(map[string]*Schema, len(schemas))}
	for _, schema := range schemas {
		reg.Register(schema)
	}
	return reg
}

// Register adds or replaces a schema under its name.
func (r *MapRegistry) Register(schema *Schema) {
	if schema == nil {
		return
	}
	if r.schemas == nil {
		r.schemas = make(map[string]*Schema)
	}
	r.schemas[schema.Name] = schema
}

// Lookup implements Registry.
func (r *MapRegistry) Lookup(name string) (*Schema, error) {
	if r != nil {
		if schema, ok := r.schemas[name]; ok {
			return schema, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
}

// Names returns the registered schema names in sorted order.
func (r *MapRegistry) Names() []string {
	if r == nil || len(r.schemas) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
