package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownPolicy tells how a schema treats fields it does not declare.
type UnknownPolicy string

const (
	UnknownDefault UnknownPolicy = ""
	UnknownRaise   UnknownPolicy = "raise"
	UnknownExclude UnknownPolicy = "exclude"
	UnknownInclude UnknownPolicy = "include"
)

// ErrUnknownField is returned when a projection names a field the schema does
// not declare.
var ErrUnknownField = errors.New("descriptor: unknown field")

// Schema is a named, ordered collection of fields plus schema-level options.
type Schema struct {
	Name   string
	Fields []*Field

	// AdditionalProperties overrides the unknown policy when non-nil. Only
	// boolean values are valid; the compiler rejects anything else.
	AdditionalProperties any
	Unknown              UnknownPolicy

	origin *Schema
}

// Origin returns the schema a projection was derived from, or s itself.
func (s *Schema) Origin() *Schema {
	if s.origin != nil {
		return s.origin
	}
	return s
}

// Field looks up a field by declared name.
func (s *Schema) Field(name string) (*Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return nil, false
}

// Project returns a copy of s restricted to only (when non-empty) and without
// exclude. Dotted paths such as "pets.id" keep or drop the parent field and
// push the remainder down to the nested field's own only/exclude lists. The
// receiver is never modified.
func (s *Schema) Project(only, exclude []string) (*Schema, error) {
	projected := &Schema{
		Name:                 s.Name,
		AdditionalProperties: s.AdditionalProperties,
		Unknown:              s.Unknown,
		origin:               s.Origin(),
	}
	if len(only) == 0 && len(exclude) == 0 {
		projected.Fields = append([]*Field(nil), s.Fields...)
		return projected, nil
	}

	keep := make(map[string][]string)
	for _, path := range only {
		head, rest := splitPath(path)
		if _, ok := s.Field(head); !ok {
			return nil, fmt.Errorf("%w: %q in only for %s", ErrUnknownField, head, s.Name)
		}
		if _, seen := keep[head]; !seen {
			keep[head] = nil
		}
		if rest != "" {
			keep[head] = append(keep[head], rest)
		}
	}

	drop := make(map[string]bool)
	pushed := make(map[string][]string)
	for _, path := range exclude {
		head, rest := splitPath(path)
		if _, ok := s.Field(head); !ok {
			return nil, fmt.Errorf("%w: %q in exclude for %s", ErrUnknownField, head, s.Name)
		}
		if rest == "" {
			drop[head] = true
			continue
		}
		pushed[head] = append(pushed[head], rest)
	}

	for _, field := range s.Fields {
		if drop[field.Name] {
			continue
		}
		nestedOnly, kept := keep[field.Name]
		if len(only) > 0 && !kept {
			continue
		}
		if len(nestedOnly) == 0 && len(pushed[field.Name]) == 0 {
			projected.Fields = append(projected.Fields, field)
			continue
		}
		copied := field.clone()
		copied.Only = append(copied.Only, nestedOnly...)
		copied.Exclude = append(copied.Exclude, pushed[field.Name]...)
		projected.Fields = append(projected.Fields, copied)
	}
	return projected, nil
}

func splitPath(path string) (string, string) {
	head, rest, _ := strings.Cut(path, ".")
	return head, rest
}
