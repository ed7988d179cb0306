package jsonschema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType reports a field whose type has no mapping and no override.
	ErrUnsupportedType = errors.New("jsonschema: unsupported field type")
	// ErrInvalidConfiguration reports an additionalProperties or unknown policy
	// value outside the recognised set.
	ErrInvalidConfiguration = errors.New("jsonschema: invalid configuration")
	// ErrNameCollision reports two distinct schemas compiled under one name.
	ErrNameCollision = errors.New("jsonschema: definition name collision")
	// ErrRegistryMissing reports a nested reference by name without a registry.
	ErrRegistryMissing = errors.New("jsonschema: schema registry is not configured")
	// ErrNilSchema reports a nil schema handed to the compiler.
	ErrNilSchema = errors.New("jsonschema: schema is nil")
)

// FieldError locates a compilation failure on a schema field.
type FieldError struct {
	Schema string
	Field  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Schema, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
