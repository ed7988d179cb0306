// Package descriptor holds the read-only object-schema descriptions consumed by
// the jsonschema compiler.
//
// A Schema is a named, ordered list of Fields plus schema-level configuration
// (additionalProperties override, unknown-field policy). Fields declare a Type
// from a small specialization hierarchy, optional constraints, metadata and,
// for nested fields, a target schema given directly or by name.
//
// The package never parses or loads descriptions; callers build them in code
// and hand them to the compiler together with an optional Registry for
// resolving nested references by name.
package descriptor
