// Package jsonschema compiles descriptor schemas into draft-07 JSON Schema
// documents.
//
// Compilation walks a schema's fields in name order. Each field is mapped to a
// base fragment through an ordered type table (first match wins, so
// specialised types precede their parents), decorated with title, readonly,
// default and metadata keywords, and then extended with the keywords of its
// constraints. Nested fields compile their target schema into a shared
// definitions registry and point at it with a $ref; a schema that is already
// defined, or still being compiled further up the call tree, is only
// referenced, which keeps self- and mutually-recursive graphs finite.
//
// The root compilation wraps the result into the document envelope:
//
//	{
//	  "$schema": "http://json-schema.org/draft-07/schema#",
//	  "definitions": {"Person": {...}, "Pet": {...}},
//	  "$ref": "#/definitions/Person"
//	}
package jsonschema
