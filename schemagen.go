// Package schemagen compiles object-schema descriptors into draft-07 JSON
// Schema documents. The heavy lifting lives in pkg/jsonschema; this package
// re-exports the common entry points.
package schemagen

import (
	"context"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
	"github.com/goliatone/go-schemagen/pkg/jsonschema"
)

// Document is the compiled JSON Schema envelope.
type Document = jsonschema.Document

// Fragment is a JSON-serializable piece of a schema document.
type Fragment = jsonschema.Fragment

// Option configures the compiler.
type Option = jsonschema.Option

// New exposes the compiler constructor from the top-level module.
func New(options ...Option) *jsonschema.Compiler {
	return jsonschema.New(options...)
}

// Compile builds a one-off compiler and compiles schema with it.
func Compile(ctx context.Context, schema *descriptor.Schema, options ...Option) (*Document, error) {
	return jsonschema.New(options...).Compile(ctx, schema)
}

// CompileJSON compiles schema and encodes the document as indented JSON.
func CompileJSON(ctx context.Context, schema *descriptor.Schema, options ...Option) ([]byte, error) {
	doc, err := Compile(ctx, schema, options...)
	if err != nil {
		return nil, err
	}
	return doc.JSON()
}

// WithRegistry forwards a name registry for nested references given by name.
func WithRegistry(registry descriptor.Registry) Option {
	return jsonschema.WithRegistry(registry)
}
