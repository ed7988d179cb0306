package jsonschema

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
)

// Compiler turns schema descriptors into draft-07 JSON Schema documents. A
// Compiler is immutable once built and may be shared between goroutines: each
// Compile call owns its definitions registry.
type Compiler struct {
	opts      options
	telemetry *telemetry
}

// New constructs a Compiler with the supplied options.
func New(opts ...Option) *Compiler {
	cfg := newOptions(opts...)
	return &Compiler{
		opts:      cfg,
		telemetry: newTelemetry(cfg),
	}
}

// Compile compiles schema and every schema reachable from it into a single
// document whose definitions hold one entry per schema name. Any error aborts
// the whole compilation; no partial document is returned.
func (c *Compiler) Compile(ctx context.Context, schema *descriptor.Schema) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, ErrNilSchema
	}

	ctx, span := c.telemetry.start(ctx, schema.Name)
	doc, err := c.compileRoot(schema)
	c.telemetry.finish(ctx, span, schema.Name, doc, err)
	if err != nil {
		c.opts.logger.V(1).Info("compilation failed", "schema", schema.Name, "error", err.Error())
		return nil, err
	}
	return doc, nil
}

func (c *Compiler) compileRoot(schema *descriptor.Schema) (*Document, error) {
	defs := NewDefinitions()
	root := &compilation{opts: c.opts, defs: defs, schema: schema}

	defs.begin(schema.Name, schema)
	fragment, err := root.compile()
	defs.done(schema.Name)
	if err != nil {
		return nil, err
	}
	return root.wrap(fragment)
}

// ResolveAdditionalProperties decides the additionalProperties keyword for a
// schema: an explicit boolean override wins, then the unknown-field policy,
// then false.
func ResolveAdditionalProperties(schema *descriptor.Schema) (bool, error) {
	if schema.AdditionalProperties != nil {
		value, ok := schema.AdditionalProperties.(bool)
		if !ok {
			return false, fmt.Errorf("%w: %s: additionalProperties must be true or false, got %v",
				ErrInvalidConfiguration, schema.Name, schema.AdditionalProperties)
		}
		return value, nil
	}

	switch schema.Unknown {
	case descriptor.UnknownDefault, descriptor.UnknownRaise, descriptor.UnknownExclude:
		return false, nil
	case descriptor.UnknownInclude:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s: unknown value %q for unknown", ErrInvalidConfiguration, schema.Name, schema.Unknown)
	}
}

// compilation is the state of one schema's compilation. Root and nested
// compilations differ only in nested and in the definitions scope they write
// to.
type compilation struct {
	opts   options
	defs   *Definitions
	schema *descriptor.Schema
	nested bool
	depth  int
}

// compile produces the bare {properties, type, required?} fragment.
func (c *compilation) compile() (Fragment, error) {
	properties, err := c.properties()
	if err != nil {
		return nil, err
	}
	fragment := Fragment{
		"properties": properties,
		"type":       "object",
	}
	if required := c.required(); len(required) > 0 {
		fragment["required"] = required
	}
	return fragment, nil
}

// wrap finishes a root compilation: it stores the root fragment and builds
// the document envelope.
func (c *compilation) wrap(fragment Fragment) (*Document, error) {
	if c.nested {
		return nil, errors.New("jsonschema: nested compilations are not wrapped")
	}
	additional, err := ResolveAdditionalProperties(c.schema)
	if err != nil {
		return nil, err
	}
	fragment["additionalProperties"] = additional

	if err := c.defs.Put(c.schema.Name, c.schema, fragment); err != nil {
		return nil, err
	}
	return &Document{
		Schema:      Draft07,
		Definitions: c.defs.Map(),
		Ref:         DefinitionRef(c.schema.Name),
	}, nil
}

func (c *compilation) properties() (Fragment, error) {
	properties := make(Fragment, len(c.schema.Fields))
	for _, field := range c.sortedFields() {
		fragment, err := c.fieldFragment(field)
		if err != nil {
			return nil, err
		}
		properties[field.ExternalName()] = fragment
	}
	return properties, nil
}

func (c *compilation) required() []string {
	var required []string
	for _, field := range c.sortedFields() {
		if field.Required {
			required = append(required, field.ExternalName())
		}
	}
	return required
}

func (c *compilation) sortedFields() []*descriptor.Field {
	fields := make([]*descriptor.Field, 0, len(c.schema.Fields))
	for _, field := range c.schema.Fields {
		if field != nil {
			fields = append(fields, field)
		}
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
	return fields
}

func (c *compilation) fieldError(field *descriptor.Field, err error) error {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return err
	}
	return &FieldError{Schema: c.schema.Name, Field: field.Name, Err: err}
}
