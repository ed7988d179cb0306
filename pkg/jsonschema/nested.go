package jsonschema

import (
	"fmt"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
)

// fromNested compiles the target of a nested field into the definitions
// registry, unless it is already there or still being compiled, and returns a
// $ref to it.
func (c *compilation) fromNested(field *descriptor.Field) (Fragment, error) {
	target, err := c.resolveTarget(field)
	if err != nil {
		return nil, c.fieldError(field, err)
	}
	name := target.Name

	if err := c.defs.claim(name, target); err != nil {
		return nil, c.fieldError(field, err)
	}

	switch {
	case name == c.schema.Name:
		c.opts.logger.V(2).Info("self reference", "schema", name, "field", field.Name)
	case c.defs.Has(name):
		c.opts.logger.V(2).Info("reusing definition", "schema", name, "field", field.Name)
	default:
		if err := c.compileNested(field, target); err != nil {
			return nil, err
		}
	}

	ref := Fragment{"type": "object", "$ref": DefinitionRef(name)}
	mergeMetadata(ref, field)
	c.sanitize(ref)

	if !field.Many {
		return ref, nil
	}
	var listType any = []string{"array", "null"}
	if field.Required {
		listType = "array"
	}
	return Fragment{"type": listType, "items": ref}, nil
}

func (c *compilation) resolveTarget(field *descriptor.Field) (*descriptor.Schema, error) {
	if field.Schema != nil {
		return field.Schema, nil
	}
	if field.SchemaName == "" {
		return nil, fmt.Errorf("%w: nested field has no target schema", ErrInvalidConfiguration)
	}
	if c.opts.registry == nil {
		return nil, fmt.Errorf("%w: cannot resolve %q", ErrRegistryMissing, field.SchemaName)
	}
	target, err := c.opts.registry.Lookup(field.SchemaName)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%w: registry returned nil for %q", ErrNilSchema, field.SchemaName)
	}
	return target, nil
}

// compileNested runs a nested-mode compilation of target in a child scope,
// stores its fragment and merges the child scope back.
func (c *compilation) compileNested(field *descriptor.Field, target *descriptor.Schema) error {
	projected, err := target.Project(field.Only, field.Exclude)
	if err != nil {
		return c.fieldError(field, err)
	}

	scope := c.defs.scope()
	scope.begin(target.Name, target)
	child := &compilation{
		opts:   c.opts,
		defs:   scope,
		schema: projected,
		nested: true,
		depth:  c.depth + 1,
	}
	fragment, err := child.compile()
	scope.done(target.Name)
	if err != nil {
		return err
	}

	additional, err := ResolveAdditionalProperties(target)
	if err != nil {
		return c.fieldError(field, err)
	}
	fragment["additionalProperties"] = additional

	if err := c.defs.Put(target.Name, target, fragment); err != nil {
		return c.fieldError(field, err)
	}
	if err := c.defs.Merge(scope); err != nil {
		return c.fieldError(field, err)
	}

	c.opts.logger.V(1).Info("compiled nested schema",
		"schema", target.Name,
		"parent", c.schema.Name,
		"depth", child.depth,
		"definitions", scope.Len(),
	)
	return nil
}
