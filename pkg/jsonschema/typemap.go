package jsonschema

import (
	"fmt"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
)

// overrideKey is the metadata key holding an explicit per-field fragment.
const overrideKey = "_jsonschema_type_mapping"

// metadataKey names the nested metadata mapping kept for backwards compatibility.
const metadataKey = "metadata"

// TypeRule maps fields whose type satisfies Match to a base fragment. Rules are
// evaluated in order and the first match wins, so a rule for a specialised
// type must come before the rule for its parent.
type TypeRule struct {
	Name     string
	Match    func(*descriptor.Type) bool
	Fragment Fragment

	nested bool
}

// MatchType returns a predicate accepting target and every type derived from it.
func MatchType(target *descriptor.Type) func(*descriptor.Type) bool {
	return func(t *descriptor.Type) bool {
		return t.Is(target)
	}
}

var defaultTypeRules = []TypeRule{
	{Name: "nested", Match: MatchType(descriptor.Nested), nested: true},
	{Name: "list", Match: MatchType(descriptor.List), Fragment: Fragment{"type": "array"}},
	{Name: "dict", Match: MatchType(descriptor.Dict), Fragment: Fragment{"type": "object"}},
	{Name: "time", Match: MatchType(descriptor.Time), Fragment: Fragment{"type": "string", "format": "time"}},
	{Name: "duration", Match: MatchType(descriptor.Duration), Fragment: Fragment{"type": "string"}},
	{Name: "datetime", Match: MatchType(descriptor.DateTime), Fragment: Fragment{"type": "string", "format": "date-time"}},
	{Name: "date", Match: MatchType(descriptor.Date), Fragment: Fragment{"type": "string", "format": "date"}},
	{Name: "uuid", Match: MatchType(descriptor.UUID), Fragment: Fragment{"type": "string", "format": "uuid"}},
	{Name: "string", Match: MatchType(descriptor.String), Fragment: Fragment{"type": "string"}},
	{Name: "binary", Match: MatchType(descriptor.Binary), Fragment: Fragment{"type": "string"}},
	{Name: "decimal", Match: MatchType(descriptor.Decimal), Fragment: Fragment{"type": "number", "format": "decimal"}},
	{Name: "set", Match: MatchType(descriptor.Set), Fragment: Fragment{"type": "array"}},
	{Name: "tuple", Match: MatchType(descriptor.Tuple), Fragment: Fragment{"type": "array"}},
	{Name: "float", Match: MatchType(descriptor.Float), Fragment: Fragment{"type": "number", "format": "float"}},
	{Name: "integer", Match: MatchType(descriptor.Integer), Fragment: Fragment{"type": "number", "format": "integer"}},
	{Name: "boolean", Match: MatchType(descriptor.Boolean), Fragment: Fragment{"type": "boolean"}},
	// Generic numbers fall back to the decimal fragment.
	{Name: "number", Match: MatchType(descriptor.Number), Fragment: Fragment{"type": "number", "format": "decimal"}},
	{Name: "raw", Match: MatchType(descriptor.Raw), Fragment: Fragment{}},
}

// fieldFragment resolves the complete fragment for one field: the base
// fragment from the override or the type table, then its constraints.
func (c *compilation) fieldFragment(field *descriptor.Field) (Fragment, error) {
	fragment, err := c.baseFragment(field)
	if err != nil {
		return nil, err
	}
	return c.applyConstraints(fragment, field), nil
}

func (c *compilation) baseFragment(field *descriptor.Field) (Fragment, error) {
	if override, ok := fieldOverride(field); ok {
		return override, nil
	}

	rule, ok := c.matchRule(field.Type)
	if !ok {
		return nil, c.fieldError(field, fmt.Errorf("%w: %s", ErrUnsupportedType, field.Type))
	}
	if rule.nested {
		return c.fromNested(field)
	}
	return c.fromType(field, rule)
}

func (c *compilation) matchRule(t *descriptor.Type) (TypeRule, bool) {
	if t == nil {
		return TypeRule{}, false
	}
	for _, rule := range c.opts.typeRules {
		if rule.Match != nil && rule.Match(t) {
			return rule, true
		}
	}
	return TypeRule{}, false
}

func (c *compilation) fromType(field *descriptor.Field, rule TypeRule) (Fragment, error) {
	fragment := Fragment{"title": field.Title()}
	for key, value := range rule.Fragment.Clone() {
		fragment[key] = value
	}
	if field.DumpOnly {
		fragment["readonly"] = true
	}
	if field.HasDefault {
		fragment["default"] = field.Default
	}
	mergeMetadata(fragment, field)

	if field.Type.Is(descriptor.List) && field.Items != nil {
		items, err := c.fieldFragment(field.Items)
		if err != nil {
			return nil, err
		}
		fragment["items"] = items
	}
	c.sanitize(fragment)
	return fragment, nil
}

func fieldOverride(field *descriptor.Field) (Fragment, bool) {
	if field.Override != nil {
		return Fragment(field.Override).Clone(), true
	}
	switch typed := field.Metadata[overrideKey].(type) {
	case Fragment:
		return typed.Clone(), true
	case map[string]any:
		return Fragment(typed).Clone(), true
	}
	return nil, false
}

// effectiveMetadata overlays the top-level metadata entries on the nested
// "metadata" mapping.
func effectiveMetadata(field *descriptor.Field) map[string]any {
	merged := make(map[string]any, len(field.Metadata))
	if nested, ok := field.Metadata[metadataKey].(map[string]any); ok {
		for key, value := range nested {
			merged[key] = value
		}
	}
	for key, value := range field.Metadata {
		merged[key] = value
	}
	delete(merged, metadataKey)
	return merged
}

// mergeMetadata copies metadata onto fragment, replacing produced keywords.
func mergeMetadata(fragment Fragment, field *descriptor.Field) {
	for key, value := range effectiveMetadata(field) {
		fragment[key] = cloneValue(value)
	}
}
