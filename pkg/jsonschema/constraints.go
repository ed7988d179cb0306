package jsonschema

import "github.com/goliatone/go-schemagen/pkg/descriptor"

// ConstraintTranslator adds the keywords for one constraint to a field
// fragment. It returns false when it does not handle the constraint, letting
// the next translator try.
type ConstraintTranslator func(fragment Fragment, field *descriptor.Field, constraint descriptor.Constraint) bool

var defaultTranslators = []ConstraintTranslator{
	translateLength,
	translateOneOf,
	translateRange,
}

// applyConstraints runs the field's constraints in declaration order.
// Constraints no translator handles add nothing.
func (c *compilation) applyConstraints(fragment Fragment, field *descriptor.Field) Fragment {
	for _, constraint := range field.Validators {
		if constraint == nil {
			continue
		}
		for _, translate := range c.opts.translators {
			if translate(fragment, field, constraint) {
				break
			}
		}
	}
	return fragment
}

func translateLength(fragment Fragment, _ *descriptor.Field, constraint descriptor.Constraint) bool {
	length, ok := asLength(constraint)
	if !ok {
		return false
	}

	var minKey, maxKey string
	switch {
	case fragment.HasType("string"):
		minKey, maxKey = "minLength", "maxLength"
	case fragment.HasType("array"):
		minKey, maxKey = "minItems", "maxItems"
	default:
		return true
	}

	if length.Min != nil {
		fragment[minKey] = *length.Min
	}
	if length.Max != nil {
		fragment[maxKey] = *length.Max
	}
	if length.Equal != nil {
		fragment[minKey] = *length.Equal
		fragment[maxKey] = *length.Equal
	}
	return true
}

func translateOneOf(fragment Fragment, _ *descriptor.Field, constraint descriptor.Constraint) bool {
	var oneOf descriptor.OneOf
	switch typed := constraint.(type) {
	case descriptor.OneOf:
		oneOf = typed
	case *descriptor.OneOf:
		oneOf = *typed
	default:
		return false
	}

	fragment["enum"] = append([]any{}, oneOf.Choices...)
	if len(oneOf.Labels) > 0 {
		fragment["enumNames"] = append([]string(nil), oneOf.Labels...)
	}
	return true
}

func translateRange(fragment Fragment, _ *descriptor.Field, constraint descriptor.Constraint) bool {
	var bounds descriptor.Range
	switch typed := constraint.(type) {
	case descriptor.Range:
		bounds = typed
	case *descriptor.Range:
		bounds = *typed
	default:
		return false
	}

	if bounds.Min != nil {
		fragment["minimum"] = *bounds.Min
		if bounds.MinExclusive {
			fragment["exclusiveMinimum"] = true
		}
	}
	if bounds.Max != nil {
		fragment["maximum"] = *bounds.Max
		if bounds.MaxExclusive {
			fragment["exclusiveMaximum"] = true
		}
	}
	return true
}

func asLength(constraint descriptor.Constraint) (descriptor.Length, bool) {
	switch typed := constraint.(type) {
	case descriptor.Length:
		return typed, true
	case *descriptor.Length:
		return *typed, true
	default:
		return descriptor.Length{}, false
	}
}
