package openapi

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/jsonschema"
)

const componentsPrefix = "#/components/schemas/"

// keywords OpenAPI 3.0 schema objects accept as-is. Anything else is carried
// as an "x-" extension.
var keywords = map[string]struct{}{
	"title": {}, "description": {}, "type": {}, "format": {}, "default": {},
	"enum": {}, "items": {}, "properties": {}, "required": {},
	"additionalProperties": {}, "allOf": {}, "anyOf": {}, "oneOf": {}, "not": {},
	"minimum": {}, "maximum": {}, "exclusiveMinimum": {}, "exclusiveMaximum": {},
	"multipleOf": {}, "minLength": {}, "maxLength": {}, "pattern": {},
	"minItems": {}, "maxItems": {}, "uniqueItems": {}, "minProperties": {},
	"maxProperties": {}, "nullable": {}, "readOnly": {}, "writeOnly": {},
	"example": {}, "deprecated": {}, "discriminator": {}, "externalDocs": {},
	"xml": {}, "$ref": {},
}

// renamed keywords, JSON Schema spelling to OpenAPI spelling.
var renamed = map[string]string{
	"readonly":  "readOnly",
	"writeonly": "writeOnly",
}

// schemaMaps are keywords whose values map names to schemas.
var schemaMaps = map[string]struct{}{"properties": {}}

// schemaLists are keywords whose values are lists of schemas.
var schemaLists = map[string]struct{}{"allOf": {}, "anyOf": {}, "oneOf": {}}

func convertDefinitions(doc *jsonschema.Document) (map[string]any, error) {
	out := make(map[string]any, len(doc.Definitions))
	for name, fragment := range doc.Definitions {
		converted, err := convertSchema(map[string]any(fragment), name)
		if err != nil {
			return nil, err
		}
		out[name] = converted
	}
	return out, nil
}

func convertSchema(node map[string]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(node))
	for key, value := range node {
		if target, ok := renamed[key]; ok {
			key = target
		}
		switch {
		case key == "$ref":
			ref, err := convertRef(value, path)
			if err != nil {
				return nil, err
			}
			out[key] = ref
		case key == "type":
			convertType(out, value)
		case key == "items" || key == "not" || key == "additionalProperties":
			child, ok := asMap(value)
			if !ok {
				out[key] = value
				continue
			}
			converted, err := convertSchema(child, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		case inSet(schemaMaps, key):
			converted, err := convertSchemaMap(value, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		case inSet(schemaLists, key):
			converted, err := convertSchemaList(value, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		case inSet(keywords, key) || strings.HasPrefix(key, "x-"):
			out[key] = value
		default:
			out["x-"+key] = value
		}
	}
	promoteInteger(out)
	return siblingRef(out), nil
}

func convertSchemaMap(value any, path string) (map[string]any, error) {
	entries, ok := asMap(value)
	if !ok {
		return nil, fmt.Errorf("openapi: %s: expected a mapping, got %T", path, value)
	}
	out := make(map[string]any, len(entries))
	for name, entry := range entries {
		child, ok := asMap(entry)
		if !ok {
			return nil, fmt.Errorf("openapi: %s.%s: expected a schema, got %T", path, name, entry)
		}
		converted, err := convertSchema(child, path+"."+name)
		if err != nil {
			return nil, err
		}
		out[name] = converted
	}
	return out, nil
}

func convertSchemaList(value any, path string) ([]any, error) {
	entries, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("openapi: %s: expected a list, got %T", path, value)
	}
	out := make([]any, 0, len(entries))
	for i, entry := range entries {
		child, ok := asMap(entry)
		if !ok {
			return nil, fmt.Errorf("openapi: %s[%d]: expected a schema, got %T", path, i, entry)
		}
		converted, err := convertSchema(child, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func convertRef(value any, path string) (string, error) {
	ref, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("openapi: %s: $ref must be a string, got %T", path, value)
	}
	name, ok := jsonschema.DefinitionName(ref)
	if !ok {
		return "", fmt.Errorf("openapi: %s: unsupported $ref %q", path, ref)
	}
	return componentsPrefix + name, nil
}

// convertType folds the ["x", "null"] form into type x plus nullable.
func convertType(out map[string]any, value any) {
	types := jsonschema.Fragment{"type": value}.Types()
	if len(types) == 0 {
		out["type"] = value
		return
	}
	var primary []string
	for _, name := range types {
		if name == "null" {
			out["nullable"] = true
			continue
		}
		primary = append(primary, name)
	}
	if len(primary) > 0 {
		out["type"] = primary[0]
	}
}

// promoteInteger rewrites {type: number, format: integer} to {type: integer}.
func promoteInteger(out map[string]any) {
	if out["type"] == "number" && out["format"] == "integer" {
		out["type"] = "integer"
		delete(out, "format")
	}
}

// siblingRef keeps $ref alone in its object. Siblings other than the implied
// object type move next to an allOf wrapper.
func siblingRef(out map[string]any) map[string]any {
	ref, ok := out["$ref"]
	if !ok {
		return out
	}
	if out["type"] == "object" {
		delete(out, "type")
	}
	if len(out) == 1 {
		return out
	}
	delete(out, "$ref")
	out["allOf"] = append([]any{map[string]any{"$ref": ref}}, listOrEmpty(out["allOf"])...)
	return out
}

func listOrEmpty(value any) []any {
	list, _ := value.([]any)
	return list
}

func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case jsonschema.Fragment:
		return map[string]any(typed), true
	case map[string]any:
		return typed, true
	default:
		return nil, false
	}
}

func inSet(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
