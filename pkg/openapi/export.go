package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-schemagen/pkg/jsonschema"
)

// Version is the OpenAPI version of exported specs.
const Version = "3.0.3"

const defaultInfoVersion = "1.0.0"

var errNilDocument = errors.New("openapi: document is nil")

// Components converts the definitions of doc into OpenAPI component schemas.
// References between definitions are resolved.
func Components(doc *jsonschema.Document) (openapi3.Schemas, error) {
	spec, err := load(context.Background(), doc, nil)
	if err != nil {
		return nil, err
	}
	return spec.Components.Schemas, nil
}

// Spec wraps the definitions of doc in a path-less OpenAPI document and
// validates it. A nil info gets the root definition name as its title.
func Spec(ctx context.Context, doc *jsonschema.Document, info *openapi3.Info) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	spec, err := load(ctx, doc, info)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// Marshal returns the JSON encoding of the exported OpenAPI document without
// loading it.
func Marshal(doc *jsonschema.Document, info *openapi3.Info) ([]byte, error) {
	if doc == nil {
		return nil, errNilDocument
	}
	schemas, err := convertDefinitions(doc)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = defaultInfo(doc)
	}
	payload := map[string]any{
		"openapi": Version,
		"info":    info,
		"paths":   map[string]any{},
		"components": map[string]any{
			"schemas": schemas,
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return raw, nil
}

func load(ctx context.Context, doc *jsonschema.Document, info *openapi3.Info) (*openapi3.T, error) {
	raw, err := Marshal(doc, info)
	if err != nil {
		return nil, err
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return spec, nil
}

func defaultInfo(doc *jsonschema.Document) *openapi3.Info {
	title := doc.RootName()
	if title == "" {
		title = "schemas"
	}
	return &openapi3.Info{Title: title, Version: defaultInfoVersion}
}
