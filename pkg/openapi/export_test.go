package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemagen/pkg/descriptor"
	"github.com/goliatone/go-schemagen/pkg/jsonschema"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
)

func compile(t *testing.T, schema *descriptor.Schema, opts ...jsonschema.Option) *jsonschema.Document {
	t.Helper()

	doc, err := jsonschema.New(opts...).Compile(context.Background(), schema)
	if err != nil {
		t.Fatalf("compile %s: %v", schema.Name, err)
	}
	return doc
}

func TestMarshal_PersonComponents(t *testing.T) {
	doc := compile(t, testsupport.PersonSchema(testsupport.PetSchema()))

	raw, err := Marshal(doc, nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var payload struct {
		OpenAPI string         `json:"openapi"`
		Info    map[string]any `json:"info"`
		Paths   map[string]any `json:"paths"`
		Comps   struct {
			Schemas map[string]any `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if payload.OpenAPI != Version {
		t.Fatalf("expected openapi %s, got %q", Version, payload.OpenAPI)
	}
	if payload.Info["title"] != "Person" {
		t.Fatalf("expected info title Person, got %v", payload.Info)
	}

	want := map[string]any{
		"Person": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"name"},
			"properties": map[string]any{
				"age":  map[string]any{"title": "age", "type": "integer", "default": float64(0)},
				"name": map[string]any{"title": "name", "type": "string"},
				"pets": map[string]any{
					"type":     "array",
					"nullable": true,
					"items":    map[string]any{"$ref": "#/components/schemas/Pet"},
				},
			},
		},
		"Pet": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"id"},
			"properties": map[string]any{
				"id": map[string]any{"title": "id", "type": "string"},
			},
		},
	}
	if diff := cmp.Diff(want, payload.Comps.Schemas); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestComponents_ResolvesReferences(t *testing.T) {
	schemas, err := Components(compile(t, testsupport.PersonSchema(testsupport.PetSchema())))
	if err != nil {
		t.Fatalf("components: %v", err)
	}

	person := schemas["Person"]
	if person == nil || person.Value == nil {
		t.Fatalf("expected Person component, got %v", schemas)
	}
	pets := person.Value.Properties["pets"]
	if pets == nil || pets.Value == nil {
		t.Fatalf("expected pets property")
	}
	if !pets.Value.Type.Is("array") || !pets.Value.Nullable {
		t.Fatalf("expected nullable array, got %+v", pets.Value)
	}
	items := pets.Value.Items
	if items == nil || items.Ref != "#/components/schemas/Pet" {
		t.Fatalf("expected items ref to Pet, got %+v", items)
	}
	if items.Value == nil || items.Value.Properties["id"] == nil {
		t.Fatalf("expected resolved Pet schema behind the ref")
	}
	if age := person.Value.Properties["age"]; age == nil || !age.Value.Type.Is("integer") {
		t.Fatalf("expected integer age, got %+v", age)
	}
}

func TestSpec_ValidatesCyclicDocuments(t *testing.T) {
	tree := testsupport.TreeSchema()
	author, book := testsupport.AuthorBookSchemas()
	registry := descriptor.NewRegistry(tree, author, book)

	for _, schema := range []*descriptor.Schema{tree, author} {
		t.Run(schema.Name, func(t *testing.T) {
			doc := compile(t, schema, jsonschema.WithRegistry(registry))

			spec, err := Spec(context.Background(), doc, &openapi3.Info{Title: "library", Version: "2.0.0"})
			if err != nil {
				t.Fatalf("spec: %v", err)
			}
			if spec.Info.Title != "library" {
				t.Fatalf("expected caller info, got %+v", spec.Info)
			}
			if got, want := len(spec.Components.Schemas), len(doc.Definitions); got != want {
				t.Fatalf("expected %d components, got %d", want, got)
			}
		})
	}
}

func TestSpec_KeywordTranslation(t *testing.T) {
	pet := testsupport.PetSchema()
	schema := &descriptor.Schema{
		Name: "Listing",
		Fields: []*descriptor.Field{
			{Name: "id", Type: descriptor.UUID, DumpOnly: true},
			{
				Name: "status",
				Type: descriptor.String,
				Validators: []descriptor.Constraint{
					descriptor.OneOf{Choices: []any{"open", "closed"}, Labels: []string{"Open", "Closed"}},
				},
			},
			{
				Name: "price",
				Type: descriptor.Decimal,
				Validators: []descriptor.Constraint{
					descriptor.Range{Min: descriptor.Float64(0), MinExclusive: true},
				},
			},
			{
				Name:     "pet",
				Type:     descriptor.Nested,
				Schema:   pet,
				Metadata: map[string]any{"description": "listed pet"},
			},
		},
	}

	spec, err := Spec(context.Background(), compile(t, schema), nil)
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	properties := spec.Components.Schemas["Listing"].Value.Properties

	if id := properties["id"].Value; !id.ReadOnly || id.Format != "uuid" {
		t.Fatalf("expected readOnly uuid, got %+v", id)
	}

	status := properties["status"].Value
	if diff := cmp.Diff([]any{"open", "closed"}, status.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if _, ok := status.Extensions["x-enumNames"]; !ok {
		t.Fatalf("expected enumNames carried as extension, got %v", status.Extensions)
	}

	price := properties["price"].Value
	if price.Min == nil || *price.Min != 0 || !price.ExclusiveMin {
		t.Fatalf("expected exclusive minimum 0, got %+v", price)
	}

	petRef := properties["pet"]
	if petRef.Ref != "" {
		t.Fatalf("expected ref with siblings to be wrapped, got ref %q", petRef.Ref)
	}
	if petRef.Value.Description != "listed pet" {
		t.Fatalf("expected description to stay on the wrapper, got %q", petRef.Value.Description)
	}
	if len(petRef.Value.AllOf) != 1 || petRef.Value.AllOf[0].Ref != "#/components/schemas/Pet" {
		t.Fatalf("expected allOf with Pet ref, got %+v", petRef.Value.AllOf)
	}
}

func TestConvertSchema(t *testing.T) {
	t.Run("bare ref drops implied type", func(t *testing.T) {
		got, err := convertSchema(map[string]any{"type": "object", "$ref": "#/definitions/Pet"}, "Owner.pet")
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		if diff := cmp.Diff(map[string]any{"$ref": "#/components/schemas/Pet"}, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown keywords become extensions", func(t *testing.T) {
		got, err := convertSchema(map[string]any{"type": "string", "ui": "textarea", "x-order": 1}, "Note.body")
		if err != nil {
			t.Fatalf("convert: %v", err)
		}
		want := map[string]any{"type": "string", "x-ui": "textarea", "x-order": 1}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("external ref rejected", func(t *testing.T) {
		_, err := convertSchema(map[string]any{"$ref": "https://example.com/pet.json"}, "Owner.pet")
		if err == nil {
			t.Fatalf("expected error for non-local ref")
		}
	})
}

func TestExport_Errors(t *testing.T) {
	if _, err := Components(nil); !errors.Is(err, errNilDocument) {
		t.Fatalf("expected nil document error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := compile(t, testsupport.PetSchema())
	if _, err := Spec(ctx, doc, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
