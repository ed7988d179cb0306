package testsupport

import "github.com/goliatone/go-schemagen/pkg/descriptor"

// PetSchema returns Pet{id: string(required)}.
func PetSchema() *descriptor.Schema {
	return &descriptor.Schema{
		Name: "Pet",
		Fields: []*descriptor.Field{
			{Name: "id", Type: descriptor.String, Required: true},
		},
	}
}

// PersonSchema returns Person{name: string(required), age: integer(default=0),
// pets: many-nested(pet)}.
func PersonSchema(pet *descriptor.Schema) *descriptor.Schema {
	age := descriptor.Field{Name: "age", Type: descriptor.Integer}
	return &descriptor.Schema{
		Name: "Person",
		Fields: []*descriptor.Field{
			{Name: "name", Type: descriptor.String, Required: true},
			age.WithDefault(0),
			{Name: "pets", Type: descriptor.Nested, Schema: pet, Many: true},
		},
	}
}

// TreeSchema returns a Node schema whose children field nests Node itself.
func TreeSchema() *descriptor.Schema {
	node := &descriptor.Schema{Name: "Node"}
	node.Fields = []*descriptor.Field{
		{Name: "value", Type: descriptor.String, Required: true},
		{Name: "children", Type: descriptor.Nested, Schema: node, Many: true},
		{Name: "parent", Type: descriptor.Nested, SchemaName: "Node"},
	}
	return node
}

// AuthorBookSchemas returns two schemas that reference each other by name:
// Author.books -> Book and Book.author -> Author.
func AuthorBookSchemas() (*descriptor.Schema, *descriptor.Schema) {
	author := &descriptor.Schema{
		Name: "Author",
		Fields: []*descriptor.Field{
			{Name: "name", Type: descriptor.String, Required: true},
			{Name: "books", Type: descriptor.Nested, SchemaName: "Book", Many: true},
		},
	}
	book := &descriptor.Schema{
		Name: "Book",
		Fields: []*descriptor.Field{
			{Name: "title", Type: descriptor.String, Required: true},
			{Name: "author", Type: descriptor.Nested, SchemaName: "Author"},
		},
	}
	return author, book
}
