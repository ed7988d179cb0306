package descriptor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fieldNames(schema *Schema) []string {
	names := make([]string, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		names = append(names, field.Name)
	}
	return names
}

func TestTypeIs(t *testing.T) {
	positive := Derive("positive", Integer)

	cases := []struct {
		name  string
		typ   *Type
		other *Type
		want  bool
	}{
		{"self", String, String, true},
		{"child", Email, String, true},
		{"grandchild", positive, Number, true},
		{"sibling", Float, Integer, false},
		{"parent is not child", Number, Integer, false},
		{"nil other", String, nil, false},
		{"nil receiver", nil, String, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.typ.Is(tc.other); got != tc.want {
				t.Fatalf("Is() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFieldNames(t *testing.T) {
	field := &Field{Name: "created", DataKey: "createdAt"}
	if field.ExternalName() != "createdAt" {
		t.Fatalf("expected data key, got %q", field.ExternalName())
	}
	if field.Title() != "createdAt" {
		t.Fatalf("expected title to fall back to external name, got %q", field.Title())
	}
	field.Attribute = "created_at"
	if field.Title() != "created_at" {
		t.Fatalf("expected attribute title, got %q", field.Title())
	}

	plain := Field{Name: "age", Type: Integer}
	withDefault := plain.WithDefault(0)
	if !withDefault.HasDefault || withDefault.Default != 0 {
		t.Fatalf("expected default 0, got %#v", withDefault)
	}
	if plain.HasDefault {
		t.Fatalf("WithDefault must not modify the receiver")
	}
}

func TestSchemaProject(t *testing.T) {
	pet := &Schema{Name: "Pet", Fields: []*Field{
		{Name: "id", Type: String},
		{Name: "name", Type: String},
	}}
	person := &Schema{
		Name:    "Person",
		Unknown: UnknownInclude,
		Fields: []*Field{
			{Name: "age", Type: Integer},
			{Name: "name", Type: String},
			{Name: "pets", Type: Nested, Schema: pet, Many: true},
		},
	}

	t.Run("no projection keeps every field", func(t *testing.T) {
		projected, err := person.Project(nil, nil)
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if diff := cmp.Diff([]string{"age", "name", "pets"}, fieldNames(projected)); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
		if projected.Origin() != person {
			t.Fatalf("expected origin to point at the source schema")
		}
		if projected.Unknown != UnknownInclude {
			t.Fatalf("expected schema options to carry over")
		}
	})

	t.Run("only", func(t *testing.T) {
		projected, err := person.Project([]string{"name"}, nil)
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if diff := cmp.Diff([]string{"name"}, fieldNames(projected)); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("exclude", func(t *testing.T) {
		projected, err := person.Project(nil, []string{"age"})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if diff := cmp.Diff([]string{"name", "pets"}, fieldNames(projected)); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dotted paths reach nested fields", func(t *testing.T) {
		projected, err := person.Project([]string{"pets.id"}, []string{"pets.name"})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if diff := cmp.Diff([]string{"pets"}, fieldNames(projected)); diff != "" {
			t.Fatalf("fields mismatch (-want +got):\n%s", diff)
		}
		pets := projected.Fields[0]
		if diff := cmp.Diff([]string{"id"}, pets.Only); diff != "" {
			t.Fatalf("nested only mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"name"}, pets.Exclude); diff != "" {
			t.Fatalf("nested exclude mismatch (-want +got):\n%s", diff)
		}
		original, _ := person.Field("pets")
		if len(original.Only) != 0 || len(original.Exclude) != 0 {
			t.Fatalf("projection must not modify the source field")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := person.Project([]string{"missing"}, nil)
		if !errors.Is(err, ErrUnknownField) {
			t.Fatalf("expected ErrUnknownField, got %v", err)
		}
	})

	t.Run("projection of projection keeps origin", func(t *testing.T) {
		first, err := person.Project(nil, []string{"age"})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		second, err := first.Project([]string{"name"}, nil)
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if second.Origin() != person {
			t.Fatalf("expected origin to stay at the declared schema")
		}
	})
}

func TestMapRegistry(t *testing.T) {
	pet := &Schema{Name: "Pet"}
	reg := NewRegistry(pet, nil)

	got, err := reg.Lookup("Pet")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got != pet {
		t.Fatalf("expected registered schema back")
	}

	if _, err := reg.Lookup("Owner"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}

	reg.Register(&Schema{Name: "Owner"})
	if diff := cmp.Diff([]string{"Owner", "Pet"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	var empty *MapRegistry
	if _, err := empty.Lookup("Pet"); !errors.Is(err, ErrSchemaNotFound) {
		t.Fatalf("expected nil registry to miss, got %v", err)
	}
}
