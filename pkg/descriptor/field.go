package descriptor

// Field describes one declared field of a Schema.
type Field struct {
	// Name is the declared field name. Fields are ordered by Name when compiled.
	Name string
	// DataKey is the external name used in serialized data. Empty means Name.
	DataKey string
	// Attribute is the attribute the field reads from, used as the title when set.
	Attribute string

	Type     *Type
	Required bool
	// DumpOnly marks output-only fields.
	DumpOnly bool

	Default    any
	HasDefault bool

	Validators []Constraint
	// Metadata carries free-form keywords. A nested "metadata" mapping is
	// accepted for backwards compatibility; top-level entries win over it.
	Metadata map[string]any
	// Override replaces the generated fragment entirely when non-nil.
	Override map[string]any

	// Items is the inner field of a List.
	Items *Field

	// Schema is the nested target given directly; SchemaName looks it up by
	// name instead.
	Schema     *Schema
	SchemaName string
	Many       bool
	Only       []string
	Exclude    []string
}

// ExternalName returns the name the field carries in serialized data.
func (f *Field) ExternalName() string {
	if f.DataKey != "" {
		return f.DataKey
	}
	return f.Name
}

// Title returns the attribute name when set, the external name otherwise.
func (f *Field) Title() string {
	if f.Attribute != "" {
		return f.Attribute
	}
	return f.ExternalName()
}

// IsNested reports whether the field references another schema.
func (f *Field) IsNested() bool {
	return f.Type.Is(Nested)
}

// WithDefault returns a copy of f carrying v as its default value.
func (f Field) WithDefault(v any) *Field {
	f.Default = v
	f.HasDefault = true
	return &f
}

func (f *Field) clone() *Field {
	copied := *f
	copied.Only = append([]string(nil), f.Only...)
	copied.Exclude = append([]string(nil), f.Exclude...)
	return &copied
}
