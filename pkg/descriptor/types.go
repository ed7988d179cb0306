package descriptor

// Type classifies the declared value type of a field. Types form a
// specialization hierarchy through Parent, so a caller-defined type derived
// from Integer is treated as an integer by anything matching on Integer.
type Type struct {
	Name   string
	Parent *Type
}

// Derive returns a new type specializing parent.
func Derive(name string, parent *Type) *Type {
	return &Type{Name: name, Parent: parent}
}

// Is reports whether t is other or descends from it.
func (t *Type) Is(other *Type) bool {
	if other == nil {
		return false
	}
	for current := t; current != nil; current = current.Parent {
		if current == other {
			return true
		}
	}
	return false
}

// String returns the type name.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// Built-in field types.
var (
	Raw      = &Type{Name: "raw"}
	Dict     = &Type{Name: "dict"}
	List     = &Type{Name: "list"}
	Set      = &Type{Name: "set"}
	Tuple    = &Type{Name: "tuple"}
	Time     = &Type{Name: "time"}
	Duration = &Type{Name: "duration"}
	DateTime = &Type{Name: "datetime"}
	Date     = &Type{Name: "date"}
	UUID     = &Type{Name: "uuid"}
	String   = &Type{Name: "string"}
	Binary   = &Type{Name: "binary"}
	Number   = &Type{Name: "number"}
	Boolean  = &Type{Name: "boolean"}
	Nested   = &Type{Name: "nested"}

	NaiveDateTime = Derive("naive_datetime", DateTime)
	AwareDateTime = Derive("aware_datetime", DateTime)
	Email         = Derive("email", String)
	URL           = Derive("url", String)
	Decimal       = Derive("decimal", Number)
	Float         = Derive("float", Number)
	Integer       = Derive("integer", Number)
)
