package descriptor

// Constraint is a validation rule attached to a field. The set is open:
// callers may declare their own constraint types, and consumers skip the ones
// they do not understand.
type Constraint interface {
	ConstraintName() string
}

// Length bounds the length of a string or the size of a collection. Equal, when
// set, requires an exact length.
type Length struct {
	Min   *int
	Max   *int
	Equal *int
}

// ConstraintName implements Constraint.
func (Length) ConstraintName() string { return "length" }

// OneOf restricts values to an ordered set of choices. Labels optionally carry
// a display name per choice.
type OneOf struct {
	Choices []any
	Labels  []string
}

// ConstraintName implements Constraint.
func (OneOf) ConstraintName() string { return "one_of" }

// Range bounds a numeric value. Bounds are inclusive unless marked exclusive.
type Range struct {
	Min          *float64
	Max          *float64
	MinExclusive bool
	MaxExclusive bool
}

// ConstraintName implements Constraint.
func (Range) ConstraintName() string { return "range" }

// Int returns a pointer to v, for Length bounds.
func Int(v int) *int {
	return &v
}

// Float64 returns a pointer to v, for Range bounds.
func Float64(v float64) *float64 {
	return &v
}
