package clause

import "fmt"

// Restriction a filter condition, Negate returns the logical complement
type Restriction interface {
	Expression
	Negate() Restriction
}

// BasicRestriction applies a constraint to an expression
type BasicRestriction struct {
	Expression Expression
	Constraint Constraint
}

// Build build restriction
func (r BasicRestriction) Build(builder Builder) {
	r.Constraint.BuildConstraint(r.Expression, builder)
}

// Negate negates the constraint, the expression is kept
func (r BasicRestriction) Negate() Restriction {
	return BasicRestriction{Expression: r.Expression, Constraint: r.Constraint.Negate()}
}

// Decompose rewrites range constraints into their bound comparisons,
// between becomes (>= lower and <= upper), not between becomes (< lower or > upper)
func (r BasicRestriction) Decompose() Restriction {
	switch c := r.Constraint.(type) {
	case Between:
		lower, upper := c.Bounds()
		return CompositeRestriction{Type: AllOf, Restrictions: []Restriction{
			BasicRestriction{Expression: r.Expression, Constraint: lower},
			BasicRestriction{Expression: r.Expression, Constraint: upper},
		}}
	case NotBetween:
		lower, upper := c.Bounds()
		return CompositeRestriction{Type: AnyOf, Restrictions: []Restriction{
			BasicRestriction{Expression: r.Expression, Constraint: lower},
			BasicRestriction{Expression: r.Expression, Constraint: upper},
		}}
	default:
		return r
	}
}

// CompositeType how the restrictions of a composite are combined
type CompositeType int

const (
	AllOf CompositeType = iota
	AnyOf
)

func (t CompositeType) String() string {
	if t == AnyOf {
		return "or"
	}
	return "and"
}

// CompositeRestriction restrictions combined with and (AllOf) or or (AnyOf)
type CompositeRestriction struct {
	Type         CompositeType
	Restrictions []Restriction
	Negated      bool
}

// All every restriction must hold
func All(restrictions ...Restriction) (CompositeRestriction, error) {
	return composite(AllOf, restrictions)
}

// Any at least one restriction must hold
func Any(restrictions ...Restriction) (CompositeRestriction, error) {
	return composite(AnyOf, restrictions)
}

func composite(typ CompositeType, restrictions []Restriction) (CompositeRestriction, error) {
	if len(restrictions) == 0 {
		return CompositeRestriction{}, ErrEmptyComposite
	}
	for idx, r := range restrictions {
		if r == nil {
			return CompositeRestriction{}, fmt.Errorf("%w: nil restriction #%d", ErrInvalidValue, idx)
		}
	}
	return CompositeRestriction{Type: typ, Restrictions: restrictions}, nil
}

// Negate flips the negation of the whole composite, the members are untouched
func (r CompositeRestriction) Negate() Restriction {
	r.Negated = !r.Negated
	return r
}

// Build build composite, parenthesized when negated or holding more than one restriction
func (r CompositeRestriction) Build(builder Builder) {
	wrap := r.Negated || len(r.Restrictions) > 1
	if r.Negated {
		builder.WriteString("not ")
	}
	if wrap {
		builder.WriteByte('(')
	}
	r.buildMembers(builder)
	if wrap {
		builder.WriteByte(')')
	}
}

func (r CompositeRestriction) buildMembers(builder Builder) {
	sep := " " + r.Type.String() + " "
	for idx, member := range r.Restrictions {
		if idx > 0 {
			builder.WriteString(sep)
		}
		member.Build(builder)
	}
}

// Not negates restriction
func Not(restriction Restriction) Restriction {
	return restriction.Negate()
}
