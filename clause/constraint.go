package clause

import "fmt"

// Constraint the operator and operands of a restriction, independent of the
// expression it applies to. Negate returns the logical complement.
type Constraint interface {
	Negate() Constraint
	BuildConstraint(expr Expression, builder Builder)
}

func buildBinary(expr Expression, op string, value Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(op)
	value.Build(builder)
}

// EqualTo expr = value
type EqualTo struct {
	Value Expression
}

// NewEqualTo value may be a raw value or an expression
func NewEqualTo(value interface{}) (EqualTo, error) {
	v, err := operand(value)
	return EqualTo{Value: v}, err
}

func (c EqualTo) Negate() Constraint {
	return NotEqualTo{Value: c.Value}
}

func (c EqualTo) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " = ", c.Value, builder)
}

// NotEqualTo expr <> value
type NotEqualTo struct {
	Value Expression
}

func NewNotEqualTo(value interface{}) (NotEqualTo, error) {
	v, err := operand(value)
	return NotEqualTo{Value: v}, err
}

func (c NotEqualTo) Negate() Constraint {
	return EqualTo{Value: c.Value}
}

func (c NotEqualTo) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " <> ", c.Value, builder)
}

// GreaterThan expr > bound
type GreaterThan struct {
	Bound Expression
}

func NewGreaterThan(bound interface{}) (GreaterThan, error) {
	v, err := operand(bound)
	return GreaterThan{Bound: v}, err
}

func (c GreaterThan) Negate() Constraint {
	return LessThanOrEqual{Bound: c.Bound}
}

func (c GreaterThan) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " > ", c.Bound, builder)
}

// GreaterThanOrEqual expr >= bound
type GreaterThanOrEqual struct {
	Bound Expression
}

func NewGreaterThanOrEqual(bound interface{}) (GreaterThanOrEqual, error) {
	v, err := operand(bound)
	return GreaterThanOrEqual{Bound: v}, err
}

func (c GreaterThanOrEqual) Negate() Constraint {
	return LessThan{Bound: c.Bound}
}

func (c GreaterThanOrEqual) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " >= ", c.Bound, builder)
}

// LessThan expr < bound
type LessThan struct {
	Bound Expression
}

func NewLessThan(bound interface{}) (LessThan, error) {
	v, err := operand(bound)
	return LessThan{Bound: v}, err
}

func (c LessThan) Negate() Constraint {
	return GreaterThanOrEqual{Bound: c.Bound}
}

func (c LessThan) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " < ", c.Bound, builder)
}

// LessThanOrEqual expr <= bound
type LessThanOrEqual struct {
	Bound Expression
}

func NewLessThanOrEqual(bound interface{}) (LessThanOrEqual, error) {
	v, err := operand(bound)
	return LessThanOrEqual{Bound: v}, err
}

func (c LessThanOrEqual) Negate() Constraint {
	return GreaterThan{Bound: c.Bound}
}

func (c LessThanOrEqual) BuildConstraint(expr Expression, builder Builder) {
	buildBinary(expr, " <= ", c.Bound, builder)
}

// Between expr between lower and upper, both bounds inclusive
type Between struct {
	Lower Expression
	Upper Expression
}

func NewBetween(lower, upper interface{}) (Between, error) {
	l, u, err := bounds(lower, upper)
	return Between{Lower: l, Upper: u}, err
}

func (c Between) Negate() Constraint {
	return NotBetween(c)
}

func (c Between) BuildConstraint(expr Expression, builder Builder) {
	buildBetween(expr, " between ", c.Lower, c.Upper, builder)
}

// Bounds the pair of range constraints equivalent to Between
func (c Between) Bounds() (GreaterThanOrEqual, LessThanOrEqual) {
	return GreaterThanOrEqual{Bound: c.Lower}, LessThanOrEqual{Bound: c.Upper}
}

// NotBetween expr not between lower and upper
type NotBetween struct {
	Lower Expression
	Upper Expression
}

func NewNotBetween(lower, upper interface{}) (NotBetween, error) {
	l, u, err := bounds(lower, upper)
	return NotBetween{Lower: l, Upper: u}, err
}

func (c NotBetween) Negate() Constraint {
	return Between(c)
}

func (c NotBetween) BuildConstraint(expr Expression, builder Builder) {
	buildBetween(expr, " not between ", c.Lower, c.Upper, builder)
}

// Bounds the pair of range constraints equivalent to NotBetween, either one holds
func (c NotBetween) Bounds() (LessThan, GreaterThan) {
	return LessThan{Bound: c.Lower}, GreaterThan{Bound: c.Upper}
}

func bounds(lower, upper interface{}) (l Expression, u Expression, err error) {
	if l, err = operand(lower); err != nil {
		return nil, nil, fmt.Errorf("lower bound: %w", err)
	}
	if u, err = operand(upper); err != nil {
		return nil, nil, fmt.Errorf("upper bound: %w", err)
	}
	return l, u, nil
}

func buildBetween(expr Expression, op string, lower, upper Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(op)
	lower.Build(builder)
	builder.WriteString(" and ")
	upper.Build(builder)
}

// In expr in (values...)
type In struct {
	Values []Expression
}

func NewIn(values ...interface{}) (In, error) {
	exprs, err := operands(values)
	return In{Values: exprs}, err
}

func (c In) Negate() Constraint {
	return NotIn(c)
}

func (c In) BuildConstraint(expr Expression, builder Builder) {
	buildIn(expr, " in (", c.Values, builder)
}

// NotIn expr not in (values...)
type NotIn struct {
	Values []Expression
}

func NewNotIn(values ...interface{}) (NotIn, error) {
	exprs, err := operands(values)
	return NotIn{Values: exprs}, err
}

func (c NotIn) Negate() Constraint {
	return In(c)
}

func (c NotIn) BuildConstraint(expr Expression, builder Builder) {
	buildIn(expr, " not in (", c.Values, builder)
}

func operands(values []interface{}) ([]Expression, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: in requires at least one value", ErrInvalidValue)
	}

	exprs := make([]Expression, len(values))
	for idx, value := range values {
		expr, err := operand(value)
		if err != nil {
			return nil, fmt.Errorf("value #%d: %w", idx, err)
		}
		exprs[idx] = expr
	}
	return exprs, nil
}

func buildIn(expr Expression, op string, values []Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(op)
	for idx, value := range values {
		if idx > 0 {
			builder.WriteString(", ")
		}
		value.Build(builder)
	}
	builder.WriteByte(')')
}

// Like expr like pattern, Escape is the escape character of the pattern, 0 for none
type Like struct {
	Pattern string
	Escape  rune
}

func (c Like) Negate() Constraint {
	return NotLike(c)
}

func (c Like) BuildConstraint(expr Expression, builder Builder) {
	buildLike(expr, " like ", c.Pattern, c.Escape, builder)
}

// NotLike expr not like pattern
type NotLike struct {
	Pattern string
	Escape  rune
}

func (c NotLike) Negate() Constraint {
	return Like(c)
}

func (c NotLike) BuildConstraint(expr Expression, builder Builder) {
	buildLike(expr, " not like ", c.Pattern, c.Escape, builder)
}

// Null expr is null
type Null struct{}

func (Null) Negate() Constraint {
	return NotNull{}
}

func (Null) BuildConstraint(expr Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(" is null")
}

// NotNull expr is not null
type NotNull struct{}

func (NotNull) Negate() Constraint {
	return Null{}
}

func (NotNull) BuildConstraint(expr Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(" is not null")
}

// Empty expr is empty, for collection attributes
type Empty struct{}

func (Empty) Negate() Constraint {
	return NotEmpty{}
}

func (Empty) BuildConstraint(expr Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(" is empty")
}

// NotEmpty expr is not empty
type NotEmpty struct{}

func (NotEmpty) Negate() Constraint {
	return Empty{}
}

func (NotEmpty) BuildConstraint(expr Expression, builder Builder) {
	expr.Build(builder)
	builder.WriteString(" is not empty")
}
