package clause

import (
	"fmt"
	"strings"
	"unicode"
)

// Attribute entity attribute, Path is dotted for embedded attributes, e.g. address.zipCode
type Attribute struct {
	Path string
}

// Build build attribute path
func (attr Attribute) Build(builder Builder) {
	builder.WriteString(attr.Path)
}

// ValidateAttribute checks path is a dotted list of identifiers
func ValidateAttribute(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAttribute)
	}

	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return fmt.Errorf("%w: empty segment in %q", ErrInvalidAttribute, path)
		}
		for idx, r := range segment {
			if !(unicode.IsLetter(r) || r == '_' || (idx > 0 && unicode.IsDigit(r))) {
				return fmt.Errorf("%w: unexpected %q in %q", ErrInvalidAttribute, r, path)
			}
		}
	}
	return nil
}

// Attr comparable attribute, the path is validated eagerly
func Attr(path string) (Comparable, error) {
	if err := ValidateAttribute(path); err != nil {
		return Comparable{}, err
	}
	return Comparable{Expression: Attribute{Path: path}}, nil
}

// MustAttr like Attr but panics on an invalid path, for attribute names known at compile time
func MustAttr(path string) Comparable {
	c, err := Attr(path)
	if err != nil {
		panic(err)
	}
	return c
}

// Function function call, e.g. lower(name)
type Function struct {
	Name string
	Args []Expression
}

// Build build function call
func (fn Function) Build(builder Builder) {
	builder.WriteString(fn.Name)
	builder.WriteByte('(')
	for idx, arg := range fn.Args {
		if idx > 0 {
			builder.WriteString(", ")
		}
		arg.Build(builder)
	}
	builder.WriteByte(')')
}

// Call comparable function call
func Call(name string, args ...Expression) Comparable {
	return Comparable{Expression: Function{Name: name, Args: args}}
}

func Lower(expr Expression) Comparable {
	return Call("lower", expr)
}

func Upper(expr Expression) Comparable {
	return Call("upper", expr)
}

func Length(expr Expression) Comparable {
	return Call("length", expr)
}

func Abs(expr Expression) Comparable {
	return Call("abs", expr)
}

// Left the leftmost n characters of expr
func Left(expr, n Expression) Comparable {
	return Call("left", expr, n)
}

// Right the rightmost n characters of expr
func Right(expr, n Expression) Comparable {
	return Call("right", expr, n)
}

func Concat(exprs ...Expression) Comparable {
	return Call("concat", exprs...)
}

// ArithmeticOp operator of an Operation
type ArithmeticOp string

const (
	Plus        ArithmeticOp = "+"
	Minus       ArithmeticOp = "-"
	Times       ArithmeticOp = "*"
	Divide      ArithmeticOp = "/"
	Concatenate ArithmeticOp = "||"
)

// Operation binary operation, nested operations are parenthesized
type Operation struct {
	Op    ArithmeticOp
	Left  Expression
	Right Expression
}

// Build build operation
func (op Operation) Build(builder Builder) {
	buildOperand(op.Left, builder)
	builder.WriteByte(' ')
	builder.WriteString(string(op.Op))
	builder.WriteByte(' ')
	buildOperand(op.Right, builder)
}

func buildOperand(expr Expression, builder Builder) {
	if c, ok := expr.(Comparable); ok {
		expr = c.Expression
	}

	if _, ok := expr.(Operation); ok {
		builder.WriteByte('(')
		expr.Build(builder)
		builder.WriteByte(')')
		return
	}
	expr.Build(builder)
}

// Operate comparable operation, raw values are wrapped as literals
func Operate(left Expression, op ArithmeticOp, right interface{}) (Comparable, error) {
	r, err := operand(right)
	if err != nil {
		return Comparable{}, err
	}
	return Comparable{Expression: Operation{Op: op, Left: left, Right: r}}, nil
}

// Comparable wraps an expression with the comparison operations building restrictions
type Comparable struct {
	Expression
}

func (c Comparable) restrict(constraint Constraint, err error) (BasicRestriction, error) {
	if err != nil {
		return BasicRestriction{}, err
	}
	if c.Expression == nil {
		return BasicRestriction{}, fmt.Errorf("%w: nil expression", ErrInvalidValue)
	}
	return BasicRestriction{Expression: c.Expression, Constraint: constraint}, nil
}

func (c Comparable) EqualTo(value interface{}) (BasicRestriction, error) {
	return c.restrict(NewEqualTo(value))
}

func (c Comparable) NotEqualTo(value interface{}) (BasicRestriction, error) {
	return c.restrict(NewNotEqualTo(value))
}

func (c Comparable) GreaterThan(bound interface{}) (BasicRestriction, error) {
	return c.restrict(NewGreaterThan(bound))
}

func (c Comparable) GreaterThanEqual(bound interface{}) (BasicRestriction, error) {
	return c.restrict(NewGreaterThanOrEqual(bound))
}

func (c Comparable) LessThan(bound interface{}) (BasicRestriction, error) {
	return c.restrict(NewLessThan(bound))
}

func (c Comparable) LessThanEqual(bound interface{}) (BasicRestriction, error) {
	return c.restrict(NewLessThanOrEqual(bound))
}

func (c Comparable) Between(lower, upper interface{}) (BasicRestriction, error) {
	return c.restrict(NewBetween(lower, upper))
}

func (c Comparable) NotBetween(lower, upper interface{}) (BasicRestriction, error) {
	return c.restrict(NewNotBetween(lower, upper))
}

func (c Comparable) In(values ...interface{}) (BasicRestriction, error) {
	return c.restrict(NewIn(values...))
}

func (c Comparable) NotIn(values ...interface{}) (BasicRestriction, error) {
	return c.restrict(NewNotIn(values...))
}

// Like pattern is used as is
func (c Comparable) Like(pattern string) (BasicRestriction, error) {
	return c.restrict(LikePattern(pattern), nil)
}

func (c Comparable) NotLike(pattern string) (BasicRestriction, error) {
	return c.restrict(NotLike(LikePattern(pattern)), nil)
}

// StartsWith text is matched literally
func (c Comparable) StartsWith(text string) (BasicRestriction, error) {
	return c.restrict(LikePrefix(text), nil)
}

// EndsWith text is matched literally
func (c Comparable) EndsWith(text string) (BasicRestriction, error) {
	return c.restrict(LikeSuffix(text), nil)
}

// Contains text is matched literally
func (c Comparable) Contains(text string) (BasicRestriction, error) {
	return c.restrict(LikeSubstring(text), nil)
}

func (c Comparable) IsNull() (BasicRestriction, error) {
	return c.restrict(Null{}, nil)
}

func (c Comparable) NotNull() (BasicRestriction, error) {
	return c.restrict(NotNull{}, nil)
}

func (c Comparable) IsEmpty() (BasicRestriction, error) {
	return c.restrict(Empty{}, nil)
}

func (c Comparable) NotEmpty() (BasicRestriction, error) {
	return c.restrict(NotEmpty{}, nil)
}

// Satisfies applies an already built constraint
func (c Comparable) Satisfies(constraint Constraint) (BasicRestriction, error) {
	if constraint == nil {
		return BasicRestriction{}, fmt.Errorf("%w: nil constraint", ErrInvalidValue)
	}
	return c.restrict(constraint, nil)
}

// Plus expr + value
func (c Comparable) Plus(value interface{}) (Comparable, error) {
	return Operate(c.Expression, Plus, value)
}

// Minus expr - value
func (c Comparable) Minus(value interface{}) (Comparable, error) {
	return Operate(c.Expression, Minus, value)
}

// Times expr * value
func (c Comparable) Times(value interface{}) (Comparable, error) {
	return Operate(c.Expression, Times, value)
}

// Divide expr / value
func (c Comparable) Divide(value interface{}) (Comparable, error) {
	return Operate(c.Expression, Divide, value)
}

// Concat expr || value
func (c Comparable) Concat(value interface{}) (Comparable, error) {
	return Operate(c.Expression, Concatenate, value)
}
