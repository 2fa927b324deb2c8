package clause

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Literal a constant value, built as a bound parameter
type Literal interface {
	Expression
	fmt.Stringer
	Interface() interface{}
}

// StringLiteral text literal
type StringLiteral struct {
	Value interface{}
}

func (l StringLiteral) Build(builder Builder) {
	builder.WriteString(builder.AddVar(l.Value))
}

func (l StringLiteral) Interface() interface{} {
	return l.Value
}

// String quoted text, embedded quotes are doubled
func (l StringLiteral) String() string {
	return "'" + strings.ReplaceAll(reflect.ValueOf(l.Value).String(), "'", "''") + "'"
}

// NumericLiteral integer, float or math/big literal
type NumericLiteral struct {
	Value interface{}
}

func (l NumericLiteral) Build(builder Builder) {
	builder.WriteString(builder.AddVar(l.Value))
}

func (l NumericLiteral) Interface() interface{} {
	return l.Value
}

// String same text as fmt.Sprint of the raw value
// TODO: decide whether a literal should be distinguishable from its raw value when printed
func (l NumericLiteral) String() string {
	return fmt.Sprint(l.Value)
}

// TemporalLiteral time.Time or time.Duration literal
type TemporalLiteral struct {
	Value interface{}
}

func (l TemporalLiteral) Build(builder Builder) {
	builder.WriteString(builder.AddVar(l.Value))
}

func (l TemporalLiteral) Interface() interface{} {
	return l.Value
}

func (l TemporalLiteral) String() string {
	switch v := l.Value.(type) {
	case time.Time:
		return "'" + v.Format(time.RFC3339Nano) + "'"
	default:
		return "'" + fmt.Sprint(v) + "'"
	}
}

// BooleanLiteral true or false
type BooleanLiteral struct {
	Value interface{}
}

func (l BooleanLiteral) Build(builder Builder) {
	builder.WriteString(builder.AddVar(l.Value))
}

func (l BooleanLiteral) Interface() interface{} {
	return l.Value
}

func (l BooleanLiteral) String() string {
	return strings.ToUpper(strconv.FormatBool(reflect.ValueOf(l.Value).Bool()))
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	bigIntType   = reflect.TypeOf(&big.Int{})
	bigFloatType = reflect.TypeOf(&big.Float{})
	bigRatType   = reflect.TypeOf(&big.Rat{})
)

// LiteralOf wraps value with the literal matching its runtime type, named
// types keep their original value, e.g. type Status string stays a Status
func LiteralOf(value interface{}) (Literal, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: nil literal", ErrInvalidValue)
	}

	if l, ok := value.(Literal); ok {
		return l, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Type() {
	case timeType, durationType:
		return TemporalLiteral{Value: value}, nil
	case bigIntType, bigFloatType, bigRatType:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidValue, value)
		}
		return NumericLiteral{Value: value}, nil
	}

	switch rv.Kind() {
	case reflect.String:
		return StringLiteral{Value: value}, nil
	case reflect.Bool:
		return BooleanLiteral{Value: value}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return NumericLiteral{Value: value}, nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil %T", ErrInvalidValue, value)
		}
		return LiteralOf(rv.Elem().Interface())
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedLiteral, value)
}

// ParseTemporal parse a date or date time string, e.g. 2024-01-02 or 2024-01-02 15:04
func ParseTemporal(str string) (TemporalLiteral, error) {
	t, err := now.Parse(str)
	if err != nil {
		return TemporalLiteral{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return TemporalLiteral{Value: t}, nil
}

// operand converts a raw value or expression into a constraint operand
func operand(value interface{}) (Expression, error) {
	if expr, ok := value.(Expression); ok {
		return expr, nil
	}
	return LiteralOf(value)
}
