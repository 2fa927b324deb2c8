package jdql

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/jdql/clause"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

// ToRestriction build the restriction a descriptor describes with args bound in order,
// and binds tighter than or, e.g. a and b or c is (a and b) or c.
// A nil restriction is returned for descriptors without conditions.
func ToRestriction(desc *method.QueryDescriptor, args ...interface{}) (clause.Restriction, error) {
	return toRestriction(desc, schema.NamingStrategy{}, args)
}

func toRestriction(desc *method.QueryDescriptor, namer schema.Namer, args []interface{}) (clause.Restriction, error) {
	if params := desc.Params(); params != len(args) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgumentCount, desc.Method, params, len(args))
	}

	if len(desc.Conditions) == 0 {
		return nil, nil
	}

	var (
		groups []clause.Restriction
		group  []clause.Restriction
	)

	for idx, c := range desc.Conditions {
		n := c.Operator.Params()
		r, err := conditionRestriction(namer.AttributeName(desc.Entity, c.Property), c, args[:n])
		if err != nil {
			return nil, fmt.Errorf("condition #%d %s: %w", idx, c.Property, err)
		}
		args = args[n:]

		if idx > 0 && !c.And {
			groups = append(groups, allOf(group))
			group = nil
		}
		group = append(group, r)
	}
	groups = append(groups, allOf(group))

	if len(groups) == 1 {
		return groups[0], nil
	}
	return clause.CompositeRestriction{Type: clause.AnyOf, Restrictions: groups}, nil
}

func allOf(restrictions []clause.Restriction) clause.Restriction {
	if len(restrictions) == 1 {
		return restrictions[0]
	}
	return clause.CompositeRestriction{Type: clause.AllOf, Restrictions: restrictions}
}

func conditionRestriction(attribute string, c method.Condition, args []interface{}) (clause.Restriction, error) {
	attr, err := clause.Attr(attribute)
	if err != nil {
		return nil, err
	}

	if c.Operator == method.In {
		args = expand(args[0])
	}

	if c.IgnoreCase {
		attr = clause.Lower(attr.Expression)
		if !patternOps[c.Operator] {
			lowered := make([]interface{}, len(args))
			for idx, arg := range args {
				lit, err := clause.LiteralOf(arg)
				if err != nil {
					return nil, err
				}
				lowered[idx] = clause.Lower(lit)
			}
			args = lowered
		}
	}

	var r clause.BasicRestriction
	switch c.Operator {
	case method.Equal:
		r, err = attr.EqualTo(args[0])
	case method.GreaterThan:
		r, err = attr.GreaterThan(args[0])
	case method.GreaterThanEqual:
		r, err = attr.GreaterThanEqual(args[0])
	case method.LessThan:
		r, err = attr.LessThan(args[0])
	case method.LessThanEqual:
		r, err = attr.LessThanEqual(args[0])
	case method.Between:
		r, err = attr.Between(args[0], args[1])
	case method.In:
		r, err = attr.In(args...)
	case method.Like:
		r, err = likeRestriction(attr, args[0], clause.LikePattern, c.IgnoreCase)
	case method.Contains:
		r, err = likeRestriction(attr, args[0], clause.LikeSubstring, c.IgnoreCase)
	case method.StartsWith:
		r, err = likeRestriction(attr, args[0], clause.LikePrefix, c.IgnoreCase)
	case method.EndsWith:
		r, err = likeRestriction(attr, args[0], clause.LikeSuffix, c.IgnoreCase)
	case method.Null:
		r, err = attr.IsNull()
	case method.Empty:
		r, err = attr.IsEmpty()
	case method.True:
		r, err = attr.EqualTo(true)
	case method.False:
		r, err = attr.EqualTo(false)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedOperator, c.Operator)
	}

	if err != nil {
		return nil, err
	}
	if c.Negate {
		return r.Negate(), nil
	}
	return r, nil
}

var patternOps = map[method.Operator]bool{
	method.Like:       true,
	method.Contains:   true,
	method.StartsWith: true,
	method.EndsWith:   true,
}

// likeRestriction text patterns need a string argument, lower cased for lower(attribute)
func likeRestriction(attr clause.Comparable, arg interface{}, like func(string) clause.Like, lower bool) (clause.BasicRestriction, error) {
	rv := reflect.ValueOf(arg)
	if !rv.IsValid() || rv.Kind() != reflect.String {
		return clause.BasicRestriction{}, fmt.Errorf("%w: like pattern must be a string, got %T", ErrInvalidValue, arg)
	}

	text := rv.String()
	if lower {
		text = strings.ToLower(text)
	}
	return attr.Satisfies(like(text))
}

// expand in values, a slice or array argument binds each element
func expand(arg interface{}) []interface{} {
	if values, ok := arg.([]interface{}); ok {
		return values
	}

	rv := reflect.ValueOf(arg)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return []interface{}{arg}
		}
		values := make([]interface{}, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return values
	}
	return []interface{}{arg}
}
