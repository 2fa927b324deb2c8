package jdql

import (
	"context"
	"fmt"

	"gorm.io/jdql/clause"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

// RenderOption render option
type RenderOption func(*renderConfig)

type renderConfig struct {
	orderBy bool
	entity  string
	namer   schema.Namer
}

// WithOrderBy append the order by clause, enabled by default
func WithOrderBy(enabled bool) RenderOption {
	return func(c *renderConfig) {
		c.orderBy = enabled
	}
}

// WithEntity entity written by delete and update, defaults to the descriptor's
func WithEntity(entity string) RenderOption {
	return func(c *renderConfig) {
		c.entity = entity
	}
}

// WithNamer map properties to attribute names
func WithNamer(namer schema.Namer) RenderOption {
	return func(c *renderConfig) {
		c.namer = namer
	}
}

// Render render a descriptor into JDQL, e.g. findByNameLikeAndPriceLessThanEqual
// renders as where name like ?1 and price <= ?2
func Render(desc *method.QueryDescriptor, opts ...RenderOption) (string, error) {
	stmt, err := renderStatement(context.Background(), desc, opts...)
	if err != nil {
		return "", err
	}
	return stmt.SQL.String(), nil
}

// Render render a descriptor with the db's naming strategy and order by setting
func (db *DB) Render(desc *method.QueryDescriptor) (string, error) {
	return Render(desc, WithOrderBy(db.RenderOrderBy), WithNamer(db.NamingStrategy))
}

func renderStatement(ctx context.Context, desc *method.QueryDescriptor, opts ...RenderOption) (*Statement, error) {
	config := renderConfig{orderBy: true, namer: schema.NamingStrategy{}}
	for _, opt := range opts {
		opt(&config)
	}
	if config.entity == "" {
		config.entity = desc.Entity
	}
	if config.namer == nil {
		config.namer = schema.NamingStrategy{}
	}

	stmt := NewStatement(ctx, config.entity)
	if err := stmt.addActionClause(desc.Action); err != nil {
		return nil, err
	}

	if len(desc.Conditions) > 0 {
		for _, c := range desc.Conditions {
			if _, ok := conditionOps[c.Operator]; !ok {
				return nil, fmt.Errorf("%w: %v on %s", ErrUnsupportedOperator, c.Operator, c.Property)
			}
		}
		stmt.AddClause(conditions{entity: config.entity, namer: config.namer, conditions: desc.Conditions})
	}

	if config.orderBy && len(desc.OrderBy) > 0 {
		stmt.AddClause(orderBy{entity: config.entity, namer: config.namer, items: desc.OrderBy})
	}

	stmt.Build(stmt.BuildClauses...)
	return stmt, nil
}

// addActionClause add the clause written before where for action
func (stmt *Statement) addActionClause(action method.Action) error {
	switch action {
	case method.Find:
	case method.Count:
		stmt.AddClause(clause.Select{})
	case method.Exists:
		stmt.AddClause(clause.Select{Exists: true})
	case method.Delete, method.Update:
		if stmt.Entity == "" {
			return fmt.Errorf("%w: %v requires an entity", ErrUnknownEntity, action)
		}
		if action == method.Delete {
			stmt.AddClause(clause.Delete{Entity: stmt.Entity})
		} else {
			stmt.AddClause(clause.Update{Entity: stmt.Entity})
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedAction, action)
	}
	return nil
}

// infix operators written as p [not ]op ?n
var conditionOps = map[method.Operator]string{
	method.Equal:            "=",
	method.GreaterThan:      ">",
	method.GreaterThanEqual: ">=",
	method.LessThan:         "<",
	method.LessThanEqual:    "<=",
	method.Like:             "like",
	method.In:               "in",
	method.Between:          "between",
	method.Contains:         "like",
	method.StartsWith:       "left",
	method.EndsWith:         "right",
	method.Null:             "null",
	method.Empty:            "empty",
	method.True:             "true",
	method.False:            "false",
}

// conditions where clause of a descriptor, connectors are read from the following condition
type conditions struct {
	entity     string
	namer      schema.Namer
	conditions []method.Condition
}

func (conditions) Name() string {
	return "where"
}

func (cs conditions) Build(builder clause.Builder) {
	for idx, c := range cs.conditions {
		if idx > 0 {
			if c.And {
				builder.WriteString(" and ")
			} else {
				builder.WriteString(" or ")
			}
		}
		buildCondition(builder, cs.namer.AttributeName(cs.entity, c.Property), c)
	}
}

func buildCondition(builder clause.Builder, attribute string, c method.Condition) {
	property := attribute
	if c.IgnoreCase {
		property = "lower(" + attribute + ")"
	}

	param := func() string {
		placeholder := builder.AddVar(clause.Param{Name: attribute})
		if c.IgnoreCase {
			return "lower(" + placeholder + ")"
		}
		return placeholder
	}

	eq := " = "
	not := ""
	if c.Negate {
		eq = " <> "
		not = "not "
	}

	switch c.Operator {
	case method.Equal:
		builder.WriteString(property + eq + param())
	case method.StartsWith, method.EndsWith:
		placeholder := param()
		builder.WriteString(conditionOps[c.Operator] + "(" + property + ", length(" + placeholder + "))" + eq + placeholder)
	case method.Contains:
		builder.WriteString(property + " " + not + "like '%'||" + param() + "||'%'")
	case method.Null, method.Empty:
		builder.WriteString(property + " is " + not + conditionOps[c.Operator])
	case method.True, method.False:
		builder.WriteString(property + eq + conditionOps[c.Operator])
	case method.Between:
		lower := param()
		builder.WriteString(property + " " + not + "between " + lower + " and " + param())
	default:
		builder.WriteString(property + " " + not + conditionOps[c.Operator] + " " + param())
	}
}

// orderBy order by clause of a descriptor, direction None writes no keyword
type orderBy struct {
	entity string
	namer  schema.Namer
	items  []method.OrderBy
}

func (orderBy) Name() string {
	return "order by"
}

func (o orderBy) Build(builder clause.Builder) {
	for idx, item := range o.items {
		if idx > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(o.namer.AttributeName(o.entity, item.Property))
		if item.Direction != method.None {
			builder.WriteByte(' ')
			builder.WriteString(item.Direction.String())
		}
	}
}
