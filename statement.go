package jdql

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/jdql/clause"
)

// Statement statement, numbers bound values ?1, ?2... in the order they are added
type Statement struct {
	Context      context.Context
	Entity       string
	Clauses      map[string]clause.Clause
	BuildClauses []string
	SQL          strings.Builder
	Vars         []interface{}
}

// NewStatement statement for entity, clauses are built in BuildClauses order
func NewStatement(ctx context.Context, entity string) *Statement {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Statement{
		Context:      ctx,
		Entity:       entity,
		Clauses:      map[string]clause.Clause{},
		BuildClauses: []string{"select", "delete", "update", "where", "order by"},
	}
}

// WriteString write string
func (stmt *Statement) WriteString(str string) (int, error) {
	return stmt.SQL.WriteString(str)
}

// WriteByte write byte
func (stmt *Statement) WriteByte(c byte) error {
	return stmt.SQL.WriteByte(c)
}

// AddVar add var, returns its placeholder. Nested []interface{} are written as a parenthesized list.
func (stmt *Statement) AddVar(vars ...interface{}) string {
	var placeholders strings.Builder
	for idx, v := range vars {
		if idx > 0 {
			placeholders.WriteString(", ")
		}

		switch v := v.(type) {
		case []interface{}:
			placeholders.WriteByte('(')
			placeholders.WriteString(stmt.AddVar(v...))
			placeholders.WriteByte(')')
		default:
			stmt.Vars = append(stmt.Vars, v)
			placeholders.WriteByte('?')
			placeholders.WriteString(strconv.Itoa(len(stmt.Vars)))
		}
	}
	return placeholders.String()
}

// Params number of placeholders written
func (stmt *Statement) Params() int {
	return len(stmt.Vars)
}

// Bound every placeholder has a value, false when some are method parameters
func (stmt *Statement) Bound() bool {
	for _, v := range stmt.Vars {
		if _, ok := v.(clause.Param); ok {
			return false
		}
	}
	return true
}

// AddClause add clause, replacing the clause with the same name
func (stmt *Statement) AddClause(v clause.Interface) {
	stmt.Clauses[v.Name()] = clause.Clause{Name: v.Name(), Expression: v}
}

// Build build clauses in order, separated by a space
func (stmt *Statement) Build(clauses ...string) {
	var firstClauseWritten bool

	for _, name := range clauses {
		if c, ok := stmt.Clauses[name]; ok {
			if firstClauseWritten {
				stmt.WriteByte(' ')
			}

			firstClauseWritten = true
			c.Build(stmt)
		}
	}
}

func (stmt *Statement) String() string {
	return stmt.SQL.String()
}
