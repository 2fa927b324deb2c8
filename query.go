package jdql

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"gorm.io/jdql/clause"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

// Query rendered query, Vars holds a clause.Param for every value supplied when the query runs
type Query struct {
	Descriptor *method.QueryDescriptor
	JDQL       string
	Vars       []interface{}
}

func (q *Query) String() string {
	return q.JDQL
}

// Query parse method name and render it for entity, properties are
// validated when the entity is registered
func (db *DB) Query(ctx context.Context, entity, name string) (query *Query, err error) {
	var (
		begin = time.Now()
		stmt  *Statement
	)
	defer func() {
		db.trace(ctx, begin, stmt, err)
	}()

	desc, err := db.describe(ctx, entity, name)
	if err != nil {
		return nil, err
	}

	stmt, err = renderStatement(ctx, desc, WithOrderBy(db.RenderOrderBy), WithNamer(db.NamingStrategy))
	if err != nil {
		return nil, err
	}
	return &Query{Descriptor: desc, JDQL: stmt.SQL.String(), Vars: stmt.Vars}, nil
}

// Bind parse method name and render it with args bound in order, and binds
// tighter than or, e.g. findByNameAndAgeOrEmail renders where (name = ?1 and age = ?2) or email = ?3
func (db *DB) Bind(ctx context.Context, entity, name string, args ...interface{}) (query *Query, err error) {
	var (
		begin = time.Now()
		stmt  *Statement
	)
	defer func() {
		db.trace(ctx, begin, stmt, err)
	}()

	desc, err := db.describe(ctx, entity, name)
	if err != nil {
		return nil, err
	}

	restriction, err := toRestriction(desc, db.NamingStrategy, args)
	if err != nil {
		return nil, err
	}

	stmt = NewStatement(ctx, desc.Entity)
	if err = stmt.addActionClause(desc.Action); err != nil {
		return nil, err
	}

	if restriction != nil {
		stmt.AddClause(clause.Where{Restriction: restriction})
	}

	if db.RenderOrderBy && len(desc.OrderBy) > 0 {
		sorts := make([]clause.Sort, len(desc.OrderBy))
		for idx, item := range desc.OrderBy {
			sorts[idx] = clause.Sort{
				Property:   db.NamingStrategy.AttributeName(desc.Entity, item.Property),
				Descending: item.Direction == method.Desc,
			}
		}
		stmt.AddClause(clause.OrderBy{Sorts: sorts})
	}

	stmt.Build(stmt.BuildClauses...)
	return &Query{Descriptor: desc, JDQL: stmt.SQL.String(), Vars: stmt.Vars}, nil
}

// Where render a restriction built with the clause package, attribute paths
// are validated when the entity is registered
func (db *DB) Where(ctx context.Context, entity string, restriction clause.Restriction, sorts ...clause.Sort) (query *Query, err error) {
	var (
		begin = time.Now()
		stmt  *Statement
	)
	defer func() {
		db.trace(ctx, begin, stmt, err)
	}()

	entity = db.NamingStrategy.EntityName(entity)
	if s, ok := db.Schema(entity); ok {
		if err = checkAttributes(s, restriction, sorts); err != nil {
			return nil, err
		}
	}

	stmt = NewStatement(ctx, entity)
	if restriction != nil {
		stmt.AddClause(clause.Where{Restriction: restriction})
	}
	if len(sorts) > 0 {
		stmt.AddClause(clause.OrderBy{Sorts: sorts})
	}

	stmt.Build(stmt.BuildClauses...)
	return &Query{JDQL: stmt.SQL.String(), Vars: stmt.Vars}, nil
}

// describe parsed descriptor bound to entity, validated when entity is registered
func (db *DB) describe(ctx context.Context, entity, name string) (*method.QueryDescriptor, error) {
	desc, err := db.Parse(ctx, name)
	if err != nil {
		return nil, err
	}

	desc.Entity = db.NamingStrategy.EntityName(entity)
	if err := db.validate(desc.Entity, desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func checkAttributes(s *schema.Schema, restriction clause.Restriction, sorts []clause.Sort) error {
	var errs *multierror.Error
	check := func(path string) {
		if s.LookUpAttribute(path) == nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, s.Name, path))
		}
	}

	if restriction != nil {
		for _, path := range attributePaths(restriction, nil) {
			check(path)
		}
	}
	for _, sort := range sorts {
		check(sort.Property)
	}
	return errs.ErrorOrNil()
}

// attributePaths attribute paths referenced by expr, in build order
func attributePaths(expr clause.Expression, paths []string) []string {
	switch v := expr.(type) {
	case clause.Attribute:
		paths = append(paths, v.Path)
	case clause.Comparable:
		paths = attributePaths(v.Expression, paths)
	case clause.Function:
		for _, arg := range v.Args {
			paths = attributePaths(arg, paths)
		}
	case clause.Operation:
		paths = attributePaths(v.Left, paths)
		paths = attributePaths(v.Right, paths)
	case clause.BasicRestriction:
		paths = attributePaths(v.Expression, paths)
	case clause.CompositeRestriction:
		for _, r := range v.Restrictions {
			paths = attributePaths(r, paths)
		}
	}
	return paths
}
