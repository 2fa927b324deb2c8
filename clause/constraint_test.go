package clause_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/jdql/clause"
)

func TestConstraints(t *testing.T) {
	var (
		name    = clause.Attribute{Path: "name"}
		age     = clause.Attribute{Path: "age"}
		results = []struct {
			Expression clause.Expression
			Constraint clause.Constraint
			Result     string
			Vars       []interface{}
		}{
			{name, must(clause.NewEqualTo("jinzhu")), "name = ?1", []interface{}{"jinzhu"}},
			{name, must(clause.NewNotEqualTo("jinzhu")), "name <> ?1", []interface{}{"jinzhu"}},
			{age, must(clause.NewGreaterThan(18)), "age > ?1", []interface{}{18}},
			{age, must(clause.NewGreaterThanOrEqual(18)), "age >= ?1", []interface{}{18}},
			{age, must(clause.NewLessThan(18)), "age < ?1", []interface{}{18}},
			{age, must(clause.NewLessThanOrEqual(18)), "age <= ?1", []interface{}{18}},
			{age, must(clause.NewBetween(18, 30)), "age between ?1 and ?2", []interface{}{18, 30}},
			{age, must(clause.NewNotBetween(18, 30)), "age not between ?1 and ?2", []interface{}{18, 30}},
			{age, must(clause.NewIn(18, 20, 30)), "age in (?1, ?2, ?3)", []interface{}{18, 20, 30}},
			{age, must(clause.NewNotIn(18)), "age not in (?1)", []interface{}{18}},
			{name, clause.LikePattern("J%n"), "name like ?1", []interface{}{"J%n"}},
			{name, clause.NotLike(clause.LikePattern("J%n")), "name not like ?1", []interface{}{"J%n"}},
			{name, clause.LikePrefix("Jo"), "name like ?1", []interface{}{"Jo%"}},
			{name, clause.LikePrefix("50%"), "name like ?1 escape '\\'", []interface{}{"50\\%%"}},
			{name, clause.Null{}, "name is null", nil},
			{name, clause.NotNull{}, "name is not null", nil},
			{clause.Attribute{Path: "tags"}, clause.Empty{}, "tags is empty", nil},
			{clause.Attribute{Path: "tags"}, clause.NotEmpty{}, "tags is not empty", nil},
			{age, must(clause.NewEqualTo(clause.Attribute{Path: "limit"})), "age = limit", nil},
		}
	)

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			sql, vars := build(clause.BasicRestriction{Expression: result.Expression, Constraint: result.Constraint})
			assert.Equal(t, result.Result, sql)
			assert.Equal(t, result.Vars, vars)
		})
	}
}

func TestConstraintNegate(t *testing.T) {
	var (
		one  = clause.NumericLiteral{Value: 1}
		ten  = clause.NumericLiteral{Value: 10}
		like = clause.Like{Pattern: "J%"}
	)

	results := []struct {
		Constraint clause.Constraint
		Negated    clause.Constraint
	}{
		{clause.EqualTo{Value: one}, clause.NotEqualTo{Value: one}},
		{clause.GreaterThan{Bound: one}, clause.LessThanOrEqual{Bound: one}},
		{clause.GreaterThanOrEqual{Bound: one}, clause.LessThan{Bound: one}},
		{clause.Between{Lower: one, Upper: ten}, clause.NotBetween{Lower: one, Upper: ten}},
		{clause.In{Values: []clause.Expression{one, ten}}, clause.NotIn{Values: []clause.Expression{one, ten}}},
		{like, clause.NotLike(like)},
		{clause.Null{}, clause.NotNull{}},
		{clause.Empty{}, clause.NotEmpty{}},
	}

	for _, result := range results {
		t.Run(fmt.Sprintf("%T", result.Constraint), func(t *testing.T) {
			assert.Equal(t, result.Negated, result.Constraint.Negate())
			assert.Equal(t, result.Constraint, result.Negated.Negate())
			assert.Equal(t, result.Constraint, result.Constraint.Negate().Negate())
		})
	}
}

func TestConstraintValidation(t *testing.T) {
	_, err := clause.NewEqualTo(nil)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)

	_, err = clause.NewIn()
	assert.ErrorIs(t, err, clause.ErrInvalidValue)

	_, err = clause.NewNotIn(1, nil)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)
	assert.Contains(t, err.Error(), "value #1")

	_, err = clause.NewBetween(nil, 10)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)
	assert.Contains(t, err.Error(), "lower bound")

	_, err = clause.NewNotBetween(1, nil)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)
	assert.Contains(t, err.Error(), "upper bound")

	_, err = clause.NewGreaterThan(struct{}{})
	assert.ErrorIs(t, err, clause.ErrUnsupportedLiteral)
}

func TestBetweenBounds(t *testing.T) {
	between := must(clause.NewBetween(18, 30))

	lower, upper := between.Bounds()
	assert.Equal(t, clause.GreaterThanOrEqual{Bound: clause.NumericLiteral{Value: 18}}, lower)
	assert.Equal(t, clause.LessThanOrEqual{Bound: clause.NumericLiteral{Value: 30}}, upper)

	below, above := clause.NotBetween(between).Bounds()
	assert.Equal(t, clause.LessThan{Bound: clause.NumericLiteral{Value: 18}}, below)
	assert.Equal(t, clause.GreaterThan{Bound: clause.NumericLiteral{Value: 30}}, above)

	restriction := clause.BasicRestriction{Expression: clause.Attribute{Path: "age"}, Constraint: between}
	sql, vars := build(restriction.Decompose())
	assert.Equal(t, "(age >= ?1 and age <= ?2)", sql)
	assert.Equal(t, []interface{}{18, 30}, vars)

	negated, ok := restriction.Negate().(clause.BasicRestriction)
	require.True(t, ok)
	sql, _ = build(negated.Decompose())
	assert.Equal(t, "(age < ?1 or age > ?2)", sql)

	null := clause.BasicRestriction{Expression: clause.Attribute{Path: "age"}, Constraint: clause.Null{}}
	assert.Equal(t, null, null.Decompose())
}
