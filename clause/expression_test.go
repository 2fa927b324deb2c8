package clause_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gorm.io/jdql/clause"
)

func TestAttr(t *testing.T) {
	for _, path := range []string{"name", "address.zipCode", "_version", "line2"} {
		_, err := clause.Attr(path)
		assert.NoError(t, err, path)
	}

	for _, path := range []string{"", "address..zipCode", ".name", "name.", "2fa", "first name", "name-1"} {
		_, err := clause.Attr(path)
		assert.ErrorIs(t, err, clause.ErrInvalidAttribute, path)
	}

	assert.Panics(t, func() { clause.MustAttr("") })
}

func TestExpressions(t *testing.T) {
	var (
		name    = clause.MustAttr("name")
		price   = clause.MustAttr("price")
		results = []struct {
			Expression clause.Expression
			Result     string
			Vars       []interface{}
		}{
			{clause.Attribute{Path: "address.zipCode"}, "address.zipCode", nil},
			{clause.Lower(name), "lower(name)", nil},
			{clause.Upper(name), "upper(name)", nil},
			{clause.Length(name), "length(name)", nil},
			{clause.Abs(price), "abs(price)", nil},
			{clause.Left(name, clause.NumericLiteral{Value: 3}), "left(name, ?1)", []interface{}{3}},
			{clause.Right(name, clause.Length(clause.StringLiteral{Value: "zhu"})), "right(name, length(?1))", []interface{}{"zhu"}},
			{clause.Concat(name, clause.StringLiteral{Value: "!"}), "concat(name, ?1)", []interface{}{"!"}},
			{must(price.Plus(1)), "price + ?1", []interface{}{1}},
			{must(must(price.Plus(1)).Times(2)), "(price + ?1) * ?2", []interface{}{1, 2}},
			{must(price.Divide(must(price.Minus(1)))), "price / (price - ?1)", []interface{}{1}},
			{must(name.Concat("!")), "name || ?1", []interface{}{"!"}},
			{must(must(price.Times(2)).GreaterThan(100)), "price * ?1 > ?2", []interface{}{2, 100}},
			{must(clause.Lower(name).EqualTo(clause.Lower(clause.StringLiteral{Value: "JinZhu"}))), "lower(name) = lower(?1)", []interface{}{"JinZhu"}},
		}
	)

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			sql, vars := build(result.Expression)
			assert.Equal(t, result.Result, sql)
			assert.Equal(t, result.Vars, vars)
		})
	}
}

func TestComparable(t *testing.T) {
	name := clause.MustAttr("name")

	_, err := clause.Comparable{}.EqualTo(1)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)

	_, err = name.Satisfies(nil)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)

	_, err = name.In()
	assert.ErrorIs(t, err, clause.ErrInvalidValue)

	_, err = name.Plus(struct{}{})
	assert.ErrorIs(t, err, clause.ErrUnsupportedLiteral)

	r, err := name.NotEqualTo("jinzhu")
	assert.NoError(t, err)
	assert.Equal(t, clause.BasicRestriction{Expression: clause.Attribute{Path: "name"}, Constraint: clause.NotEqualTo{Value: clause.StringLiteral{Value: "jinzhu"}}}, r)

	sql, vars := build(must(name.StartsWith("50%")))
	assert.Equal(t, `name like ?1 escape '\'`, sql)
	assert.Equal(t, []interface{}{`50\%%`}, vars)

	sql, _ = build(must(name.NotLike("J%")))
	assert.Equal(t, "name not like ?1", sql)

	sql, _ = build(must(name.NotBetween("a", "m")))
	assert.Equal(t, "name not between ?1 and ?2", sql)

	sql, _ = build(must(name.NotIn("a", "b")))
	assert.Equal(t, "name not in (?1, ?2)", sql)

	sql, _ = build(must(name.NotNull()))
	assert.Equal(t, "name is not null", sql)

	sql, _ = build(must(clause.MustAttr("tags").NotEmpty()))
	assert.Equal(t, "tags is not empty", sql)
}
