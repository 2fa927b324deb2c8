package clause_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gorm.io/jdql/clause"
)

func TestRestrictions(t *testing.T) {
	var (
		name    = must(clause.MustAttr("name").EqualTo("jinzhu"))
		age     = must(clause.MustAttr("age").GreaterThan(18))
		active  = must(clause.MustAttr("active").EqualTo(true))
		results = []struct {
			Restriction clause.Restriction
			Result      string
			Vars        []interface{}
		}{
			{name, "name = ?1", []interface{}{"jinzhu"}},
			{name.Negate(), "name <> ?1", []interface{}{"jinzhu"}},
			{clause.Not(age), "age <= ?1", []interface{}{18}},
			{must(clause.All(name)), "name = ?1", []interface{}{"jinzhu"}},
			{must(clause.All(name, age)), "(name = ?1 and age > ?2)", []interface{}{"jinzhu", 18}},
			{must(clause.Any(name, age)), "(name = ?1 or age > ?2)", []interface{}{"jinzhu", 18}},
			{must(clause.All(name, age)).Negate(), "not (name = ?1 and age > ?2)", []interface{}{"jinzhu", 18}},
			{must(clause.Any(name)).Negate(), "not (name = ?1)", []interface{}{"jinzhu"}},
			{
				must(clause.Any(must(clause.All(name, age)), active)),
				"((name = ?1 and age > ?2) or active = ?3)", []interface{}{"jinzhu", 18, true},
			},
			{
				must(clause.All(must(clause.Any(name, age)).Negate(), active)),
				"(not (name = ?1 or age > ?2) and active = ?3)", []interface{}{"jinzhu", 18, true},
			},
		}
	)

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			sql, vars := build(result.Restriction)
			assert.Equal(t, result.Result, sql)
			assert.Equal(t, result.Vars, vars)
		})
	}
}

func TestCompositeNegate(t *testing.T) {
	var (
		name = must(clause.MustAttr("name").EqualTo("jinzhu"))
		age  = must(clause.MustAttr("age").GreaterThan(18))
		all  = must(clause.All(name, age))
	)

	negated := all.Negate().(clause.CompositeRestriction)
	assert.True(t, negated.Negated)
	assert.Equal(t, all.Restrictions, negated.Restrictions)
	assert.Equal(t, all, negated.Negate())
	assert.Equal(t, name, name.Negate().Negate())
}

func TestCompositeValidation(t *testing.T) {
	_, err := clause.All()
	assert.ErrorIs(t, err, clause.ErrEmptyComposite)

	_, err = clause.Any()
	assert.ErrorIs(t, err, clause.ErrEmptyComposite)

	_, err = clause.All(must(clause.MustAttr("name").IsNull()), nil)
	assert.ErrorIs(t, err, clause.ErrInvalidValue)
}

func TestWhere(t *testing.T) {
	var (
		name = must(clause.MustAttr("name").EqualTo("jinzhu"))
		age  = must(clause.MustAttr("age").GreaterThan(18))
	)

	results := []struct {
		Where  clause.Where
		Result string
	}{
		{clause.Where{Restriction: name}, "name = ?1"},
		{clause.Where{Restriction: must(clause.All(name, age))}, "name = ?1 and age > ?2"},
		{clause.Where{Restriction: must(clause.Any(name, age)).Negate()}, "not (name = ?1 or age > ?2)"},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			sql, _ := build(result.Where)
			assert.Equal(t, result.Result, sql)
		})
	}
}

func TestOrderBy(t *testing.T) {
	results := []struct {
		Sorts  []clause.Sort
		Result string
	}{
		{[]clause.Sort{clause.Asc("name")}, "name asc"},
		{[]clause.Sort{clause.Desc("price")}, "price desc"},
		{[]clause.Sort{clause.AscIgnoreCase("name")}, "lower(name) asc"},
		{[]clause.Sort{clause.DescIgnoreCase("name"), clause.Asc("address.zipCode")}, "lower(name) desc, address.zipCode asc"},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			sql, _ := build(clause.OrderBy{Sorts: result.Sorts})
			assert.Equal(t, result.Result, sql)
		})
	}
}
