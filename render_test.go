package jdql_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/jdql"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

var renderMethods = []string{
	"findByNameLikeAndPriceLessThanEqual",
	"findByNameContains",
	"findByNameNotContains",
	"findByNameIgnoreCaseContains",
	"countByAgeGreaterThanEqual",
	"existsByEmail",
	"deleteByStatus",
	"updateByIdIn",
	"findByNameNot",
	"findByNameIgnoreCase",
	"findByNameIgnoreCaseNotLike",
	"findByNameStartsWith",
	"findByNameNotEndsWith",
	"findByAgeBetweenOrAgeNotBetween",
	"findByAgeGreaterThanAndAgeLessThanOrAgeNotIn",
	"findByDeletedAtNullAndTagsNotEmpty",
	"findByDeletedAtNotNullOrTagsEmpty",
	"findByActiveTrueOrBannedNotFalse",
	"findByActiveNotTrue",
	"findByAddress_ZipCodeIn",
	"findByPriceGreaterThanOrderByPriceDescName",
	"findAllOrderByNameAsc",
	"findFirst3ByAgeLessThanEqualOrderByAgeDesc",
}

func TestRenderGolden(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range renderMethods {
		desc, err := method.Parse(name)
		require.NoError(t, err, name)

		query, err := jdql.Render(desc, jdql.WithEntity("Product"))
		require.NoError(t, err, name)
		fmt.Fprintf(&buf, "%s\n\t%s\n", name, query)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "render", buf.Bytes())
}

func TestRender(t *testing.T) {
	results := []struct {
		Name   string
		Result string
	}{
		{"findByNameLikeAndPriceLessThanEqual", "where name like ?1 and price <= ?2"},
		{"findByNameContains", "where name like '%'||?1||'%'"},
		{"countByAgeGreaterThanEqual", "select count(this) where age >= ?1"},
		{"deleteByStatus", "delete Product where status = ?1"},
		{"findByNameOrAgeAndEmail", "where name = ?1 or age = ?2 and email = ?3"},
		{"find", ""},
	}

	for _, result := range results {
		t.Run(result.Name, func(t *testing.T) {
			desc, err := method.Parse(result.Name)
			require.NoError(t, err)
			desc.Entity = "Product"

			query, err := jdql.Render(desc)
			require.NoError(t, err)
			assert.Equal(t, result.Result, query)
		})
	}
}

func TestRenderOptions(t *testing.T) {
	desc, err := method.Parse("findByAddress_ZipCodeOrderByCreatedAtDesc")
	require.NoError(t, err)

	query, err := jdql.Render(desc)
	require.NoError(t, err)
	assert.Equal(t, "where address.zipCode = ?1 order by createdAt desc", query)

	query, err = jdql.Render(desc, jdql.WithOrderBy(false))
	require.NoError(t, err)
	assert.Equal(t, "where address.zipCode = ?1", query)

	query, err = jdql.Render(desc, jdql.WithNamer(schema.NamingStrategy{SnakeCase: true}))
	require.NoError(t, err)
	assert.Equal(t, "where address.zip_code = ?1 order by created_at desc", query)

	desc, err = method.Parse("updateByStatus")
	require.NoError(t, err)
	desc.Entity = "Product"

	query, err = jdql.Render(desc, jdql.WithEntity("Order"))
	require.NoError(t, err)
	assert.Equal(t, "update Order where status = ?1", query)
}

func TestRenderErrors(t *testing.T) {
	desc, err := method.Parse("deleteByStatus")
	require.NoError(t, err)

	_, err = jdql.Render(desc)
	assert.ErrorIs(t, err, jdql.ErrUnknownEntity)

	_, err = jdql.Render(&method.QueryDescriptor{Action: method.Action(9)})
	assert.ErrorIs(t, err, jdql.ErrUnsupportedAction)

	_, err = jdql.Render(&method.QueryDescriptor{
		Action:     method.Find,
		Conditions: []method.Condition{{Property: "name", Operator: method.Operator(99), And: true}},
	})
	assert.ErrorIs(t, err, jdql.ErrUnsupportedOperator)
}

func TestDBRender(t *testing.T) {
	db := jdql.Open(jdql.WithoutOrderBy(), jdql.WithNameStrategy(schema.NamingStrategy{SnakeCase: true}))

	desc, err := method.Parse("findByZipCodeOrderByCreatedAt")
	require.NoError(t, err)

	query, err := db.Render(desc)
	require.NoError(t, err)
	assert.Equal(t, "where zip_code = ?1", query)
}
