package method_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/jdql/method"
)

func TestParse(t *testing.T) {
	results := []struct {
		Name       string
		Descriptor method.QueryDescriptor
	}{
		{"findByNameLikeAndPriceLessThanEqual", method.QueryDescriptor{
			Action: method.Find,
			Conditions: []method.Condition{
				{Property: "name", Operator: method.Like, And: true},
				{Property: "price", Operator: method.LessThanEqual, And: true},
			},
		}},
		{"findByNameContains", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "name", Operator: method.Contains, And: true}},
		}},
		{"countByAgeGreaterThanEqual", method.QueryDescriptor{
			Action:     method.Count,
			Conditions: []method.Condition{{Property: "age", Operator: method.GreaterThanEqual, And: true}},
		}},
		{"deleteByStatus", method.QueryDescriptor{
			Action:     method.Delete,
			Conditions: []method.Condition{{Property: "status", Operator: method.Equal, And: true}},
		}},
		{"existsByEmail", method.QueryDescriptor{
			Action:     method.Exists,
			Conditions: []method.Condition{{Property: "email", Operator: method.Equal, And: true}},
		}},
		{"updateByIdIn", method.QueryDescriptor{
			Action:     method.Update,
			Conditions: []method.Condition{{Property: "id", Operator: method.In, And: true}},
		}},
		{"findByID", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "iD", Operator: method.Equal, And: true}},
		}},
		{"findByURLPath", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "uRLPath", Operator: method.Equal, And: true}},
		}},
		{"findByAddress_ZIPCode", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "address.zIPCode", Operator: method.Equal, And: true}},
		}},
		{"countFirstNamesByAge", method.QueryDescriptor{
			Action:     method.Count,
			Conditions: []method.Condition{{Property: "age", Operator: method.Equal, And: true}},
		}},
		{"deleteFirstByName", method.QueryDescriptor{
			Action:     method.Delete,
			Conditions: []method.Condition{{Property: "name", Operator: method.Equal, And: true}},
		}},
		{"findAll", method.QueryDescriptor{Action: method.Find}},
		{"find", method.QueryDescriptor{Action: method.Find}},
		{"findProductsByName", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "name", Operator: method.Equal, And: true}},
		}},
		{"findByFirstName", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "firstName", Operator: method.Equal, And: true}},
		}},
		{"findFirstByName", method.QueryDescriptor{
			Action:     method.Find,
			First:      1,
			Conditions: []method.Condition{{Property: "name", Operator: method.Equal, And: true}},
		}},
		{"findFirst10ByPriceGreaterThanOrderByPriceDesc", method.QueryDescriptor{
			Action:     method.Find,
			First:      10,
			Conditions: []method.Condition{{Property: "price", Operator: method.GreaterThan, And: true}},
			OrderBy:    []method.OrderBy{{Property: "price", Direction: method.Desc}},
		}},
		{"findByAddress_ZipCode", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "address.zipCode", Operator: method.Equal, And: true}},
		}},
		{"findByNameIgnoreCaseNotLike", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "name", Operator: method.Like, IgnoreCase: true, Negate: true, And: true}},
		}},
		{"findByNameNot", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "name", Operator: method.Equal, Negate: true, And: true}},
		}},
		{"findByNameOrAgeBetweenAndActiveTrue", method.QueryDescriptor{
			Action: method.Find,
			Conditions: []method.Condition{
				{Property: "name", Operator: method.Equal, And: true},
				{Property: "age", Operator: method.Between, And: false},
				{Property: "active", Operator: method.True, And: true},
			},
		}},
		{"findByNameStartsWithOrNameEndsWith", method.QueryDescriptor{
			Action: method.Find,
			Conditions: []method.Condition{
				{Property: "name", Operator: method.StartsWith, And: true},
				{Property: "name", Operator: method.EndsWith, And: false},
			},
		}},
		{"findByTagsNotEmptyAndDeletedAtNullAndBannedFalse", method.QueryDescriptor{
			Action: method.Find,
			Conditions: []method.Condition{
				{Property: "tags", Operator: method.Empty, Negate: true, And: true},
				{Property: "deletedAt", Operator: method.Null, And: true},
				{Property: "banned", Operator: method.False, And: true},
			},
		}},
		{"findByAgeLessThanOrderByNameAscAgeDescEmail", method.QueryDescriptor{
			Action:     method.Find,
			Conditions: []method.Condition{{Property: "age", Operator: method.LessThan, And: true}},
			OrderBy: []method.OrderBy{
				{Property: "name", Direction: method.Asc},
				{Property: "age", Direction: method.Desc},
				{Property: "email", Direction: method.None},
			},
		}},
		{"findOrderByAddress_CityDesc", method.QueryDescriptor{
			Action:  method.Find,
			OrderBy: []method.OrderBy{{Property: "address.city", Direction: method.Desc}},
		}},
	}

	for _, result := range results {
		t.Run(result.Name, func(t *testing.T) {
			desc, err := method.Parse(result.Name)
			require.NoError(t, err)

			result.Descriptor.Method = result.Name
			assert.Equal(t, &result.Descriptor, desc)
		})
	}
}

func TestParseErrors(t *testing.T) {
	results := []struct {
		Name string
		Msg  string
	}{
		{"", "empty method name"},
		{"searchByName", `unknown action "search"`},
		{"findBy", "missing condition after By"},
		{"findByAndName", "missing condition after By"},
		{"findByNameAnd", "missing condition"},
		{"findByNameOrOrAge", "missing condition"},
		{"findByNot", "missing property"},
		{"findByLike", "missing property"},
		{"findFirst0ByName", `invalid First count "0"`},
		{"findByNameOrderBy", "missing property after OrderBy"},
		{"findOrderByDesc", "missing property before Desc"},
		{"findByNameOrderByAgeAndName", `unexpected "And" in OrderBy`},
		{"deleteByNameOrderByAgeAsc", "OrderBy is only allowed on find"},
		{"findByName$", `unexpected "$"`},
		{"findByAddress__Zip", "empty property segment"},
		{"findByAddress_", "empty property segment"},
		{"findByAddress_1Zip", `property segment can't start with "1"`},
	}

	for _, result := range results {
		t.Run(result.Name, func(t *testing.T) {
			desc, err := method.Parse(result.Name)
			require.Error(t, err)
			assert.Nil(t, desc)
			assert.ErrorIs(t, err, method.ErrInvalidMethodName)
			assert.Contains(t, err.Error(), result.Msg)
			assert.Contains(t, err.Error(), `"`+result.Name+`"`)

			var syntaxErr *method.SyntaxError
			require.True(t, errors.As(err, &syntaxErr))
			assert.Equal(t, result.Name, syntaxErr.Method)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := method.Parse("findByNameAnd")

	var syntaxErr *method.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, len("findByNameAnd"), syntaxErr.Pos)
}

type recorder struct {
	method.BaseListener
	events []string
}

func (r *recorder) EnterAction(action method.Action) {
	r.events = append(r.events, "action "+action.String())
}

func (r *recorder) EnterCondition(index int, condition method.Condition) {
	r.events = append(r.events, "condition "+condition.String())
}

func (r *recorder) EnterOrderBy(index int, orderBy method.OrderBy) {
	r.events = append(r.events, "order "+orderBy.Property+" "+orderBy.Direction.String())
}

func (r *recorder) ExitMethod() {
	r.events = append(r.events, "exit")
}

func TestWalk(t *testing.T) {
	r := &recorder{}
	require.NoError(t, method.Walk("findByNameIgnoreCaseAndAgeNotInOrderByAgeDesc", r))
	assert.Equal(t, []string{
		"action find",
		"condition name IgnoreCase Equal",
		"condition age Not In",
		"order age desc",
		"exit",
	}, r.events)

	r = &recorder{}
	assert.Error(t, method.Walk("findByNameAnd", r))
	assert.NotContains(t, r.events, "exit")

	assert.NoError(t, method.Walk("findByName", nil))
}

func TestDescriptor(t *testing.T) {
	desc, err := method.Parse("findByNameAndAgeBetweenAndActiveTrueOrderByName")
	require.NoError(t, err)
	assert.Equal(t, 3, desc.Params())

	clone := desc.WithEntity("Product")
	clone.Conditions[0].Property = "title"
	assert.Equal(t, "Product", clone.Entity)
	assert.Equal(t, "", desc.Entity)
	assert.Equal(t, "name", desc.Conditions[0].Property)

	data, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method": "findByNameAndAgeBetweenAndActiveTrueOrderByName",
		"action": "find",
		"conditions": [
			{"property": "name", "operator": "Equal", "and": true},
			{"property": "age", "operator": "Between", "and": true},
			{"property": "active", "operator": "True", "and": true}
		],
		"orderBy": [{"property": "name", "direction": ""}]
	}`, string(data))

	assert.Equal(t, "Action(9)", method.Action(9).String())
	assert.Equal(t, "Operator(42)", method.Operator(42).String())
}
