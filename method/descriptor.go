package method

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action query action decoded from the method name prefix
type Action int

const (
	Find Action = iota
	Delete
	Update
	Count
	Exists
)

var actionNames = map[Action]string{
	Find:   "find",
	Delete: "delete",
	Update: "update",
	Count:  "count",
	Exists: "exists",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalJSON marshal action as its name
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Operator comparison operator of a condition
type Operator int

const (
	Equal Operator = iota
	GreaterThan
	GreaterThanEqual
	LessThan
	LessThanEqual
	Between
	Like
	Contains
	StartsWith
	EndsWith
	In
	Null
	Empty
	True
	False
)

var operatorNames = map[Operator]string{
	Equal:            "Equal",
	GreaterThan:      "GreaterThan",
	GreaterThanEqual: "GreaterThanEqual",
	LessThan:         "LessThan",
	LessThanEqual:    "LessThanEqual",
	Between:          "Between",
	Like:             "Like",
	Contains:         "Contains",
	StartsWith:       "StartsWith",
	EndsWith:         "EndsWith",
	In:               "In",
	Null:             "Null",
	Empty:            "Empty",
	True:             "True",
	False:            "False",
}

func (op Operator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// MarshalJSON marshal operator as its name
func (op Operator) MarshalJSON() ([]byte, error) {
	return json.Marshal(op.String())
}

// Params number of values bound by the operator
func (op Operator) Params() int {
	switch op {
	case Between:
		return 2
	case Null, Empty, True, False:
		return 0
	default:
		return 1
	}
}

// Condition a single property condition of the By clause.
//
// And describes the connector between the previous condition and this one,
// it is always true for the first condition.
type Condition struct {
	Property   string   `json:"property"`
	Operator   Operator `json:"operator"`
	IgnoreCase bool     `json:"ignoreCase,omitempty"`
	Negate     bool     `json:"negate,omitempty"`
	And        bool     `json:"and"`
}

func (c Condition) String() string {
	var b strings.Builder
	b.WriteString(c.Property)
	if c.IgnoreCase {
		b.WriteString(" IgnoreCase")
	}
	if c.Negate {
		b.WriteString(" Not")
	}
	b.WriteByte(' ')
	b.WriteString(c.Operator.String())
	return b.String()
}

// Direction sort direction
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return ""
	}
}

// MarshalJSON marshal direction as its keyword
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// OrderBy order by entry
type OrderBy struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// QueryDescriptor decoded Query by Method Name
type QueryDescriptor struct {
	Method     string      `json:"method"`
	Action     Action      `json:"action"`
	Entity     string      `json:"entity,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
	OrderBy    []OrderBy   `json:"orderBy,omitempty"`
	First      int         `json:"first,omitempty"`
}

// Params number of values the query binds
func (desc *QueryDescriptor) Params() (n int) {
	for _, c := range desc.Conditions {
		n += c.Operator.Params()
	}
	return n
}

// WithEntity returns a copy of the descriptor bound to entity
func (desc *QueryDescriptor) WithEntity(entity string) *QueryDescriptor {
	clone := *desc
	clone.Conditions = append([]Condition(nil), desc.Conditions...)
	clone.OrderBy = append([]OrderBy(nil), desc.OrderBy...)
	clone.Entity = entity
	return &clone
}
