package jdql

import (
	"errors"

	"gorm.io/jdql/clause"
	"gorm.io/jdql/method"
	"gorm.io/jdql/schema"
)

var (
	// ErrInvalidMethodName method name can't be parsed
	ErrInvalidMethodName = method.ErrInvalidMethodName
	// ErrUnsupportedAction action can't be rendered
	ErrUnsupportedAction = errors.New("unsupported action")
	// ErrUnsupportedOperator operator can't be rendered
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrNoHandler no handler registered for the action
	ErrNoHandler = errors.New("no handler for action")
	// ErrArgumentCount number of arguments doesn't match the method's parameters
	ErrArgumentCount = errors.New("argument count mismatch")
	// ErrUnknownEntity entity is not registered
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrUnknownAttribute property is not an attribute of the entity
	ErrUnknownAttribute = schema.ErrUnknownAttribute
	// ErrInvalidValue argument can't be used as a query value
	ErrInvalidValue = clause.ErrInvalidValue
)
