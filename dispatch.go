package jdql

import (
	"context"
	"fmt"

	"gorm.io/jdql/method"
)

// HandlerFunc runs a rendered query
type HandlerFunc func(ctx context.Context, query *Query) error

// Handlers handlers by action
type Handlers map[method.Action]HandlerFunc

// Handle render method name for entity and pass it to the handler of its action.
// Without args the query keeps its parameters, otherwise args are bound in order.
// In dry run mode the query is rendered but no handler is called.
func (db *DB) Handle(ctx context.Context, entity, name string, handlers Handlers, args ...interface{}) (*Query, error) {
	var (
		query *Query
		err   error
	)
	if len(args) == 0 {
		query, err = db.Query(ctx, entity, name)
	} else {
		query, err = db.Bind(ctx, entity, name, args...)
	}
	if err != nil {
		return nil, err
	}

	handler, ok := handlers[query.Descriptor.Action]
	if !ok || handler == nil {
		return query, fmt.Errorf("%w: %v %s", ErrNoHandler, query.Descriptor.Action, name)
	}

	if db.DryRun {
		return query, nil
	}

	if err := handler(ctx, query); err != nil {
		db.Logger.Error(ctx, "%s failed: %v", name, err)
		return query, err
	}
	return query, nil
}
