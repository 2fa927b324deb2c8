package schema

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"gorm.io/jdql/method"
)

// Validate check every condition and order by property of desc against the schema,
// all problems are reported together as a *multierror.Error
func (schema *Schema) Validate(desc *method.QueryDescriptor) error {
	var result *multierror.Error

	for idx, condition := range desc.Conditions {
		attr := schema.LookUpAttribute(condition.Property)
		if attr == nil {
			result = multierror.Append(result, fmt.Errorf("%w: condition #%d %s.%s", ErrUnknownAttribute, idx, schema.Name, condition.Property))
			continue
		}

		if err := checkCondition(attr, condition); err != nil {
			result = multierror.Append(result, fmt.Errorf("condition #%d %s.%s: %w", idx, schema.Name, condition.Property, err))
		}
	}

	for idx, order := range desc.OrderBy {
		attr := schema.LookUpAttribute(order.Property)
		if attr == nil {
			result = multierror.Append(result, fmt.Errorf("%w: order by #%d %s.%s", ErrUnknownAttribute, idx, schema.Name, order.Property))
			continue
		}

		if attr.DataType == Collection || attr.DataType == Embeddable {
			result = multierror.Append(result, fmt.Errorf("order by #%d %s.%s: %w: can't sort by %s", idx, schema.Name, order.Property, ErrInvalidOperation, attr.DataType))
		}
	}

	if result != nil {
		result.ErrorFormat = listFormat
	}
	return result.ErrorOrNil()
}

func checkCondition(attr *Attribute, condition method.Condition) error {
	// attributes declared by name only
	if attr.DataType == "" {
		return nil
	}

	if condition.IgnoreCase && attr.DataType != String {
		return fmt.Errorf("%w: IgnoreCase on %s", ErrInvalidOperation, attr.DataType)
	}

	var allowed bool
	switch condition.Operator {
	case method.Null:
		allowed = true
	case method.Empty:
		allowed = attr.DataType == Collection
	case method.True, method.False:
		allowed = attr.DataType == Bool
	case method.Like, method.Contains, method.StartsWith, method.EndsWith:
		allowed = attr.DataType == String
	case method.GreaterThan, method.GreaterThanEqual, method.LessThan, method.LessThanEqual, method.Between:
		switch attr.DataType {
		case Int, Uint, Float, String, Time:
			allowed = true
		}
	case method.Equal, method.In:
		allowed = attr.DataType != Collection
	}

	if !allowed {
		return fmt.Errorf("%w: %v on %s", ErrInvalidOperation, condition.Operator, attr.DataType)
	}
	return nil
}

func listFormat(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}

	msg := fmt.Sprintf("%d problems:", len(errs))
	for _, err := range errs {
		msg += "\n\t* " + err.Error()
	}
	return msg
}
