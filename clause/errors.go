package clause

import "errors"

var (
	// ErrInvalidValue nil or empty value where one is required
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidAttribute attribute name is empty or malformed
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrUnsupportedLiteral value type can't be wrapped as a literal
	ErrUnsupportedLiteral = errors.New("unsupported literal type")
	// ErrEmptyComposite composite restriction without restrictions
	ErrEmptyComposite = errors.New("composite restriction requires at least one restriction")
)
