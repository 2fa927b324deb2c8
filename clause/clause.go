package clause

// Interface clause interface
type Interface interface {
	Name() string
	Build(Builder)
}

// Writer write query text
type Writer interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
}

// Builder builder interface, AddVar binds values and returns their placeholders
type Builder interface {
	Writer
	AddVar(vars ...interface{}) string
}

// Expression expression interface
type Expression interface {
	Build(builder Builder)
}

// Clause a named part of a query, e.g. where, order by
type Clause struct {
	Name       string
	Expression Expression
}

// Build build clause
func (c Clause) Build(builder Builder) {
	if c.Name != "" {
		builder.WriteString(c.Name)
		if c.Expression != nil {
			builder.WriteByte(' ')
		}
	}

	if c.Expression != nil {
		c.Expression.Build(builder)
	}
}

// Expr raw query text
type Expr struct {
	SQL string
}

// Build build raw expression
func (expr Expr) Build(builder Builder) {
	builder.WriteString(expr.SQL)
}
