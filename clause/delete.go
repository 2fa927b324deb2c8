package clause

// Delete delete clause, e.g. delete Product
type Delete struct {
	Entity string
}

func (d Delete) Name() string {
	return "delete"
}

func (d Delete) Build(builder Builder) {
	builder.WriteString(d.Entity)
}
