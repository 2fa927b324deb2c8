package clause

// Update update clause, e.g. update Product
type Update struct {
	Entity string
}

// Name update clause name
func (update Update) Name() string {
	return "update"
}

// Build build update clause
func (update Update) Build(builder Builder) {
	builder.WriteString(update.Entity)
}
