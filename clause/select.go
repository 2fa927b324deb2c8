package clause

// Select select clause, only the count projections of query methods are supported
type Select struct {
	Exists bool
}

func (s Select) Name() string {
	return "select"
}

// Build writes count(this), or count(this)>0 for an existence check
func (s Select) Build(builder Builder) {
	builder.WriteString("count(this)")
	if s.Exists {
		builder.WriteString(">0")
	}
}
