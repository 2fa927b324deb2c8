package clause

// Param a value supplied when the query runs, only its placeholder is written
type Param struct {
	Name string
}

func (p Param) Build(builder Builder) {
	builder.WriteString(builder.AddVar(p))
}

func (p Param) String() string {
	return ":" + p.Name
}
