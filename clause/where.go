package clause

// Where where clause
type Where struct {
	Restriction Restriction
}

// Name where clause name
func (where Where) Name() string {
	return "where"
}

// Build build where clause, a top level non negated composite is written without parentheses
func (where Where) Build(builder Builder) {
	if c, ok := where.Restriction.(CompositeRestriction); ok && !c.Negated {
		c.buildMembers(builder)
		return
	}
	where.Restriction.Build(builder)
}
