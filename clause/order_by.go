package clause

// Sort sort by entity attribute
type Sort struct {
	Property   string
	Descending bool
	IgnoreCase bool
}

func Asc(property string) Sort {
	return Sort{Property: property}
}

func Desc(property string) Sort {
	return Sort{Property: property, Descending: true}
}

func AscIgnoreCase(property string) Sort {
	return Sort{Property: property, IgnoreCase: true}
}

func DescIgnoreCase(property string) Sort {
	return Sort{Property: property, Descending: true, IgnoreCase: true}
}

// Build build sort item
func (s Sort) Build(builder Builder) {
	if s.IgnoreCase {
		Lower(Attribute{Path: s.Property}).Build(builder)
	} else {
		builder.WriteString(s.Property)
	}

	if s.Descending {
		builder.WriteString(" desc")
	} else {
		builder.WriteString(" asc")
	}
}

// OrderBy order by clause
type OrderBy struct {
	Sorts []Sort
}

// Name order by clause name
func (orderBy OrderBy) Name() string {
	return "order by"
}

// Build build order by clause
func (orderBy OrderBy) Build(builder Builder) {
	for idx, sort := range orderBy.Sorts {
		if idx > 0 {
			builder.WriteString(", ")
		}
		sort.Build(builder)
	}
}
