package export

// Category classifies a result table by the kind of event it records.
type Category string

const (
	// CategoryGroup covers team events scored per team
	CategoryGroup Category = "group"
	// CategoryIndividual covers events scored per student
	CategoryIndividual Category = "individual"
)

// TableSpec describes one table to export: its name and the columns to
// select. Column order is significant: the CSV header and every data
// row follow it exactly. Specs are fixed at startup and never mutated.
type TableSpec struct {
	Name     string
	Category Category
	Columns  []string
}

// DefaultTables returns the table set exported when the configuration
// does not declare its own.
func DefaultTables() []TableSpec {
	return []TableSpec{
		{
			Name:     "t_group",
			Category: CategoryGroup,
			Columns:  []string{"event_name", "team_name", "class_num", "position"},
		},
		{
			Name:     "t_individual",
			Category: CategoryIndividual,
			Columns:  []string{"event_name", "student_name", "class_num", "house", "position"},
		},
	}
}
