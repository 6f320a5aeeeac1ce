package projection

// ColumnRef represents a column reference in a select list
type ColumnRef struct {
	Column string // Column name (e.g., "Emp_No", or a qualified join column "l.Emp_Name")
	Alias  string // Optional alias (e.g., "id" for "Emp_No AS id")
}

// OutputName is the alias if set, otherwise the column name
func (c ColumnRef) OutputName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Column
}

// Projection represents which columns to keep
// If SelectAll is true, all columns are returned in schema order
// Otherwise, only columns in Columns slice are returned, in that order
type Projection struct {
	Columns   []ColumnRef
	SelectAll bool
}

// NewProjection creates a new projection for selecting all columns
func NewProjection() *Projection {
	return &Projection{
		SelectAll: true,
		Columns:   []ColumnRef{},
	}
}

// NewProjectionWithColumns creates a projection for specific columns
func NewProjectionWithColumns(columns ...ColumnRef) *Projection {
	return &Projection{
		SelectAll: false,
		Columns:   columns,
	}
}

// Columns builds a projection from plain column names
func Columns(names ...string) *Projection {
	refs := make([]ColumnRef, len(names))
	for i, n := range names {
		refs[i] = ColumnRef{Column: n}
	}
	return NewProjectionWithColumns(refs...)
}

// AddColumn adds a column to the projection
func (p *Projection) AddColumn(column, alias string) {
	p.Columns = append(p.Columns, ColumnRef{
		Column: column,
		Alias:  alias,
	})
	p.SelectAll = false
}
