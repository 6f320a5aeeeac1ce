package projection

import (
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// ValidateProjection checks if all columns in the projection exist in the table schema
// Returns error if any column is not found
func ValidateProjection(table *schema.Table, proj *Projection) error {
	if proj == nil || proj.SelectAll {
		return nil
	}

	for _, colRef := range proj.Columns {
		if table.Schema.ColumnIndex(colRef.Column) < 0 {
			return &errors.ColumnNotFoundError{TableName: table.Name, ColumnName: colRef.Column}
		}
	}

	return nil
}
