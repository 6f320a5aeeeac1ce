package projection

import (
	"log/slog"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// Project returns a new table with only the projected columns, renamed by
// alias. A nil projection or SELECT * returns the input unchanged.
func Project(table *schema.Table, proj *Projection) (*schema.Table, error) {
	if proj == nil || proj.SelectAll {
		return table, nil
	}
	if err := ValidateProjection(table, proj); err != nil {
		return nil, err
	}

	cols := make([]schema.Column, len(proj.Columns))
	for i, colRef := range proj.Columns {
		col, _ := table.Schema.Column(colRef.Column)
		col.Name = colRef.OutputName()
		cols[i] = col
	}
	outSchema, err := schema.NewTableSchema(table.Schema.TableName, cols...)
	if err != nil {
		return nil, err
	}

	rows := make([]data.Row, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = ProjectRow(row, proj)
	}

	slog.Debug("Projection applied",
		slog.String("table", table.Name),
		slog.Any("columns", outSchema.Names()),
	)

	return table.Derive(outSchema, rows), nil
}

// ProjectRow applies projection to a single row
// Returns a new row containing only the requested columns
// If projection is nil or SelectAll is true, returns a copy of the entire row
func ProjectRow(row data.Row, proj *Projection) data.Row {
	if proj == nil || proj.SelectAll {
		return row.Copy()
	}

	projected := make(data.Row, len(proj.Columns))
	for _, colRef := range proj.Columns {
		projected[colRef.OutputName()] = row[colRef.Column]
	}
	return projected
}
