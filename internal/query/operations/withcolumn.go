package operations

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/validation"
)

// WithColumn appends a column computed by expr for every row. When name
// already exists the column is replaced in place and its type re-inferred.
// Derived columns are always nullable.
func WithColumn(table *schema.Table, name string, expr expression.Expression) (*schema.Table, error) {
	if err := validation.ValidateIdentifier(name); err != nil {
		return nil, &errors.SchemaMismatchError{Table: table.Name, Column: name, Reason: err.Error()}
	}
	colType, err := expr.ResultType(table.Schema)
	if err != nil {
		return nil, fmt.Errorf("withColumn %s: %w", name, err)
	}

	outSchema := table.Schema.Clone()
	derived := schema.Column{Name: name, Type: colType, Nullable: true}
	if i := outSchema.ColumnIndex(name); i >= 0 {
		outSchema.Columns[i] = derived
	} else {
		outSchema.Columns = append(outSchema.Columns, derived)
	}

	rows := make([]data.Row, len(table.Rows))
	for i, row := range table.Rows {
		val, err := expr.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("withColumn %s: row %d: %w", name, i, err)
		}
		out := row.Copy()
		out[name] = val
		rows[i] = out
	}

	slog.Debug("Column derived",
		slog.String("table", table.Name),
		slog.String("column", name),
		slog.String("type", string(colType)),
		slog.String("expression", expr.String()),
	)

	return table.Derive(outSchema, rows), nil
}
