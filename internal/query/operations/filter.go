// Package operations holds the pure table operators. Every operator takes
// immutable tables and returns a new table; input rows are shared, never
// modified.
package operations

import (
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
)

// Filter returns the rows for which pred evaluates to true.
// A NULL result or a NullOperandError excludes the row; any other
// evaluation error aborts the filter.
func Filter(table *schema.Table, pred expression.Expression) (*schema.Table, error) {
	t, err := pred.ResultType(table.Schema)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", pred, err)
	}
	if t != schema.ColumnTypeBoolean {
		return nil, fmt.Errorf("filter %s: %w", pred, &errors.TypeError{Op: "filter", Left: string(t)})
	}

	result := make([]data.Row, 0, len(table.Rows))
	skipped := 0
	for i, row := range table.Rows {
		val, err := pred.Eval(row)
		if err != nil {
			var nullErr *errors.NullOperandError
			if stderrors.As(err, &nullErr) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("filter %s: row %d: %w", pred, i, err)
		}
		if keep, ok := val.(bool); ok && keep {
			result = append(result, row)
		}
	}

	slog.Debug("Filter applied",
		slog.String("table", table.Name),
		slog.String("predicate", pred.String()),
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("result_rows", len(result)),
		slog.Int("null_operands", skipped),
	)

	return table.Derive(table.Schema, result), nil
}
