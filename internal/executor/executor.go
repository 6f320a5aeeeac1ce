// Package executor runs a plan-node tree bottom-up with the table operators.
package executor

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/plan"
	"github.com/leengari/tabquery/internal/planner"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/projection"
)

// Execute evaluates a plan against the catalog and returns the result table
func Execute(node plan.Node, catalog planner.Catalog) (*schema.Table, error) {
	switch n := node.(type) {
	case *plan.ScanNode:
		return catalog.Table(n.TableName)

	case *plan.FilterNode:
		input, err := Execute(n.Child(), catalog)
		if err != nil {
			return nil, err
		}
		return operations.Filter(input, n.Predicate)

	case *plan.AggregateNode:
		input, err := Execute(n.Child(), catalog)
		if err != nil {
			return nil, err
		}
		return operations.GroupBy(input, n.GroupBy, n.Aggregates...)

	case *plan.ProjectNode:
		input, err := Execute(n.Child(), catalog)
		if err != nil {
			return nil, err
		}
		return executeProject(n, input)

	default:
		return nil, fmt.Errorf("unsupported plan node: %T", node)
	}
}

// executeProject derives computed items under temporary names, then selects
// and renames all items in order
func executeProject(n *plan.ProjectNode, input *schema.Table) (*schema.Table, error) {
	current := input
	cols := make([]projection.ColumnRef, len(n.Items))
	for i, item := range n.Items {
		if col, ok := item.IsColumn(); ok {
			cols[i] = projection.ColumnRef{Column: col, Alias: item.Name}
			continue
		}

		tmp := fmt.Sprintf("__expr%d", i)
		derived, err := operations.WithColumn(current, tmp, item.Expr)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", item.Name, err)
		}
		current = derived
		cols[i] = projection.ColumnRef{Column: tmp, Alias: item.Name}
	}

	result, err := projection.Project(current, projection.NewProjectionWithColumns(cols...))
	if err != nil {
		return nil, err
	}

	slog.Debug("Select list evaluated",
		slog.String("table", input.Name),
		slog.Int("columns", len(cols)),
		slog.Int("rows", result.Len()),
	)
	return result, nil
}
