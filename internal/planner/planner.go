// Package planner turns a parsed SELECT statement into a plan-node tree,
// resolving names and checking types against the catalog's schemas.
package planner

import (
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/domain/session"
	"github.com/leengari/tabquery/internal/parser/ast"
	"github.com/leengari/tabquery/internal/plan"
	"github.com/leengari/tabquery/internal/planner/predicate"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
)

// Catalog resolves view names to tables
type Catalog interface {
	Table(name string) (*schema.Table, error)
}

// Plan converts a SELECT statement into an execution plan:
// SCAN, then FILTER for WHERE, then AGGREGATE for aggregates or GROUP BY,
// then PROJECT for an explicit select list
func Plan(stmt *ast.SelectStatement, catalog Catalog, sess *session.Session) (plan.Node, error) {
	node, err := buildPlan(stmt, catalog, sess)
	if err != nil {
		return nil, err
	}
	attachEstimates(node)
	return node, nil
}

func buildPlan(stmt *ast.SelectStatement, catalog Catalog, sess *session.Session) (plan.Node, error) {
	// 1. Validate table exists
	tableName := stmt.TableName.Value
	table, err := catalog.Table(tableName)
	if err != nil {
		return nil, err
	}

	scan := &plan.ScanNode{TableName: tableName, Session: sess}
	scan.Metadata()["table"] = tableName
	scan.Metadata()["table_rows"] = table.Len()
	current := plan.Node(scan)

	// 2. Build Predicate
	if stmt.Where != nil {
		pred, err := predicate.Build(stmt.Where)
		if err != nil {
			return nil, err
		}
		if err := expectBoolean(pred, table.Schema); err != nil {
			return nil, err
		}
		filter := plan.NewFilterNode(current, pred)
		filter.Metadata()["has_predicate"] = true
		current = filter
	}

	if stmt.Star {
		if len(stmt.GroupBy) > 0 {
			return nil, fmt.Errorf("SELECT * cannot be used with GROUP BY")
		}
		return current, nil
	}

	// 3. Aggregation
	aggs, err := collectAggregates(stmt.Items, table.Schema)
	if err != nil {
		return nil, err
	}
	if len(aggs.specs) > 0 || len(stmt.GroupBy) > 0 {
		return planAggregate(stmt, table, current, aggs)
	}

	// 4. Projection
	items := make([]plan.ProjectItem, len(stmt.Items))
	for i, item := range stmt.Items {
		expr, err := predicate.Build(item.Expr)
		if err != nil {
			return nil, err
		}
		if _, err := expr.ResultType(table.Schema); err != nil {
			return nil, err
		}
		items[i] = plan.ProjectItem{Name: outputName(item), Expr: expr}
	}
	return plan.NewProjectNode(current, items), nil
}

func planAggregate(stmt *ast.SelectStatement, table *schema.Table, child plan.Node, aggs *aggregateSet) (plan.Node, error) {
	keys := make([]string, len(stmt.GroupBy))
	grouped := make(map[string]bool, len(stmt.GroupBy))
	for i, g := range stmt.GroupBy {
		if table.Schema.ColumnIndex(g.Value) < 0 {
			return nil, &errors.ColumnNotFoundError{TableName: table.Name, ColumnName: g.Value}
		}
		keys[i] = g.Value
		grouped[g.Value] = true
	}

	if len(aggs.specs) == 0 {
		return nil, fmt.Errorf("GROUP BY requires at least one aggregate in the select list")
	}
	aggNode := plan.NewAggregateNode(child, keys, aggs.specs)
	aggNode.Metadata()["groups_by"] = len(keys)

	items := make([]plan.ProjectItem, len(stmt.Items))
	for i, item := range stmt.Items {
		if col, ok := ungroupedColumn(item.Expr, grouped); ok {
			return nil, fmt.Errorf("column %s must appear in GROUP BY or be used in an aggregate function", col)
		}
		expr, err := predicate.BuildWith(item.Expr, aggs.resolve)
		if err != nil {
			return nil, err
		}
		items[i] = plan.ProjectItem{Name: outputName(item), Expr: expr}
	}
	return plan.NewProjectNode(aggNode, items), nil
}

func expectBoolean(pred expression.Expression, s *schema.TableSchema) error {
	t, err := pred.ResultType(s)
	if err != nil {
		return err
	}
	if t != schema.ColumnTypeBoolean {
		return &errors.TypeError{Op: "WHERE", Left: string(t)}
	}
	return nil
}

// aggregateSet holds the distinct aggregates of a select list in first-use order
type aggregateSet struct {
	specs  []operations.AggSpec
	byCall map[string]string // call text -> output column
}

func (a *aggregateSet) resolve(call *ast.FunctionCall) (string, bool) {
	col, ok := a.byCall[call.String()]
	return col, ok
}

func collectAggregates(items []*ast.SelectItem, s *schema.TableSchema) (*aggregateSet, error) {
	set := &aggregateSet{byCall: make(map[string]string)}
	var walkErr error
	for _, item := range items {
		walk(item.Expr, func(call *ast.FunctionCall) bool {
			if !predicate.IsAggregate(call) {
				return true
			}
			if _, seen := set.byCall[call.String()]; seen {
				return false
			}
			spec, err := aggregateSpec(call, s)
			if err != nil && walkErr == nil {
				walkErr = err
			}
			set.byCall[call.String()] = spec.OutputName()
			set.specs = append(set.specs, spec)
			return false
		})
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return set, nil
}

func aggregateSpec(call *ast.FunctionCall, s *schema.TableSchema) (operations.AggSpec, error) {
	fn, err := operations.ParseAggFunc(call.Name)
	if err != nil {
		return operations.AggSpec{}, err
	}
	if call.Star {
		if fn != operations.AggCount {
			return operations.AggSpec{}, fmt.Errorf("%s(*) is not supported", call.Name)
		}
		return operations.CountAll(), nil
	}
	if len(call.Args) != 1 {
		return operations.AggSpec{}, fmt.Errorf("%s takes exactly 1 argument, got %d", call.Name, len(call.Args))
	}
	ident, ok := call.Args[0].(*ast.Identifier)
	if !ok {
		return operations.AggSpec{}, &errors.UnsupportedQueryError{
			Clause: call.String(),
			Reason: "aggregate argument must be a column",
		}
	}
	if s.ColumnIndex(ident.Value) < 0 {
		return operations.AggSpec{}, &errors.ColumnNotFoundError{TableName: s.TableName, ColumnName: ident.Value}
	}
	return operations.AggSpec{Func: fn, Column: ident.Value}, nil
}

// walk visits every function call, descending into its arguments while
// visit returns true
func walk(expr ast.Expression, visit func(*ast.FunctionCall) bool) {
	switch e := expr.(type) {
	case *ast.FunctionCall:
		if visit(e) {
			for _, arg := range e.Args {
				walk(arg, visit)
			}
		}
	case *ast.BinaryExpression:
		walk(e.Left, visit)
		walk(e.Right, visit)
	case *ast.UnaryExpression:
		walk(e.Operand, visit)
	}
}

// ungroupedColumn finds a column referenced outside any aggregate that is
// not a grouping key
func ungroupedColumn(expr ast.Expression, grouped map[string]bool) (string, bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if !grouped[e.Value] {
			return e.Value, true
		}
	case *ast.FunctionCall:
		if predicate.IsAggregate(e) {
			return "", false
		}
		for _, arg := range e.Args {
			if col, ok := ungroupedColumn(arg, grouped); ok {
				return col, true
			}
		}
	case *ast.BinaryExpression:
		if col, ok := ungroupedColumn(e.Left, grouped); ok {
			return col, true
		}
		return ungroupedColumn(e.Right, grouped)
	case *ast.UnaryExpression:
		return ungroupedColumn(e.Operand, grouped)
	}
	return "", false
}

// outputName is the alias, or a compact rendering of the expression:
// Age, avg(Salary), round(avg(Salary),2), (Salary*1.1)
func outputName(item *ast.SelectItem) string {
	if item.Alias != "" {
		return item.Alias
	}
	return defaultName(item.Expr)
}

func defaultName(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Value
	case *ast.FunctionCall:
		name := strings.ToLower(e.Name)
		if e.Star {
			return name + "(*)"
		}
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = defaultName(a)
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(args, ","))
	case *ast.BinaryExpression:
		return fmt.Sprintf("(%s%s%s)", defaultName(e.Left), e.Operator, defaultName(e.Right))
	case *ast.UnaryExpression:
		if e.Operator == "NOT" {
			return fmt.Sprintf("(NOT_%s)", defaultName(e.Operand))
		}
		return e.Operator + defaultName(e.Operand)
	}
	return expr.String()
}
