// Package predicate converts AST expressions into evaluable expression trees.
package predicate

import (
	"fmt"

	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/parser/ast"
	"github.com/leengari/tabquery/internal/query/expression"
)

// AggregateResolver maps an aggregate call to the column holding its result.
// It returns false when aggregates are not allowed in the current context.
type AggregateResolver func(call *ast.FunctionCall) (string, bool)

// Build converts a scalar AST expression. Aggregate calls are rejected.
// Supports:
//   - Comparison operators: =, <, >, <=, >=, !=
//   - Arithmetic: + - * / and unary minus
//   - Logical operators: AND, OR, NOT
//   - Functions: CONTAINS(str, substr), ROUND(num, places)
func Build(expr ast.Expression) (expression.Expression, error) {
	return BuildWith(expr, nil)
}

// BuildWith converts an AST expression, resolving aggregate calls through
// resolve (which may be nil)
func BuildWith(expr ast.Expression, resolve AggregateResolver) (expression.Expression, error) {
	b := &builder{resolve: resolve}
	return b.build(expr)
}

type builder struct {
	resolve AggregateResolver
}

func (b *builder) build(expr ast.Expression) (expression.Expression, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return expression.Col(e.Value), nil

	case *ast.Literal:
		return expression.Lit(e.Value), nil

	case *ast.UnaryExpression:
		operand, err := b.build(e.Operand)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case "NOT":
			return expression.Negate(operand), nil
		case "-":
			return expression.Mul(expression.Lit(-1), operand), nil
		}
		return nil, fmt.Errorf("unsupported unary operator: %s", e.Operator)

	case *ast.BinaryExpression:
		return b.buildBinary(e)

	case *ast.FunctionCall:
		return b.buildCall(e)

	default:
		return nil, fmt.Errorf("unsupported expression type: %T", expr)
	}
}

func (b *builder) buildBinary(e *ast.BinaryExpression) (expression.Expression, error) {
	left, err := b.build(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.build(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "AND":
		return expression.And(left, right), nil
	case "OR":
		return expression.Or(left, right), nil
	case expression.OpEq, expression.OpNe, expression.OpLt, expression.OpLe, expression.OpGt, expression.OpGe:
		return &expression.Comparison{Op: e.Operator, Left: left, Right: right}, nil
	case expression.OpAdd, expression.OpSub, expression.OpMul, expression.OpDiv:
		return &expression.Arithmetic{Op: e.Operator, Left: left, Right: right}, nil
	}
	return nil, fmt.Errorf("unsupported operator: %s", e.Operator)
}

func (b *builder) buildCall(call *ast.FunctionCall) (expression.Expression, error) {
	if IsAggregate(call) {
		if b.resolve != nil {
			if column, ok := b.resolve(call); ok {
				return expression.Col(column), nil
			}
		}
		return nil, &errors.UnsupportedQueryError{
			Clause: call.String(),
			Reason: "aggregate functions are only allowed in the select list",
		}
	}

	switch call.Name {
	case "CONTAINS":
		if len(call.Args) != 2 {
			return nil, fmt.Errorf("CONTAINS takes 2 arguments, got %d", len(call.Args))
		}
		haystack, err := b.build(call.Args[0])
		if err != nil {
			return nil, err
		}
		needle, err := b.build(call.Args[1])
		if err != nil {
			return nil, err
		}
		return expression.Contains(haystack, needle), nil

	case "ROUND":
		if len(call.Args) < 1 || len(call.Args) > 2 {
			return nil, fmt.Errorf("ROUND takes 1 or 2 arguments, got %d", len(call.Args))
		}
		operand, err := b.build(call.Args[0])
		if err != nil {
			return nil, err
		}
		places := int64(0)
		if len(call.Args) == 2 {
			lit, ok := call.Args[1].(*ast.Literal)
			if !ok {
				return nil, fmt.Errorf("ROUND places must be an integer literal, got %s", call.Args[1])
			}
			if places, ok = lit.Value.(int64); !ok {
				return nil, fmt.Errorf("ROUND places must be an integer literal, got %s", call.Args[1])
			}
			if places < -maxRoundPlaces || places > maxRoundPlaces {
				return nil, fmt.Errorf("ROUND places %d out of range [%d, %d]", places, -maxRoundPlaces, maxRoundPlaces)
			}
		}
		return expression.RoundTo(operand, int32(places)), nil
	}

	return nil, &errors.UnsupportedQueryError{Clause: call.Name, Reason: "unknown function"}
}

// maxRoundPlaces covers the float64 decimal exponent range
const maxRoundPlaces = 308

// IsAggregate reports whether a call names an aggregate function
func IsAggregate(call *ast.FunctionCall) bool {
	switch call.Name {
	case "AVG", "MAX", "MIN", "SUM", "COUNT":
		return true
	}
	return false
}
