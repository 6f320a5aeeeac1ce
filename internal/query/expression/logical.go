package expression

import (
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

const (
	OpAnd      = "AND"
	OpOr       = "OR"
	OpNot      = "NOT"
	OpContains = "contains"
)

// Logical combines two boolean operands with three-valued AND/OR
type Logical struct {
	Op    string
	Left  Expression
	Right Expression
}

func (l *Logical) Eval(row data.Row) (interface{}, error) {
	left, err := evalBool(l.Left, row, l.Op)
	if err != nil {
		return nil, err
	}
	// short-circuit on the deciding value
	if left != nil {
		if l.Op == OpAnd && !*left {
			return false, nil
		}
		if l.Op == OpOr && *left {
			return true, nil
		}
	}

	right, err := evalBool(l.Right, row, l.Op)
	if err != nil {
		return nil, err
	}

	switch l.Op {
	case OpAnd:
		if right != nil && !*right {
			return false, nil
		}
		if left == nil || right == nil {
			return nil, nil
		}
		return true, nil
	case OpOr:
		if right != nil && *right {
			return true, nil
		}
		if left == nil || right == nil {
			return nil, nil
		}
		return false, nil
	}
	return nil, fmt.Errorf("unsupported logical operator: %s", l.Op)
}

func (l *Logical) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	for _, side := range []Expression{l.Left, l.Right} {
		t, err := side.ResultType(s)
		if err != nil {
			return "", err
		}
		if t != schema.ColumnTypeBoolean {
			return "", &errors.TypeError{Op: l.Op, Left: string(t)}
		}
	}
	return schema.ColumnTypeBoolean, nil
}

func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right)
}

// Not negates a boolean; NOT NULL is NULL
type Not struct {
	Operand Expression
}

func (n *Not) Eval(row data.Row) (interface{}, error) {
	b, err := evalBool(n.Operand, row, OpNot)
	if err != nil || b == nil {
		return nil, err
	}
	return !*b, nil
}

func (n *Not) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	t, err := n.Operand.ResultType(s)
	if err != nil {
		return "", err
	}
	if t != schema.ColumnTypeBoolean {
		return "", &errors.TypeError{Op: OpNot, Left: string(t)}
	}
	return schema.ColumnTypeBoolean, nil
}

func (n *Not) String() string {
	return fmt.Sprintf("(NOT %s)", n.Operand)
}

// ContainsExpr is a case-sensitive substring test
type ContainsExpr struct {
	Haystack Expression
	Needle   Expression
}

func (c *ContainsExpr) Eval(row data.Row) (interface{}, error) {
	h, err := c.Haystack.Eval(row)
	if err != nil {
		return nil, err
	}
	n, err := c.Needle.Eval(row)
	if err != nil {
		return nil, err
	}
	if h == nil || n == nil {
		return nil, &errors.NullOperandError{Op: OpContains}
	}

	hs, hok := h.(string)
	ns, nok := n.(string)
	if !hok || !nok {
		return nil, &errors.TypeError{Op: OpContains, Left: data.TypeName(h), Right: data.TypeName(n)}
	}
	return strings.Contains(hs, ns), nil
}

func (c *ContainsExpr) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	ht, err := c.Haystack.ResultType(s)
	if err != nil {
		return "", err
	}
	nt, err := c.Needle.ResultType(s)
	if err != nil {
		return "", err
	}
	if ht != schema.ColumnTypeString || nt != schema.ColumnTypeString {
		return "", &errors.TypeError{Op: OpContains, Left: string(ht), Right: string(nt)}
	}
	return schema.ColumnTypeBoolean, nil
}

func (c *ContainsExpr) String() string {
	return fmt.Sprintf("contains(%s, %s)", c.Haystack, c.Needle)
}

// evalBool evaluates a boolean operand; nil pointer means NULL
func evalBool(expr Expression, row data.Row, op string) (*bool, error) {
	v, err := expr.Eval(row)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, &errors.TypeError{Op: op, Left: data.TypeName(v)}
	}
	return &b, nil
}

func And(l, r Expression) *Logical { return &Logical{Op: OpAnd, Left: l, Right: r} }
func Or(l, r Expression) *Logical  { return &Logical{Op: OpOr, Left: l, Right: r} }

func Negate(e Expression) *Not { return &Not{Operand: e} }

// Contains tests whether haystack contains needle
func Contains(haystack, needle Expression) *ContainsExpr {
	return &ContainsExpr{Haystack: haystack, Needle: needle}
}
