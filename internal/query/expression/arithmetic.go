package expression

import (
	"fmt"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

const (
	OpAdd = "+"
	OpSub = "-"
	OpMul = "*"
	OpDiv = "/"
)

// Arithmetic applies + - * / to two numeric operands.
// integer op integer stays integer (division truncates); any float operand
// promotes the result to float. Division by zero yields NULL.
type Arithmetic struct {
	Op    string
	Left  Expression
	Right Expression
}

func (a *Arithmetic) Eval(row data.Row) (interface{}, error) {
	l, err := a.Left.Eval(row)
	if err != nil {
		return nil, err
	}
	r, err := a.Right.Eval(row)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}

	li, lInt := l.(int64)
	ri, rInt := r.(int64)
	if lInt && rInt {
		return applyInt(a.Op, li, ri)
	}

	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok {
		return nil, &errors.TypeError{Op: a.Op, Left: data.TypeName(l), Right: data.TypeName(r)}
	}
	return applyFloat(a.Op, lf, rf)
}

func applyInt(op string, l, r int64) (interface{}, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, nil
		}
		return l / r, nil
	}
	return nil, fmt.Errorf("unknown arithmetic operator %q", op)
}

func applyFloat(op string, l, r float64) (interface{}, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return nil, nil
		}
		return l / r, nil
	}
	return nil, fmt.Errorf("unknown arithmetic operator %q", op)
}

func (a *Arithmetic) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	lt, err := a.Left.ResultType(s)
	if err != nil {
		return "", err
	}
	rt, err := a.Right.ResultType(s)
	if err != nil {
		return "", err
	}
	if !lt.IsNumeric() || !rt.IsNumeric() {
		return "", &errors.TypeError{Op: a.Op, Left: string(lt), Right: string(rt)}
	}
	if lt == schema.ColumnTypeInteger && rt == schema.ColumnTypeInteger {
		return schema.ColumnTypeInteger, nil
	}
	return schema.ColumnTypeFloat, nil
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}

func toFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		return val, true
	}
	return 0, false
}

func Add(l, r Expression) *Arithmetic { return &Arithmetic{Op: OpAdd, Left: l, Right: r} }
func Sub(l, r Expression) *Arithmetic { return &Arithmetic{Op: OpSub, Left: l, Right: r} }
func Mul(l, r Expression) *Arithmetic { return &Arithmetic{Op: OpMul, Left: l, Right: r} }
func Div(l, r Expression) *Arithmetic { return &Arithmetic{Op: OpDiv, Left: l, Right: r} }
