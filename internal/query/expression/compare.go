package expression

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

const (
	OpEq = "="
	OpNe = "!="
	OpLt = "<"
	OpLe = "<="
	OpGt = ">"
	OpGe = ">="
)

// CompareValues orders two non-NULL values: -1, 0 or 1.
// Integers and floats compare numerically with each other; strings
// lexicographically (byte order); false < true. Other pairings are a TypeError.
func CompareValues(a, b interface{}) (int, error) {
	switch av := a.(type) {
	case int64:
		switch bv := b.(type) {
		case int64:
			return cmp.Compare(av, bv), nil
		case float64:
			return cmp.Compare(float64(av), bv), nil
		}
	case float64:
		switch bv := b.(type) {
		case int64:
			return cmp.Compare(av, float64(bv)), nil
		case float64:
			return cmp.Compare(av, bv), nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), nil
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0, nil
			case !av:
				return -1, nil
			default:
				return 1, nil
			}
		}
	}
	return 0, &errors.TypeError{Op: "compare", Left: data.TypeName(a), Right: data.TypeName(b)}
}

// Comparison evaluates to a bool, or NULL when either operand is NULL
type Comparison struct {
	Op    string
	Left  Expression
	Right Expression
}

func (c *Comparison) Eval(row data.Row) (interface{}, error) {
	l, err := c.Left.Eval(row)
	if err != nil {
		return nil, err
	}
	r, err := c.Right.Eval(row)
	if err != nil {
		return nil, err
	}
	if l == nil || r == nil {
		return nil, nil
	}

	res, err := CompareValues(l, r)
	if err != nil {
		return nil, &errors.TypeError{Op: c.Op, Left: data.TypeName(l), Right: data.TypeName(r)}
	}

	switch c.Op {
	case OpEq:
		return res == 0, nil
	case OpNe:
		return res != 0, nil
	case OpLt:
		return res < 0, nil
	case OpLe:
		return res <= 0, nil
	case OpGt:
		return res > 0, nil
	case OpGe:
		return res >= 0, nil
	}
	return nil, fmt.Errorf("unknown comparison operator %q", c.Op)
}

func (c *Comparison) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	lt, err := c.Left.ResultType(s)
	if err != nil {
		return "", err
	}
	rt, err := c.Right.ResultType(s)
	if err != nil {
		return "", err
	}
	if lt != rt && !(lt.IsNumeric() && rt.IsNumeric()) {
		return "", &errors.TypeError{Op: c.Op, Left: string(lt), Right: string(rt)}
	}
	return schema.ColumnTypeBoolean, nil
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

func Eq(l, r Expression) *Comparison { return &Comparison{Op: OpEq, Left: l, Right: r} }
func Ne(l, r Expression) *Comparison { return &Comparison{Op: OpNe, Left: l, Right: r} }
func Lt(l, r Expression) *Comparison { return &Comparison{Op: OpLt, Left: l, Right: r} }
func Le(l, r Expression) *Comparison { return &Comparison{Op: OpLe, Left: l, Right: r} }
func Gt(l, r Expression) *Comparison { return &Comparison{Op: OpGt, Left: l, Right: r} }
func Ge(l, r Expression) *Comparison { return &Comparison{Op: OpGe, Left: l, Right: r} }
