package expression

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

const OpRound = "round"

// Round rounds a numeric operand half away from zero to Places decimal
// places. Integers stay integers; negative Places rounds to tens, hundreds...
// NaN and infinities are returned unchanged.
type Round struct {
	Operand Expression
	Places  int32
}

func (r *Round) Eval(row data.Row) (interface{}, error) {
	v, err := r.Operand.Eval(row)
	if err != nil || v == nil {
		return nil, err
	}
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n).Round(r.Places).IntPart(), nil
	case float64:
		if math.IsInf(n, 0) || math.IsNaN(n) {
			return n, nil
		}
		return decimal.NewFromFloat(n).Round(r.Places).InexactFloat64(), nil
	}
	return nil, &errors.TypeError{Op: OpRound, Left: data.TypeName(v)}
}

func (r *Round) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	t, err := r.Operand.ResultType(s)
	if err != nil {
		return "", err
	}
	if !t.IsNumeric() {
		return "", &errors.TypeError{Op: OpRound, Left: string(t)}
	}
	return t, nil
}

func (r *Round) String() string {
	return fmt.Sprintf("round(%s, %d)", r.Operand, r.Places)
}

// RoundTo rounds e to places decimal places
func RoundTo(e Expression, places int32) *Round {
	return &Round{Operand: e, Places: places}
}
