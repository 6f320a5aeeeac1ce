package operations

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
)

// AggFunc names an aggregate function
type AggFunc string

const (
	AggAvg   AggFunc = "avg"
	AggMax   AggFunc = "max"
	AggMin   AggFunc = "min"
	AggSum   AggFunc = "sum"
	AggCount AggFunc = "count"
)

// AllColumns is the column argument of count(*)
const AllColumns = "*"

// avgScale is the number of decimal places avg results are rounded to
const avgScale = 2

// ParseAggFunc accepts a function name in any case
func ParseAggFunc(name string) (AggFunc, error) {
	switch f := AggFunc(strings.ToLower(name)); f {
	case AggAvg, AggMax, AggMin, AggSum, AggCount:
		return f, nil
	}
	return "", fmt.Errorf("unknown aggregate function: %s", name)
}

// AggSpec is one aggregate output column
type AggSpec struct {
	Func   AggFunc
	Column string // AllColumns only for count
	Alias  string
}

// OutputName returns the alias, or func(col) when none was given
func (a AggSpec) OutputName() string {
	if a.Alias != "" {
		return a.Alias
	}
	return fmt.Sprintf("%s(%s)", a.Func, a.Column)
}

// As returns a copy with the output column renamed
func (a AggSpec) As(alias string) AggSpec {
	a.Alias = alias
	return a
}

func (a AggSpec) String() string {
	if a.Alias != "" {
		return fmt.Sprintf("%s(%s) AS %s", a.Func, a.Column, a.Alias)
	}
	return a.OutputName()
}

func Avg(column string) AggSpec   { return AggSpec{Func: AggAvg, Column: column} }
func Max(column string) AggSpec   { return AggSpec{Func: AggMax, Column: column} }
func Min(column string) AggSpec   { return AggSpec{Func: AggMin, Column: column} }
func Sum(column string) AggSpec   { return AggSpec{Func: AggSum, Column: column} }
func Count(column string) AggSpec { return AggSpec{Func: AggCount, Column: column} }

// CountAll counts rows, NULLs included
func CountAll() AggSpec { return AggSpec{Func: AggCount, Column: AllColumns} }

// outputColumn validates the aggregate against the input schema and returns the
// declaration of the column it produces
func (a AggSpec) outputColumn(s *schema.TableSchema) (schema.Column, error) {
	name := a.OutputName()
	if a.Func == AggCount {
		if a.Column != AllColumns && s.ColumnIndex(a.Column) < 0 {
			return schema.Column{}, &errors.ColumnNotFoundError{TableName: s.TableName, ColumnName: a.Column}
		}
		return schema.Column{Name: name, Type: schema.ColumnTypeInteger, Nullable: false}, nil
	}

	if a.Column == AllColumns {
		return schema.Column{}, fmt.Errorf("%s(*) is not supported", a.Func)
	}
	col, ok := s.Column(a.Column)
	if !ok {
		return schema.Column{}, &errors.ColumnNotFoundError{TableName: s.TableName, ColumnName: a.Column}
	}

	switch a.Func {
	case AggAvg:
		if !col.Type.IsNumeric() {
			return schema.Column{}, &errors.TypeError{Op: string(a.Func), Left: string(col.Type)}
		}
		return schema.Column{Name: name, Type: schema.ColumnTypeFloat, Nullable: true}, nil
	case AggSum:
		if !col.Type.IsNumeric() {
			return schema.Column{}, &errors.TypeError{Op: string(a.Func), Left: string(col.Type)}
		}
		return schema.Column{Name: name, Type: col.Type, Nullable: true}, nil
	case AggMin, AggMax:
		return schema.Column{Name: name, Type: col.Type, Nullable: true}, nil
	}
	return schema.Column{}, fmt.Errorf("unknown aggregate function: %s", a.Func)
}

// group is the set of rows sharing one key, in first-seen order
type group struct {
	values data.Row
	rows   []data.Row
}

// GroupBy partitions rows by equality of the key columns (NULLs group
// together) and computes aggs per group. Output columns are the keys then
// the aggregates; groups appear in first-seen order. Without keys it
// behaves like Aggregate.
func GroupBy(table *schema.Table, keys []string, aggs ...AggSpec) (*schema.Table, error) {
	if len(keys) == 0 {
		return Aggregate(table, aggs...)
	}

	cols := make([]schema.Column, 0, len(keys)+len(aggs))
	for _, k := range keys {
		col, ok := table.Schema.Column(k)
		if !ok {
			return nil, &errors.ColumnNotFoundError{TableName: table.Name, ColumnName: k}
		}
		cols = append(cols, col)
	}
	outSchema, err := aggregateSchema(table, cols, aggs)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, row := range table.Rows {
		key, values := computeGroupKey(row, keys)
		if g, exists := groups[key]; exists {
			g.rows = append(g.rows, row)
			continue
		}
		groups[key] = &group{values: values, rows: []data.Row{row}}
		order = append(order, key)
	}

	rows := make([]data.Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		out, err := computeAggregates(g.rows, aggs)
		if err != nil {
			return nil, err
		}
		for col, val := range g.values {
			out[col] = val
		}
		rows = append(rows, out)
	}

	slog.Debug("Group by applied",
		slog.String("table", table.Name),
		slog.Any("keys", keys),
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("groups", len(rows)),
	)

	return table.Derive(outSchema, rows), nil
}

// Aggregate computes aggs over the whole table, returning exactly one row
// even for empty input
func Aggregate(table *schema.Table, aggs ...AggSpec) (*schema.Table, error) {
	outSchema, err := aggregateSchema(table, nil, aggs)
	if err != nil {
		return nil, err
	}
	out, err := computeAggregates(table.Rows, aggs)
	if err != nil {
		return nil, err
	}

	slog.Debug("Aggregate applied",
		slog.String("table", table.Name),
		slog.Any("aggregates", aggs),
		slog.Int("input_rows", len(table.Rows)),
	)

	return table.Derive(outSchema, []data.Row{out}), nil
}

func aggregateSchema(table *schema.Table, keyCols []schema.Column, aggs []AggSpec) (*schema.TableSchema, error) {
	if len(aggs) == 0 {
		return nil, fmt.Errorf("at least one aggregate is required")
	}
	cols := append([]schema.Column{}, keyCols...)
	for _, a := range aggs {
		col, err := a.outputColumn(table.Schema)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", a, err)
		}
		cols = append(cols, col)
	}
	return schema.NewTableSchema(table.Schema.TableName, cols...)
}

// computeGroupKey builds a hash key from the key column values
func computeGroupKey(row data.Row, keys []string) (string, data.Row) {
	var keyBuilder strings.Builder
	values := make(data.Row, len(keys))
	for i, col := range keys {
		if i > 0 {
			keyBuilder.WriteString("\x00||\x00")
		}
		val := row[col]
		keyBuilder.WriteString(fmt.Sprintf("%#v", val))
		values[col] = val
	}
	return keyBuilder.String(), values
}

func computeAggregates(rows []data.Row, aggs []AggSpec) (data.Row, error) {
	out := make(data.Row, len(aggs))
	for _, a := range aggs {
		val, err := evaluateAggregate(a, rows)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", a, err)
		}
		out[a.OutputName()] = val
	}
	return out, nil
}

// evaluateAggregate evaluates one aggregate over rows; NULLs are ignored
func evaluateAggregate(a AggSpec, rows []data.Row) (interface{}, error) {
	if a.Func == AggCount && a.Column == AllColumns {
		return int64(len(rows)), nil
	}

	values := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		if v := row[a.Column]; v != nil {
			values = append(values, v)
		}
	}

	switch a.Func {
	case AggCount:
		return int64(len(values)), nil
	case AggSum:
		return sumValues(values)
	case AggAvg:
		return avgValues(values)
	case AggMin:
		return extremum(values, -1)
	case AggMax:
		return extremum(values, 1)
	}
	return nil, fmt.Errorf("unknown aggregate function: %s", a.Func)
}

// sumValues keeps the input type: integers sum to int64, floats to float64
func sumValues(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var intSum int64
	var floatSum float64
	isFloat := false
	for _, v := range values {
		switch n := v.(type) {
		case int64:
			intSum += n
			floatSum += float64(n)
		case float64:
			isFloat = true
			floatSum += n
		default:
			return nil, &errors.TypeError{Op: string(AggSum), Left: data.TypeName(v)}
		}
	}
	if isFloat {
		return floatSum, nil
	}
	return intSum, nil
}

// avgValues computes the mean in decimal arithmetic, rounded half away
// from zero to avgScale places. A NaN or infinite input has no decimal form;
// the mean is then plain float64 arithmetic and stays non-finite.
func avgValues(values []interface{}) (interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	sum := decimal.Zero
	floatSum := 0.0
	finite := true
	for _, v := range values {
		switch n := v.(type) {
		case int64:
			floatSum += float64(n)
			if finite {
				sum = sum.Add(decimal.NewFromInt(n))
			}
		case float64:
			floatSum += n
			if math.IsInf(n, 0) || math.IsNaN(n) {
				finite = false
			} else if finite {
				sum = sum.Add(decimal.NewFromFloat(n))
			}
		default:
			return nil, &errors.TypeError{Op: string(AggAvg), Left: data.TypeName(v)}
		}
	}
	if !finite {
		return floatSum / float64(len(values)), nil
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(values)))).Round(avgScale)
	return mean.InexactFloat64(), nil
}

// extremum returns the smallest (want -1) or largest (want 1) value
func extremum(values []interface{}, want int) (interface{}, error) {
	if len(values) == 0 {
		return nil, nil
	}
	best := values[0]
	for _, v := range values[1:] {
		c, err := expression.CompareValues(v, best)
		if err != nil {
			return nil, err
		}
		if c == want {
			best = v
		}
	}
	return best, nil
}
