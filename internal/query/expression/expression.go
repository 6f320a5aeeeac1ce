// Package expression evaluates typed scalar expressions against rows.
//
// Values are int64, float64, string, bool or nil (NULL). Arithmetic and
// comparisons propagate NULL; Contains rejects it with NullOperandError.
// Logical operators use three-valued logic.
package expression

import (
	"fmt"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// Expression is a node of an expression tree
type Expression interface {
	// Eval computes the value of the expression for one row
	Eval(row data.Row) (interface{}, error)
	// ResultType infers the static type of the expression over a schema
	ResultType(s *schema.TableSchema) (schema.ColumnType, error)
	String() string
}

// Evaluate computes expr against row
func Evaluate(expr Expression, row data.Row) (interface{}, error) {
	return expr.Eval(row)
}

// ColumnRef reads a column from the row
type ColumnRef struct {
	Name string
}

func (c *ColumnRef) Eval(row data.Row) (interface{}, error) {
	val, exists := row[c.Name]
	if !exists {
		return nil, &errors.ColumnNotFoundError{ColumnName: c.Name}
	}
	return val, nil
}

func (c *ColumnRef) ResultType(s *schema.TableSchema) (schema.ColumnType, error) {
	col, ok := s.Column(c.Name)
	if !ok {
		return "", &errors.ColumnNotFoundError{TableName: s.TableName, ColumnName: c.Name}
	}
	return col.Type, nil
}

func (c *ColumnRef) String() string { return c.Name }

// Literal is a constant value
type Literal struct {
	Value interface{}
}

func (l *Literal) Eval(data.Row) (interface{}, error) {
	return l.Value, nil
}

func (l *Literal) ResultType(*schema.TableSchema) (schema.ColumnType, error) {
	switch l.Value.(type) {
	case int64:
		return schema.ColumnTypeInteger, nil
	case float64:
		return schema.ColumnTypeFloat, nil
	case string:
		return schema.ColumnTypeString, nil
	case bool:
		return schema.ColumnTypeBoolean, nil
	}
	return "", &errors.TypeError{Op: "literal", Left: data.TypeName(l.Value)}
}

func (l *Literal) String() string {
	if s, ok := l.Value.(string); ok {
		return fmt.Sprintf("'%s'", s)
	}
	return data.FormatValue(l.Value)
}

// Col references a column by name
func Col(name string) *ColumnRef {
	return &ColumnRef{Name: name}
}

// Lit wraps a constant; Go int kinds are normalized to int64
func Lit(v interface{}) *Literal {
	return &Literal{Value: data.NormalizeValue(v)}
}
