package schema

import (
	"github.com/leengari/tabquery/internal/domain/data"
)

// Table is an immutable snapshot: a schema plus rows in significant order.
// Operators never modify a Table; they return a new one.
type Table struct {
	Name   string
	Schema *TableSchema
	Rows   []data.Row
}

// NewTable builds a table after checking every row against the schema
func NewTable(name string, s *TableSchema, rows []data.Row) (*Table, error) {
	for _, row := range rows {
		if err := s.CheckRow(row); err != nil {
			return nil, err
		}
	}
	cp := make([]data.Row, len(rows))
	copy(cp, rows)
	return &Table{Name: name, Schema: s, Rows: cp}, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Derive returns a table with the same name carrying a new schema and rows
func (t *Table) Derive(s *TableSchema, rows []data.Row) *Table {
	return &Table{Name: t.Name, Schema: s, Rows: rows}
}

// Equal compares schema column order/types and row contents in order
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.Schema.Columns) != len(other.Schema.Columns) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i, col := range t.Schema.Columns {
		if other.Schema.Columns[i] != col {
			return false
		}
	}
	for i, row := range t.Rows {
		if !row.Equal(other.Rows[i]) {
			return false
		}
	}
	return true
}

// ColumnValues returns one column's values in row order
func (t *Table) ColumnValues(column string) []interface{} {
	values := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[column]
	}
	return values
}
