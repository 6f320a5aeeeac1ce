package schema

import (
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/validation"
)

// TableSchema is an ordered, name-unique list of column declarations
type TableSchema struct {
	TableName string
	Columns   []Column
}

// NewTableSchema builds a schema and enforces unique, non-empty column names
func NewTableSchema(tableName string, columns ...Column) (*TableSchema, error) {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if err := validation.ValidateIdentifier(col.Name); err != nil {
			return nil, &errors.SchemaMismatchError{Table: tableName, Column: col.Name, Reason: err.Error()}
		}
		if seen[col.Name] {
			return nil, &errors.SchemaMismatchError{Table: tableName, Column: col.Name, Reason: "duplicate column name"}
		}
		seen[col.Name] = true
		if _, err := ParseColumnType(string(col.Type)); err != nil {
			return nil, &errors.SchemaMismatchError{Table: tableName, Column: col.Name, Reason: err.Error()}
		}
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &TableSchema{TableName: tableName, Columns: cols}, nil
}

// ColumnIndex returns the position of a column or -1
func (s *TableSchema) ColumnIndex(name string) int {
	for i, col := range s.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Column looks up a column declaration by name
func (s *TableSchema) Column(name string) (Column, bool) {
	if i := s.ColumnIndex(name); i >= 0 {
		return s.Columns[i], true
	}
	return Column{}, false
}

// Names returns the column names in schema order
func (s *TableSchema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// Len returns the number of columns
func (s *TableSchema) Len() int {
	return len(s.Columns)
}

// Clone returns an independent copy that can be extended
func (s *TableSchema) Clone() *TableSchema {
	cols := make([]Column, len(s.Columns))
	copy(cols, s.Columns)
	return &TableSchema{TableName: s.TableName, Columns: cols}
}

// Validate coerces raw text fields to the declared column types.
// line is the 1-based source line used in error locations (0 if unknown).
//   - Integer, Float and Boolean fields are trimmed before coercion; String
//     fields are kept verbatim
//   - empty field in a nullable column -> NULL
//   - empty field in a non-nullable column -> NullValueError
//   - unparseable field -> TypeCoercionError
func (s *TableSchema) Validate(rawFields []string, line int) (data.Row, error) {
	if len(rawFields) != len(s.Columns) {
		return nil, &errors.SchemaMismatchError{
			Table:  s.TableName,
			Reason: fmt.Sprintf("expected %d fields, got %d", len(s.Columns), len(rawFields)),
			Line:   line,
		}
	}

	row := make(data.Row, len(s.Columns))
	for i, col := range s.Columns {
		raw := rawFields[i]
		if col.Type != ColumnTypeString {
			raw = strings.TrimSpace(raw)
		}

		if raw == "" {
			if !col.Nullable {
				return nil, &errors.NullValueError{Column: col.Name, Line: line}
			}
			row[col.Name] = nil
			continue
		}

		val, err := coerce(raw, col.Type)
		if err != nil {
			return nil, &errors.TypeCoercionError{
				Column:   col.Name,
				Value:    raw,
				Expected: string(col.Type),
				Line:     line,
			}
		}
		row[col.Name] = val
	}
	return row, nil
}

func coerce(raw string, t ColumnType) (interface{}, error) {
	switch t {
	case ColumnTypeInteger:
		return validation.ParseInteger(raw)
	case ColumnTypeFloat:
		return validation.ParseFloat(raw)
	case ColumnTypeBoolean:
		return validation.ParseBoolean(raw)
	case ColumnTypeString:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown column type %q", t)
	}
}

// CheckRow verifies that a row references exactly the schema's columns and
// that every value matches its column's type and nullability
func (s *TableSchema) CheckRow(row data.Row) error {
	if len(row) != len(s.Columns) {
		return &errors.SchemaMismatchError{
			Table:  s.TableName,
			Reason: fmt.Sprintf("row has %d columns, schema declares %d", len(row), len(s.Columns)),
		}
	}
	for _, col := range s.Columns {
		val, exists := row[col.Name]
		if !exists {
			return &errors.SchemaMismatchError{Table: s.TableName, Column: col.Name, Reason: "missing from row"}
		}
		if val == nil {
			if !col.Nullable {
				return &errors.NullValueError{Column: col.Name}
			}
			continue
		}
		if !valueMatches(val, col.Type) {
			return &errors.SchemaMismatchError{
				Table:  s.TableName,
				Column: col.Name,
				Reason: fmt.Sprintf("expected %s, got %s", col.Type, data.TypeName(val)),
			}
		}
	}
	return nil
}

func valueMatches(val interface{}, t ColumnType) bool {
	switch t {
	case ColumnTypeInteger:
		_, ok := val.(int64)
		return ok
	case ColumnTypeFloat:
		_, ok := val.(float64)
		return ok
	case ColumnTypeString:
		_, ok := val.(string)
		return ok
	case ColumnTypeBoolean:
		_, ok := val.(bool)
		return ok
	}
	return false
}

// TreeString renders the schema as a tree:
//
//	root
//	 |-- Emp_No: integer (nullable = true)
func (s *TableSchema) TreeString() string {
	var b strings.Builder
	b.WriteString("root\n")
	for _, col := range s.Columns {
		fmt.Fprintf(&b, " |-- %s: %s (nullable = %t)\n", col.Name, col.Type, col.Nullable)
	}
	return b.String()
}
