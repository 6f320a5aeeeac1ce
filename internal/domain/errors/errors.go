package errors

import (
	"fmt"
	"strings"
)

// SchemaMismatchError reports a row or schema declaration that does not fit
// the expected shape (duplicate column, wrong field count, unknown type).
type SchemaMismatchError struct {
	Table  string // table or schema name (may be empty)
	Column string // offending column (may be empty)
	Reason string
	Line   int // 1-based source line, 0 if not applicable
}

func (e *SchemaMismatchError) Error() string {
	parts := []string{"schema mismatch"}
	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table %s", e.Table))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column %s", e.Column))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("at line %d", e.Line))
	}
	return strings.Join(parts, " - ")
}

// ColumnCountMismatchError is raised by the loader when a data line splits
// into a different number of fields than the schema declares.
type ColumnCountMismatchError struct {
	Line     int
	Expected int
	Got      int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch at line %d: expected %d fields, got %d", e.Line, e.Expected, e.Got)
}

// TypeCoercionError reports a raw field that cannot be converted to the
// column's declared type.
type TypeCoercionError struct {
	Column   string
	Value    string
	Expected string
	Line     int
}

func (e *TypeCoercionError) Error() string {
	msg := fmt.Sprintf("cannot coerce %q to %s in column %s", e.Value, e.Expected, e.Column)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	return msg
}

// NullValueError reports an empty field in a non-nullable column.
type NullValueError struct {
	Column string
	Line   int
}

func (e *NullValueError) Error() string {
	msg := fmt.Sprintf("null value in non-nullable column %s", e.Column)
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	return msg
}

// TypeError is an expression evaluation failure caused by incompatible
// operand types, e.g. string + integer.
type TypeError struct {
	Op    string
	Left  string // operand type names
	Right string
}

func (e *TypeError) Error() string {
	if e.Right == "" {
		return fmt.Sprintf("type error: operator %s not applicable to %s", e.Op, e.Left)
	}
	return fmt.Sprintf("type error: operator %s not applicable to %s and %s", e.Op, e.Left, e.Right)
}

// NullOperandError is raised by operators that refuse null input (contains).
type NullOperandError struct {
	Op string
}

func (e *NullOperandError) Error() string {
	return fmt.Sprintf("null operand for %s", e.Op)
}

// AmbiguousColumnError reports a non-key column present on both sides of a join.
type AmbiguousColumnError struct {
	Column string
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("ambiguous column %s: present on both sides of join", e.Column)
}

// UnsupportedQueryError names the query fragment outside the supported SQL subset.
type UnsupportedQueryError struct {
	Clause string
	Reason string
}

func (e *UnsupportedQueryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported query clause %q: %s", e.Clause, e.Reason)
	}
	return fmt.Sprintf("unsupported query clause %q", e.Clause)
}

type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	if e.TableName == "" {
		return fmt.Sprintf("column '%s' not found", e.ColumnName)
	}
	return fmt.Sprintf("column '%s' not found in table '%s'", e.ColumnName, e.TableName)
}

type TableNotFoundError struct {
	TableName string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table not found: %s", e.TableName)
}
