package data

import "fmt"

// Row represents a single table row
// Key = column name, Value = cell value (int64, float64, string, bool or nil for NULL)
//
// Rows reachable from a Table are shared between tables produced by
// operators and must be treated as read-only; use Copy before changing one.
type Row map[string]interface{}

// Copy returns a shallow copy of the row
func (r Row) Copy() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// Get retrieves a value by column name. A present key holding nil is a NULL.
func (r Row) Get(column string) (interface{}, bool) {
	val, exists := r[column]
	return val, exists
}

// IsNull reports whether the column is missing or holds NULL
func (r Row) IsNull(column string) bool {
	val, exists := r[column]
	return !exists || val == nil
}

// Equal compares two rows value by value
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// String returns a string representation for debugging
func (r Row) String() string {
	return fmt.Sprintf("Row%v", map[string]interface{}(r))
}
