package testutil

import (
	"testing"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnCount checks if a row has the expected number of columns
func AssertColumnCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, actual)
	}
}

// AssertColumnExists checks if a column exists in a row
func AssertColumnExists(t *testing.T, row data.Row, column, context string) {
	t.Helper()
	if _, exists := row[column]; !exists {
		t.Errorf("%s: expected column '%s' to exist", context, column)
	}
}

// AssertColumnNotExists checks if a column does not exist in a row
func AssertColumnNotExists(t *testing.T, row data.Row, column, context string) {
	t.Helper()
	if _, exists := row[column]; exists {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertColumns checks the schema column names in order
func AssertColumns(t *testing.T, table *schema.Table, expected []string, context string) {
	t.Helper()
	got := table.Schema.Names()
	if len(got) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, got)
		return
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, got)
			return
		}
	}
}

// AssertValue checks a single cell
func AssertValue(t *testing.T, row data.Row, column string, expected interface{}, context string) {
	t.Helper()
	if got := row[column]; got != expected {
		t.Errorf("%s: expected %s=%v (%T), got %v (%T)", context, column, expected, expected, got, got)
	}
}

// AssertConforms checks every row against the table schema
func AssertConforms(t *testing.T, table *schema.Table, context string) {
	t.Helper()
	for i, row := range table.Rows {
		if err := table.Schema.CheckRow(row); err != nil {
			t.Errorf("%s: row %d does not conform: %v", context, i, err)
		}
	}
}

// AssertRowsUnchanged checks that a table still holds a previously taken snapshot
func AssertRowsUnchanged(t *testing.T, table *schema.Table, snapshot []data.Row, context string) {
	t.Helper()
	if len(table.Rows) != len(snapshot) {
		t.Fatalf("%s: input row count changed from %d to %d", context, len(snapshot), len(table.Rows))
	}
	for i := range snapshot {
		if !table.Rows[i].Equal(snapshot[i]) {
			t.Errorf("%s: input row %d mutated: %v -> %v", context, i, snapshot[i], table.Rows[i])
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertNullValue checks if a value is nil
func AssertNullValue(t *testing.T, value interface{}, context string) {
	t.Helper()
	if value != nil {
		t.Errorf("%s: expected NULL value, got: %v", context, value)
	}
}
