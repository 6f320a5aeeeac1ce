package operations_test

import (
	"testing"

	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/leengari/tabquery/internal/query/operations/testutil"
)

func TestLimit(t *testing.T) {
	table := testutil.CreateEmployeesTable()

	tests := []struct {
		n        int
		expected int
	}{
		{0, 0},
		{3, 3},
		{10, 10},
		{20, 10},
	}

	for _, tt := range tests {
		result, err := operations.Limit(table, tt.n)
		testutil.AssertNoError(t, err, "Limit")
		testutil.AssertRowCount(t, result.Len(), tt.expected, "Limit")
	}

	_, err := operations.Limit(table, -1)
	testutil.AssertError(t, err, "Negative limit")
}
