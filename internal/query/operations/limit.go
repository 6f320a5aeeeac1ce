package operations

import (
	"fmt"

	"github.com/leengari/tabquery/internal/domain/schema"
)

// Limit returns the first n rows
func Limit(table *schema.Table, n int) (*schema.Table, error) {
	if n < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", n)
	}
	if n >= len(table.Rows) {
		return table, nil
	}
	return table.Derive(table.Schema, table.Rows[:n:n]), nil
}
