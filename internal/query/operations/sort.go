package operations

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/expression"
)

// SortKey orders by one column
type SortKey struct {
	Column    string
	Ascending bool
}

// Asc sorts a column ascending
func Asc(column string) SortKey { return SortKey{Column: column, Ascending: true} }

// Desc sorts a column descending
func Desc(column string) SortKey { return SortKey{Column: column, Ascending: false} }

func (k SortKey) String() string {
	if k.Ascending {
		return k.Column + " ASC"
	}
	return k.Column + " DESC"
}

// Sort returns the rows ordered by keys, earlier keys taking precedence.
// The sort is stable and NULLs go last whatever the direction.
func Sort(table *schema.Table, keys ...SortKey) (*schema.Table, error) {
	for _, k := range keys {
		if table.Schema.ColumnIndex(k.Column) < 0 {
			return nil, &errors.ColumnNotFoundError{TableName: table.Name, ColumnName: k.Column}
		}
	}

	rows := make([]data.Row, len(table.Rows))
	copy(rows, table.Rows)

	var cmpErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if cmpErr != nil {
			return false
		}
		c, err := compareRows(rows[i], rows[j], keys)
		if err != nil {
			cmpErr = err
			return false
		}
		return c < 0
	})
	if cmpErr != nil {
		return nil, fmt.Errorf("sort: %w", cmpErr)
	}

	slog.Debug("Sort applied",
		slog.String("table", table.Name),
		slog.Any("keys", keys),
		slog.Int("rows", len(rows)),
	)

	return table.Derive(table.Schema, rows), nil
}

func compareRows(a, b data.Row, keys []SortKey) (int, error) {
	for _, k := range keys {
		av, bv := a[k.Column], b[k.Column]
		switch {
		case av == nil && bv == nil:
			continue
		case av == nil:
			return 1, nil
		case bv == nil:
			return -1, nil
		}
		c, err := expression.CompareValues(av, bv)
		if err != nil {
			return 0, err
		}
		if c == 0 {
			continue
		}
		if !k.Ascending {
			c = -c
		}
		return c, nil
	}
	return 0, nil
}
