package join

import (
	"fmt"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// outputColumn maps one input column to its name in the joined table
type outputColumn struct {
	source string
	name   string
}

// layout describes where joined columns come from
type layout struct {
	key    string
	left   []outputColumn // includes the key
	right  []outputColumn // non-key columns only
	schema *schema.TableSchema
}

// validateJoinCondition checks if the join is valid
func validateJoinCondition(leftTable, rightTable *schema.Table, key string) error {
	if leftTable == nil {
		return fmt.Errorf("left table is nil")
	}
	if rightTable == nil {
		return fmt.Errorf("right table is nil")
	}

	leftCol, ok := leftTable.Schema.Column(key)
	if !ok {
		return &errors.ColumnNotFoundError{TableName: leftTable.Name, ColumnName: key}
	}
	rightCol, ok := rightTable.Schema.Column(key)
	if !ok {
		return &errors.ColumnNotFoundError{TableName: rightTable.Name, ColumnName: key}
	}

	// Validate type compatibility
	if leftCol.Type != rightCol.Type {
		return &errors.TypeError{Op: "join", Left: string(leftCol.Type), Right: string(rightCol.Type)}
	}
	return nil
}

// buildLayout computes the output schema: left columns in order, then the
// right non-key columns. Duplicate output names are ambiguous.
func buildLayout(leftTable, rightTable *schema.Table, key string, joinType JoinType, opts Options) (*layout, error) {
	l := &layout{key: key}
	cols := make([]schema.Column, 0, leftTable.Schema.Len()+rightTable.Schema.Len()-1)
	seen := make(map[string]bool)

	add := func(col schema.Column, name string, nullable bool) error {
		if seen[name] {
			return &errors.AmbiguousColumnError{Column: name}
		}
		seen[name] = true
		col.Name = name
		col.Nullable = col.Nullable || nullable
		cols = append(cols, col)
		return nil
	}

	for _, col := range leftTable.Schema.Columns {
		name := col.Name
		nullable := joinType.keepsUnmatchedRight()
		if col.Name == key {
			rightKey, _ := rightTable.Schema.Column(key)
			nullable = rightKey.Nullable
		} else {
			name = qualify(opts.LeftQualifier, col.Name)
		}
		if err := add(col, name, nullable); err != nil {
			return nil, err
		}
		l.left = append(l.left, outputColumn{source: col.Name, name: name})
	}

	for _, col := range rightTable.Schema.Columns {
		if col.Name == key {
			continue
		}
		name := qualify(opts.RightQualifier, col.Name)
		if err := add(col, name, joinType.keepsUnmatchedLeft()); err != nil {
			return nil, err
		}
		l.right = append(l.right, outputColumn{source: col.Name, name: name})
	}

	s, err := schema.NewTableSchema(leftTable.Schema.TableName, cols...)
	if err != nil {
		return nil, err
	}
	l.schema = s
	return l, nil
}

// buildJoinIndex creates a hash index for the join column.
// NULL keys are left out so they never match.
func buildJoinIndex(table *schema.Table, columnName string) map[interface{}][]int {
	hashIndex := make(map[interface{}][]int)
	for i, row := range table.Rows {
		value := row[columnName]
		if value == nil {
			continue
		}
		hashIndex[value] = append(hashIndex[value], i)
	}
	return hashIndex
}

// combineRows merges two rows into the joined layout.
// A nil side contributes NULLs; the key is taken from whichever side exists.
func (l *layout) combineRows(leftRow, rightRow data.Row) data.Row {
	joined := make(data.Row, len(l.left)+len(l.right))

	for _, c := range l.left {
		if leftRow != nil {
			joined[c.name] = leftRow[c.source]
		} else {
			joined[c.name] = nil
		}
	}
	if leftRow == nil && rightRow != nil {
		joined[l.key] = rightRow[l.key]
	}

	for _, c := range l.right {
		if rightRow != nil {
			joined[c.name] = rightRow[c.source]
		} else {
			joined[c.name] = nil
		}
	}
	return joined
}
