package join

import (
	"fmt"
	"log/slog"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// Execute performs an equality join of left and right on the key column.
// Each left row pairs with every right row sharing its key, so a self-join
// on a unique key keeps the row count. The key appears once in the output.
func Execute(leftTable, rightTable *schema.Table, key string, joinType JoinType, opts Options) (*schema.Table, error) {
	if err := validateJoinCondition(leftTable, rightTable, key); err != nil {
		return nil, err
	}
	switch joinType {
	case JoinTypeInner, JoinTypeLeft, JoinTypeRight, JoinTypeFull:
	default:
		return nil, fmt.Errorf("unknown JOIN type: %v", joinType)
	}

	l, err := buildLayout(leftTable, rightTable, key, joinType, opts)
	if err != nil {
		return nil, err
	}

	slog.Debug("Starting "+joinType.String(),
		slog.String("left_table", leftTable.Name),
		slog.String("right_table", rightTable.Name),
		slog.String("key", key),
	)

	// Build hash index on right table
	hashIndex := buildJoinIndex(rightTable, key)

	results := make([]data.Row, 0, len(leftTable.Rows))
	matchedRightRows := make(map[int]bool)
	unmatchedLeft := 0

	// Probe left table and combine matches
	for _, leftRow := range leftTable.Rows {
		leftValue := leftRow[key]
		var rightPositions []int
		if leftValue != nil {
			rightPositions = hashIndex[leftValue]
		}

		if len(rightPositions) == 0 {
			unmatchedLeft++
			if joinType.keepsUnmatchedLeft() {
				results = append(results, l.combineRows(leftRow, nil))
			}
			continue
		}

		for _, rightPos := range rightPositions {
			matchedRightRows[rightPos] = true
			results = append(results, l.combineRows(leftRow, rightTable.Rows[rightPos]))
		}
	}

	// Add unmatched right rows
	if joinType.keepsUnmatchedRight() {
		for rightPos, rightRow := range rightTable.Rows {
			if !matchedRightRows[rightPos] {
				results = append(results, l.combineRows(nil, rightRow))
			}
		}
	}

	slog.Debug(joinType.String()+" completed",
		slog.String("left_table", leftTable.Name),
		slog.String("right_table", rightTable.Name),
		slog.Int("result_rows", len(results)),
		slog.Int("unmatched_left", unmatchedLeft),
		slog.Int("unmatched_right", len(rightTable.Rows)-len(matchedRightRows)),
	)

	return leftTable.Derive(l.schema, results), nil
}
