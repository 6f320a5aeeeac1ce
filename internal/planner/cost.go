package planner

import "github.com/leengari/tabquery/internal/plan"

// estimateRowCount is an upper bound on the rows a node returns.
// Filters are assumed to keep every row; an aggregate without keys
// returns exactly one.
func estimateRowCount(node plan.Node) int {
	switch n := node.(type) {
	case *plan.ScanNode:
		rows, _ := n.Metadata()["table_rows"].(int)
		return rows
	case *plan.AggregateNode:
		if len(n.GroupBy) == 0 {
			return 1
		}
	}
	children := node.Children()
	if len(children) == 0 {
		return 0
	}
	return estimateRowCount(children[0])
}

// attachEstimates records estimated_rows on every node of the tree
func attachEstimates(root plan.Node) {
	plan.WalkTree(root, func(n plan.Node) error {
		n.Metadata()["estimated_rows"] = estimateRowCount(n)
		return nil
	})
}
