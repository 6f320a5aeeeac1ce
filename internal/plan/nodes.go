package plan

import (
	"fmt"
	"strings"

	"github.com/leengari/tabquery/internal/domain/session"
	"github.com/leengari/tabquery/internal/query/expression"
	"github.com/leengari/tabquery/internal/query/operations"
)

// Node is the base interface for all execution plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string

	// String describes the node on one line, as shown by EXPLAIN
	String() string
}

// base carries the parts shared by every node
type base struct {
	metadata map[string]any
}

func (b *base) Metadata() map[string]any {
	if b.metadata == nil {
		b.metadata = make(map[string]any)
	}
	return b.metadata
}

// ScanNode reads a registered view (leaf node)
type ScanNode struct {
	base
	TableName string
	Session   *session.Session
}

func (n *ScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *ScanNode) NodeType() string {
	return "SCAN"
}

func (n *ScanNode) String() string {
	return fmt.Sprintf("SCAN %s", n.TableName)
}

// FilterNode keeps the child's rows for which Predicate is true
type FilterNode struct {
	base
	Predicate expression.Expression
	child     Node
}

func NewFilterNode(child Node, pred expression.Expression) *FilterNode {
	return &FilterNode{child: child, Predicate: pred}
}

func (n *FilterNode) Child() Node {
	return n.child
}

func (n *FilterNode) Children() []Node {
	return []Node{n.child}
}

func (n *FilterNode) NodeType() string {
	return "FILTER"
}

func (n *FilterNode) String() string {
	return fmt.Sprintf("FILTER %s", n.Predicate)
}

// AggregateNode groups the child's rows by GroupBy and computes Aggregates.
// With no GroupBy it produces a single row.
type AggregateNode struct {
	base
	GroupBy    []string
	Aggregates []operations.AggSpec
	child      Node
}

func NewAggregateNode(child Node, groupBy []string, aggs []operations.AggSpec) *AggregateNode {
	return &AggregateNode{child: child, GroupBy: groupBy, Aggregates: aggs}
}

func (n *AggregateNode) Child() Node {
	return n.child
}

func (n *AggregateNode) Children() []Node {
	return []Node{n.child}
}

func (n *AggregateNode) NodeType() string {
	return "AGGREGATE"
}

func (n *AggregateNode) String() string {
	aggs := make([]string, len(n.Aggregates))
	for i, a := range n.Aggregates {
		aggs[i] = a.String()
	}
	if len(n.GroupBy) == 0 {
		return fmt.Sprintf("AGGREGATE [%s]", strings.Join(aggs, ", "))
	}
	return fmt.Sprintf("AGGREGATE [%s] BY [%s]", strings.Join(aggs, ", "), strings.Join(n.GroupBy, ", "))
}

// ProjectItem is one output column of a ProjectNode
type ProjectItem struct {
	Name string
	Expr expression.Expression
}

// IsColumn reports whether the item just renames a child column
func (p ProjectItem) IsColumn() (string, bool) {
	if ref, ok := p.Expr.(*expression.ColumnRef); ok {
		return ref.Name, true
	}
	return "", false
}

// ProjectNode computes the output columns, in order
type ProjectNode struct {
	base
	Items []ProjectItem
	child Node
}

func NewProjectNode(child Node, items []ProjectItem) *ProjectNode {
	return &ProjectNode{child: child, Items: items}
}

func (n *ProjectNode) Child() Node {
	return n.child
}

func (n *ProjectNode) Children() []Node {
	return []Node{n.child}
}

func (n *ProjectNode) NodeType() string {
	return "PROJECT"
}

func (n *ProjectNode) String() string {
	items := make([]string, len(n.Items))
	for i, item := range n.Items {
		if col, ok := item.IsColumn(); ok && col == item.Name {
			items[i] = item.Name
			continue
		}
		items[i] = fmt.Sprintf("%s AS %s", item.Expr, item.Name)
	}
	return fmt.Sprintf("PROJECT [%s]", strings.Join(items, ", "))
}
