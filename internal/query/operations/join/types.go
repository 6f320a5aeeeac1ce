package join

// JoinType represents the type of JOIN operation
type JoinType int

const (
	JoinTypeInner JoinType = iota // Returns only matching rows from both tables
	JoinTypeLeft                  // Returns all rows from left table, NULLs for unmatched right rows
	JoinTypeRight                 // Returns all rows from right table, NULLs for unmatched left rows
	JoinTypeFull                  // Returns all rows from both tables, NULLs where no match
)

// String returns the string representation of the JOIN type
func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "INNER JOIN"
	case JoinTypeLeft:
		return "LEFT JOIN"
	case JoinTypeRight:
		return "RIGHT JOIN"
	case JoinTypeFull:
		return "FULL OUTER JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// keepsUnmatchedLeft reports whether left rows without a match are emitted
func (jt JoinType) keepsUnmatchedLeft() bool {
	return jt == JoinTypeLeft || jt == JoinTypeFull
}

// keepsUnmatchedRight reports whether right rows without a match are emitted
func (jt JoinType) keepsUnmatchedRight() bool {
	return jt == JoinTypeRight || jt == JoinTypeFull
}

// Options controls output column naming.
// A non-empty qualifier prefixes that side's non-key columns as
// "<qualifier>.<column>", which is how a self-join avoids ambiguity.
type Options struct {
	LeftQualifier  string
	RightQualifier string
}

// Qualified is the usual self-join naming: l.<col> and r.<col>
var Qualified = Options{LeftQualifier: "l", RightQualifier: "r"}

func qualify(qualifier, column string) string {
	if qualifier == "" {
		return column
	}
	return qualifier + "." + column
}
