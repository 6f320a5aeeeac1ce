package output

import (
	"fmt"
	"io"

	"github.com/leengari/tabquery/internal/domain/schema"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	// Format writes every row of t in the formatter's format
	Format(t *schema.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// NewFormatter returns the formatter registered under name: table, csv or json
func NewFormatter(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "", "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w, ","), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected table, csv or json)", name)
}
