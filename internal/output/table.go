package output

import (
	"fmt"
	"io"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/schema"
	"github.com/leengari/tabquery/internal/query/operations"
	"github.com/olekukonko/tablewriter"
)

// DefaultShowRows is how many rows Show prints when n is not positive
const DefaultShowRows = 20

// TableFormatter draws a bordered console table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new console table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders all rows of t in schema order. NULL renders as "null".
func (f *TableFormatter) Format(t *schema.Table) error {
	if t == nil || t.Schema == nil {
		return fmt.Errorf("format: nil table")
	}

	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(t.Schema.Names())
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range t.Rows {
		tw.Append(Record(t.Schema, row))
	}
	tw.Render()
	return nil
}

// Record renders one row as display strings in schema order
func Record(s *schema.TableSchema, row data.Row) []string {
	record := make([]string, s.Len())
	for i, col := range s.Columns {
		record[i] = data.FormatValue(row[col.Name])
	}
	return record
}

// Show prints at most n rows of t (DefaultShowRows when n <= 0) followed
// by an "only showing top n rows" footer when rows were cut
func Show(w io.Writer, t *schema.Table, n int) error {
	if n <= 0 {
		n = DefaultShowRows
	}
	head, err := operations.Limit(t, n)
	if err != nil {
		return err
	}
	if err := NewTableFormatter(w).Format(head); err != nil {
		return err
	}
	if t.Len() > n {
		if _, err := fmt.Fprintf(w, "only showing top %d rows\n", n); err != nil {
			return err
		}
	}
	return nil
}

// PrintSchema writes the schema tree of s
func PrintSchema(w io.Writer, s *schema.TableSchema) error {
	_, err := io.WriteString(w, s.TreeString())
	return err
}
