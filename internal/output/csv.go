package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/leengari/tabquery/internal/domain/schema"
)

// CSVFormatter writes tables as delimited text. NULL becomes an empty
// field, which the loader reads back as NULL for nullable columns.
type CSVFormatter struct {
	writer    io.Writer
	delimiter string
	header    bool
}

// NewCSVFormatter creates a CSV formatter that writes a header line
func NewCSVFormatter(w io.Writer, delimiter string) *CSVFormatter {
	return &CSVFormatter{writer: w, delimiter: delimiter, header: true}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes t as CSV
func (c *CSVFormatter) Format(t *schema.Table) error {
	return WriteCSV(c.writer, t, c.delimiter, c.header)
}

// WriteCSV serializes t in schema order as the loader reads it: fields
// joined by delimiter with no quoting. delimiter must be a single character;
// "" means comma. A field containing the delimiter or a line break cannot be
// read back and is an error.
func WriteCSV(w io.Writer, t *schema.Table, delimiter string, header bool) error {
	if t == nil || t.Schema == nil {
		return fmt.Errorf("write csv: nil table")
	}
	if delimiter == "" {
		delimiter = ","
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("write csv: delimiter %q must be a single character", delimiter)
	}

	bw := bufio.NewWriter(w)

	if header {
		if err := writeLine(bw, t.Schema.Names(), delimiter); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	for i, row := range t.Rows {
		record := Record(t.Schema, row)
		for j, col := range t.Schema.Columns {
			if row.IsNull(col.Name) {
				record[j] = ""
			}
		}
		if err := writeLine(bw, record, delimiter); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

func writeLine(w *bufio.Writer, fields []string, delimiter string) error {
	for i, f := range fields {
		if strings.Contains(f, delimiter) || strings.ContainsAny(f, "\r\n") {
			return fmt.Errorf("field %d %q contains the delimiter or a line break", i+1, f)
		}
	}
	if _, err := w.WriteString(strings.Join(fields, delimiter)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
