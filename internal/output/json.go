package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/leengari/tabquery/internal/domain/schema"
)

// JSONFormatter outputs rows as JSON Lines with keys in column order
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row
func (j *JSONFormatter) Format(t *schema.Table) error {
	if t == nil || t.Schema == nil {
		return fmt.Errorf("format: nil table")
	}

	var line bytes.Buffer
	for i, row := range t.Rows {
		line.Reset()
		line.WriteByte('{')
		for k, col := range t.Schema.Columns {
			if k > 0 {
				line.WriteByte(',')
			}
			key, _ := json.Marshal(col.Name)
			val, err := json.Marshal(row[col.Name])
			if err != nil {
				return fmt.Errorf("encode row %d column %s: %w", i+1, col.Name, err)
			}
			line.Write(key)
			line.WriteByte(':')
			line.Write(val)
		}
		line.WriteString("}\n")
		if _, err := j.writer.Write(line.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
