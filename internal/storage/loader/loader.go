package loader

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leengari/tabquery/internal/domain/data"
	"github.com/leengari/tabquery/internal/domain/errors"
	"github.com/leengari/tabquery/internal/domain/schema"
)

// Options controls how raw lines are read
type Options struct {
	HasHeader bool
	Delimiter string // defaults to ","
}

// DefaultOptions matches the employees file: header line, comma separated
func DefaultOptions() Options {
	return Options{HasHeader: true, Delimiter: ","}
}

// LoadFile opens path and loads it as a table. The file is closed on every
// return path.
func LoadFile(path, tableName string, s *schema.TableSchema, opts Options) (*schema.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	table, err := Load(f, tableName, s, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}

// Load reads delimited lines from source into a validated table.
// Fields are split on the delimiter without quote handling. Rows keep file
// order. Blank lines are skipped but still count toward line numbers.
func Load(source io.Reader, tableName string, s *schema.TableSchema, opts Options) (*schema.Table, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = ","
	}

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rows := make([]data.Row, 0)
	lineNo := 0
	headerPending := opts.HasHeader
	skipped := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			skipped++
			continue
		}

		fields := strings.Split(line, delim)

		if headerPending {
			headerPending = false
			checkHeader(fields, s, tableName)
			continue
		}

		if len(fields) != s.Len() {
			return nil, &errors.ColumnCountMismatchError{
				Line:     lineNo,
				Expected: s.Len(),
				Got:      len(fields),
			}
		}

		row, err := s.Validate(fields, lineNo)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", lineNo+1, err)
	}

	slog.Debug("Loaded table",
		slog.String("table", tableName),
		slog.Int("rows", len(rows)),
		slog.Int("lines", lineNo),
		slog.Int("blank_lines", skipped),
	)

	return &schema.Table{Name: tableName, Schema: s, Rows: rows}, nil
}

// checkHeader warns when header names disagree with the schema. The schema
// is authoritative; header names never reorder columns.
func checkHeader(fields []string, s *schema.TableSchema, tableName string) {
	names := s.Names()
	if len(fields) != len(names) {
		slog.Warn("Header column count differs from schema",
			slog.String("table", tableName),
			slog.Int("header_columns", len(fields)),
			slog.Int("schema_columns", len(names)),
		)
		return
	}
	for i, f := range fields {
		if strings.TrimSpace(f) != names[i] {
			slog.Warn("Header name differs from schema (schema wins)",
				slog.String("table", tableName),
				slog.Int("position", i),
				slog.String("header", strings.TrimSpace(f)),
				slog.String("schema", names[i]),
			)
		}
	}
}
