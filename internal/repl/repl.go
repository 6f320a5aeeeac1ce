// Package repl is the interactive SQL prompt.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/leengari/tabquery/internal/engine"
	"github.com/leengari/tabquery/internal/output"
)

const prompt = "tabquery> "

var keywords = []string{
	"SELECT", "FROM", "WHERE", "GROUP BY", "AS", "AND", "OR", "NOT",
	"AVG(", "MAX(", "MIN(", "SUM(", "COUNT(", "ROUND(", "CONTAINS(",
	"explain", "exit",
}

// REPL reads commands and queries and prints their results
type REPL struct {
	eng     *engine.Engine
	out     io.Writer
	maxRows int
}

// New creates a prompt over eng writing results to out
func New(eng *engine.Engine, out io.Writer, maxRows int) *REPL {
	return &REPL{eng: eng, out: out, maxRows: maxRows}
}

// Start runs the prompt until exit, \q, Ctrl-D or Ctrl-C. History is read
// from and saved to historyPath when it is non-empty.
func (r *REPL) Start(historyPath string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(r.complete)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(r.out, "Welcome to tabquery")
	fmt.Fprintln(r.out, "Type 'exit' or '\\q' to quit, '\\d' to list views.")

	for {
		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		if !r.Execute(input) {
			break
		}
	}

	if historyPath != "" {
		f, err := os.Create(historyPath)
		if err != nil {
			slog.Warn("Could not save history", slog.String("path", historyPath), slog.Any("error", err))
			return nil
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			slog.Warn("Could not save history", slog.String("path", historyPath), slog.Any("error", err))
		}
	}
	return nil
}

// Execute handles one input line and reports whether the prompt should
// keep going. Errors are printed, never returned.
func (r *REPL) Execute(input string) bool {
	input = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), ";"))

	switch {
	case input == "":
		return true

	case input == "exit" || input == `\q`:
		return false

	case input == `\d`:
		views := r.eng.Views()
		if len(views) == 0 {
			fmt.Fprintln(r.out, "No views registered")
			return true
		}
		fmt.Fprintln(r.out, "Available views:")
		for _, v := range views {
			fmt.Fprintf(r.out, "  - %s\n", v)
		}

	case strings.HasPrefix(input, `\d `):
		name := strings.TrimSpace(strings.TrimPrefix(input, `\d `))
		table, err := r.eng.Table(name)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return true
		}
		output.PrintSchema(r.out, table.Schema)

	case hasPrefixFold(input, "explain "):
		tree, err := r.eng.Explain(input[len("explain "):])
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return true
		}
		fmt.Fprint(r.out, tree)

	default:
		result, err := r.eng.SQL(input)
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return true
		}
		if err := output.Show(r.out, result, r.maxRows); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
	return true
}

// complete offers keywords and view names for the word being typed
func (r *REPL) complete(line string) []string {
	start := strings.LastIndexAny(line, " (,") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var out []string
	for _, candidate := range append(r.eng.Views(), keywords...) {
		if hasPrefixFold(candidate, word) {
			out = append(out, prefix+candidate)
		}
	}
	return out
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
