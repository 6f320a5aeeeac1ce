// Package output renders tables for the console and for files.
//
// Formatters share one interface so the CLI can switch between them:
//
//   - TableFormatter: bordered console table with the declared column order
//   - CSVFormatter: delimited lines the loader can read back
//   - JSONFormatter: JSON Lines, one object per row, keys in column order
//
// Show and PrintSchema are the console helpers used by the analysis runner
// and the REPL.
package output
