package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leengari/tabquery/internal/analysis"
	"github.com/leengari/tabquery/internal/config"
	"github.com/leengari/tabquery/internal/output"
	"github.com/leengari/tabquery/internal/repl"
)

// flagKeys maps config keys to the flags that override them
var flagKeys = map[string]string{
	"data.path":     "data",
	"schema.path":   "schema",
	"log.level":     "log-level",
	"show.max_rows": "max-rows",
	"run.fail_fast": "fail-fast",
}

func newRootCmd(a *app) *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "tabquery",
		Short:         "Query employee CSV files with a small SQL subset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			flags := make(map[string]*pflag.Flag, len(flagKeys))
			for key, name := range flagKeys {
				flags[key] = cmd.Flags().Lookup(name)
			}
			return a.setup(config.Options{File: configFile, Flags: flags})
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file")
	pf.String("data", "", "CSV data file (default data/employees.csv)")
	pf.String("schema", "", "YAML schema file (default built-in employees schema)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(newRunCmd(a), newSQLCmd(a), newReplCmd(a), newSchemaCmd(a))
	return root
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the data and run the canned analysis tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			runner := &analysis.Runner{
				Engine:   eng,
				View:     a.cfg.View,
				Out:      cmd.OutOrStdout(),
				MaxRows:  a.cfg.Show.MaxRows,
				FailFast: a.cfg.Run.FailFast,
			}
			return runner.Run()
		},
	}
	cmd.Flags().Bool("fail-fast", false, "stop at the first failing task")
	cmd.Flags().Int("max-rows", 0, "rows shown per result (default 20)")
	return cmd
}

func newSQLCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sql <query>",
		Short: "Run one query and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			result, err := eng.SQL(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if format == "" || format == "table" {
				return output.Show(cmd.OutOrStdout(), result, a.cfg.Show.MaxRows)
			}
			f, err := output.NewFormatter(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return f.Format(result)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, csv, json")
	cmd.Flags().Int("max-rows", 0, "rows shown in table format (default 20)")
	return cmd
}

func newReplCmd(a *app) *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive SQL prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := a.engine()
			if err != nil {
				return err
			}
			return repl.New(eng, cmd.OutOrStdout(), a.cfg.Show.MaxRows).Start(history)
		},
	}
	cmd.Flags().StringVar(&history, "history", defaultHistoryPath(), "history file; empty disables history")
	return cmd
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the effective schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.schema()
			if err != nil {
				return err
			}
			return output.PrintSchema(cmd.OutOrStdout(), s)
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tabquery_history")
}
