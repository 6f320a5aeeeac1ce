package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Data.Path != "data/employees.csv" || !cfg.Data.HasHeader || cfg.Data.Delimiter != "," {
		t.Errorf("Unexpected data defaults: %+v", cfg.Data)
	}
	if cfg.View != "employees" {
		t.Errorf("Expected view employees, got %q", cfg.View)
	}
	if cfg.Show.MaxRows != 20 {
		t.Errorf("Expected max_rows 20, got %d", cfg.Show.MaxRows)
	}
	if cfg.Run.FailFast || cfg.Tracing.Enabled {
		t.Errorf("Expected fail_fast and tracing off, got %+v %+v", cfg.Run, cfg.Tracing)
	}
	if cfg.Log.Level != "info" || cfg.Log.SeqURL != "" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabquery.yaml")
	content := `
data:
  path: /srv/staff.csv
  delimiter: ";"
view: staff
show:
  max_rows: 5
run:
  fail_fast: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(Options{File: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Path != "/srv/staff.csv" || cfg.Data.Delimiter != ";" {
		t.Errorf("Unexpected data config: %+v", cfg.Data)
	}
	// unset keys keep their defaults
	if !cfg.Data.HasHeader {
		t.Error("Expected has_header to keep its default")
	}
	if cfg.View != "staff" || cfg.Show.MaxRows != 5 || !cfg.Run.FailFast {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(Options{File: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("TABQUERY_DATA_PATH", "/tmp/env.csv")
	t.Setenv("TABQUERY_LOG_LEVEL", "debug")
	t.Setenv("TABQUERY_DATA_HAS_HEADER", "false")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Path != "/tmp/env.csv" {
		t.Errorf("Expected env data path, got %q", cfg.Data.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected env log level, got %q", cfg.Log.Level)
	}
	if cfg.Data.HasHeader {
		t.Error("Expected env to turn has_header off")
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("TABQUERY_DATA_PATH", "/tmp/env.csv")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data", "", "")
	flags.String("log-level", "", "")
	if err := flags.Parse([]string{"--data", "/tmp/flag.csv"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(Options{Flags: map[string]*pflag.Flag{
		"data.path": flags.Lookup("data"),
		"log.level": flags.Lookup("log-level"),
	}})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.Path != "/tmp/flag.csv" {
		t.Errorf("Expected flag to win, got %q", cfg.Data.Path)
	}
	// unchanged flag does not clobber the default
	if cfg.Log.Level != "info" {
		t.Errorf("Expected default log level, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty delimiter", func(c *Config) { c.Data.Delimiter = "" }, "data.delimiter"},
		{"empty view", func(c *Config) { c.View = " " }, "view"},
		{"negative max rows", func(c *Config) { c.Show.MaxRows = -1 }, "show.max_rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Data: DataConfig{Path: "x.csv", HasHeader: true, Delimiter: ","},
				View: "employees",
				Show: ShowConfig{MaxRows: 20},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
