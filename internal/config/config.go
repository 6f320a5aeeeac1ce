// Package config loads runtime settings from defaults, an optional YAML
// file, TABQUERY_ environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: TABQUERY_DATA_PATH sets data.path
const EnvPrefix = "TABQUERY"

type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Schema  SchemaConfig  `mapstructure:"schema"`
	View    string        `mapstructure:"view"`
	Show    ShowConfig    `mapstructure:"show"`
	Run     RunConfig     `mapstructure:"run"`
	Log     LogConfig     `mapstructure:"log"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

type DataConfig struct {
	Path      string `mapstructure:"path"`
	HasHeader bool   `mapstructure:"has_header"`
	Delimiter string `mapstructure:"delimiter"`
}

// SchemaConfig points at a YAML schema; an empty path means the built-in
// employees schema
type SchemaConfig struct {
	Path string `mapstructure:"path"`
}

type ShowConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

type RunConfig struct {
	FailFast bool `mapstructure:"fail_fast"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	SeqURL string `mapstructure:"seq_url"`
}

type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var defaults = map[string]interface{}{
	"data.path":       "data/employees.csv",
	"data.has_header": true,
	"data.delimiter":  ",",
	"schema.path":     "",
	"view":            "employees",
	"show.max_rows":   20,
	"run.fail_fast":   false,
	"log.level":       "info",
	"log.seq_url":     "",
	"tracing.enabled": false,
}

// Options says where Load looks besides defaults and the environment
type Options struct {
	// File is a YAML config file; empty skips it
	File string
	// Flags maps config keys (e.g. "data.path") to flags that override them
	// when set on the command line
	Flags map[string]*pflag.Flag
}

// Load resolves the configuration and validates it
func Load(opts Options) (*Config, error) {
	v := viper.New()

	// 1. Defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Config file (optional)
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Flags
	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the loader and runner cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.Data.Delimiter == "" {
		errs = append(errs, fmt.Errorf("data.delimiter must not be empty"))
	}
	if strings.TrimSpace(c.View) == "" {
		errs = append(errs, fmt.Errorf("view must not be empty"))
	}
	if c.Show.MaxRows < 0 {
		errs = append(errs, fmt.Errorf("show.max_rows must not be negative, got %d", c.Show.MaxRows))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
