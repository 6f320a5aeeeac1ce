package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the on-disk YAML layout:
//
//	name: employees
//	columns:
//	  - {name: Emp_No, type: integer, nullable: true}
type schemaFile struct {
	Name    string `yaml:"name"`
	Columns []struct {
		Name     string `yaml:"name"`
		Type     string `yaml:"type"`
		Nullable *bool  `yaml:"nullable"`
	} `yaml:"columns"`
}

// ParseSchema decodes a YAML schema declaration. Nullable defaults to true.
func ParseSchema(b []byte) (*TableSchema, error) {
	var raw schemaFile
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if len(raw.Columns) == 0 {
		return nil, fmt.Errorf("parse schema: no columns declared")
	}

	cols := make([]Column, 0, len(raw.Columns))
	for _, c := range raw.Columns {
		t, err := ParseColumnType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("parse schema: column %s: %w", c.Name, err)
		}
		nullable := true
		if c.Nullable != nil {
			nullable = *c.Nullable
		}
		cols = append(cols, Column{Name: c.Name, Type: t, Nullable: nullable})
	}
	return NewTableSchema(raw.Name, cols...)
}

// LoadSchemaFile reads and parses a YAML schema file
func LoadSchemaFile(path string) (*TableSchema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}
	return ParseSchema(b)
}
