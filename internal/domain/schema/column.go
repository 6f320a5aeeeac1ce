package schema

import (
	"fmt"
	"strings"
)

type ColumnType string

const (
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeFloat   ColumnType = "float"
	ColumnTypeString  ColumnType = "string"
	ColumnTypeBoolean ColumnType = "boolean"
)

// ParseColumnType maps a declared type name (case-insensitive, common
// aliases accepted) to a ColumnType
func ParseColumnType(name string) (ColumnType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "integer", "int", "long", "bigint":
		return ColumnTypeInteger, nil
	case "float", "double", "decimal":
		return ColumnTypeFloat, nil
	case "string", "text", "varchar":
		return ColumnTypeString, nil
	case "boolean", "bool":
		return ColumnTypeBoolean, nil
	}
	return "", fmt.Errorf("unknown column type %q", name)
}

// IsNumeric reports whether arithmetic is defined for the type
func (t ColumnType) IsNumeric() bool {
	return t == ColumnTypeInteger || t == ColumnTypeFloat
}

type Column struct {
	Name     string     `json:"name" yaml:"name"`
	Type     ColumnType `json:"type" yaml:"type"`
	Nullable bool       `json:"nullable" yaml:"nullable"`
}
