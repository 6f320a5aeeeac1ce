package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInteger parses a base-10 integer field
func ParseInteger(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return n, nil
}

// ParseFloat parses a decimal or exponent float field (e.g. '5500.0', '1e3')
func ParseFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", value)
	}
	return f, nil
}

// ParseBoolean accepts true/false in any case
func ParseBoolean(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q, expected true or false", value)
}

// ValidateIdentifier checks a column or view name: non-empty, no separators
// or whitespace that would break the CSV header or SQL lexer
func ValidateIdentifier(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if strings.ContainsAny(name, ", \t\r\n'") {
		return fmt.Errorf("identifier %q contains a separator or whitespace", name)
	}
	return nil
}
