package data

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeName returns the engine-level type name of a cell value
func TypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case int64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// NormalizeValue converts Go numeric kinds to the engine's int64/float64
// representation. Other values are returned unchanged.
func NormalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case float32:
		return float64(val)
	}
	return v
}

// FormatValue renders a cell for display. Floats always carry a decimal
// point so 5500 prints as 5500.0.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
