package validate

import "fmt"

// toString renders a template param for substitution into an error
// message.
func toString(v any) string {
	return fmt.Sprint(v)
}

// dataType classifies instance the way JSON Schema's "type" keyword does:
// null, boolean, object, array, string, integer, or number.
func dataType(instance any) string {
	switch v := instance.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case int, int32, int64:
		return "integer"
	case float32:
		if float32(int64(v)) == v {
			return "integer"
		}
		return "number"
	case float64:
		if float64(int64(v)) == v {
			return "integer"
		}
		return "number"
	default:
		return "unknown"
	}
}

// asFloat64 converts any numeric instance type into a float64 for
// minimum/maximum comparisons.
func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
