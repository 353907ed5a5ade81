package validate

import (
	"fmt"
	"strings"
)

// evaluateRequired checks that every name in schema.Required is present
// in object.
func evaluateRequired(schema *Schema, object map[string]any) *EvaluationError {
	if len(schema.Required) == 0 {
		return nil
	}

	var missing []string
	for _, name := range schema.Required {
		if _, ok := object[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	quoted := make([]string, len(missing))
	for i, m := range missing {
		quoted[i] = fmt.Sprintf("'%s'", m)
	}
	return NewEvaluationError("required", "missing_required_properties",
		"Required properties {properties} are missing",
		map[string]any{"properties": strings.Join(quoted, ", ")})
}
