package validate

// Evaluate checks instance against schema and returns the accumulated
// Result. The exported/internal split (Evaluate / evaluate) separates
// the entry point from the recursive walk, which carries no $ref
// dynamic-scope bookkeeping since this subset doesn't need it.
func Evaluate(schema *Schema, instance any) *Result {
	result := &Result{Valid: true}
	evaluate(schema, instance, result, "")
	return result
}

func evaluate(schema *Schema, instance any, result *Result, path string) {
	if schema == nil {
		return
	}
	if schema.never() {
		result.add(path, NewEvaluationError("false", "schema_rejects_everything", "No value is valid against this schema"))
		return
	}

	result.add(path, evaluateType(schema, instance))
	result.add(path, evaluateEnum(schema, instance))
	result.add(path, evaluateConst(schema, instance))

	switch v := instance.(type) {
	case map[string]any:
		result.add(path, evaluateRequired(schema, v))
		result.add(path, evaluateAdditionalProperties(schema, v))
		evaluateProperties(schema, v, result, path)
	case []any:
		result.add(path, evaluateMinItems(schema, v))
		result.add(path, evaluateMaxItems(schema, v))
		evaluateItems(schema, v, result, path)
	case string:
		result.add(path, evaluateMinLength(schema, v))
		result.add(path, evaluateMaxLength(schema, v))
		result.add(path, evaluatePattern(schema, v))
	default:
		if f, ok := asFloat64(instance); ok {
			result.add(path, evaluateMinimum(schema, f))
			result.add(path, evaluateMaximum(schema, f))
		}
	}
}
