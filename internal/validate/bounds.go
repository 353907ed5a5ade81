package validate

import "unicode/utf8"

// evaluateMinimum and evaluateMaximum collapse to float64 comparisons
// since deckhand schemas don't need arbitrary-precision rationals.
func evaluateMinimum(schema *Schema, value float64) *EvaluationError {
	if schema.Minimum != nil && value < *schema.Minimum {
		return NewEvaluationError("minimum", "value_below_minimum", "{value} should be at least {minimum}",
			map[string]any{"value": value, "minimum": *schema.Minimum})
	}
	return nil
}

func evaluateMaximum(schema *Schema, value float64) *EvaluationError {
	if schema.Maximum != nil && value > *schema.Maximum {
		return NewEvaluationError("maximum", "value_above_maximum", "{value} should be at most {maximum}",
			map[string]any{"value": value, "maximum": *schema.Maximum})
	}
	return nil
}

// evaluateMinLength / evaluateMaxLength mirror minlength.go / maxlength.go.
func evaluateMinLength(schema *Schema, s string) *EvaluationError {
	if schema.MinLength != nil && utf8.RuneCountInString(s) < *schema.MinLength {
		return NewEvaluationError("minLength", "length_below_minimum", "String should be at least {minimum} characters",
			map[string]any{"minimum": *schema.MinLength})
	}
	return nil
}

func evaluateMaxLength(schema *Schema, s string) *EvaluationError {
	if schema.MaxLength != nil && utf8.RuneCountInString(s) > *schema.MaxLength {
		return NewEvaluationError("maxLength", "length_above_maximum", "String should be at most {maximum} characters",
			map[string]any{"maximum": *schema.MaxLength})
	}
	return nil
}

// evaluateMinItems / evaluateMaxItems mirror minItems.go / maxItems.go.
func evaluateMinItems(schema *Schema, items []any) *EvaluationError {
	if schema.MinItems != nil && len(items) < *schema.MinItems {
		return NewEvaluationError("minItems", "items_below_minimum", "Array should have at least {minimum} items",
			map[string]any{"minimum": *schema.MinItems})
	}
	return nil
}

func evaluateMaxItems(schema *Schema, items []any) *EvaluationError {
	if schema.MaxItems != nil && len(items) > *schema.MaxItems {
		return NewEvaluationError("maxItems", "items_above_maximum", "Array should have at most {maximum} items",
			map[string]any{"maximum": *schema.MaxItems})
	}
	return nil
}
