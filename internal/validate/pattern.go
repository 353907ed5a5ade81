package validate

import "regexp"

// evaluatePattern checks that string instance matches schema.Pattern,
// caching the compiled regular expression on the schema.
func evaluatePattern(schema *Schema, instance string) *EvaluationError {
	if schema.Pattern == nil {
		return nil
	}
	re, err := compiledPattern(schema)
	if err != nil {
		return NewEvaluationError("pattern", "invalid_pattern", "Invalid regular expression pattern {pattern}",
			map[string]any{"pattern": *schema.Pattern})
	}
	if !re.MatchString(instance) {
		return NewEvaluationError("pattern", "pattern_mismatch", "Value does not match the required pattern {pattern}",
			map[string]any{"pattern": *schema.Pattern, "value": instance})
	}
	return nil
}

func compiledPattern(schema *Schema) (*regexp.Regexp, error) {
	if schema.compiledPattern == nil {
		re, err := regexp.Compile(*schema.Pattern)
		if err != nil {
			return nil, err
		}
		schema.compiledPattern = re
	}
	return schema.compiledPattern, nil
}
