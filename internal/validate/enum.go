package validate

import "reflect"

// evaluateEnum checks instance against schema.Enum. Mirrors the
// teacher's EvaluateEnum.
func evaluateEnum(schema *Schema, instance any) *EvaluationError {
	if len(schema.Enum) == 0 {
		return nil
	}
	for _, allowed := range schema.Enum {
		if reflect.DeepEqual(instance, allowed) {
			return nil
		}
	}
	return NewEvaluationError("enum", "value_not_in_enum", "Value should match one of the values specified by the enum")
}

// evaluateConst checks instance against schema.Const. Mirrors the
// teacher's EvaluateConst.
func evaluateConst(schema *Schema, instance any) *EvaluationError {
	if schema.Const == nil {
		return nil
	}
	if !reflect.DeepEqual(instance, *schema.Const) {
		return NewEvaluationError("const", "const_mismatch", "Value does not match the constant value")
	}
	return nil
}
