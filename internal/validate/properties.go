package validate

import "fmt"

// evaluateProperties recurses into each declared property, and
// evaluateAdditionalProperties rejects undeclared keys when the schema
// sets additionalProperties: false. Mirrors properties.go, simplified to
// the boolean form of additionalProperties (deckhand schemas don't need
// a full sub-schema there).
func evaluateProperties(schema *Schema, object map[string]any, result *Result, path string) {
	for name, propSchema := range schema.Properties {
		value, present := object[name]
		if !present {
			continue
		}
		evaluate(propSchema, value, result, fmt.Sprintf("%s.%s", path, name))
	}
}

func evaluateAdditionalProperties(schema *Schema, object map[string]any) *EvaluationError {
	if schema.AdditionalProperties == nil || *schema.AdditionalProperties {
		return nil
	}
	var extra []string
	for name := range object {
		if _, declared := schema.Properties[name]; !declared {
			extra = append(extra, name)
		}
	}
	if len(extra) == 0 {
		return nil
	}
	return NewEvaluationError("additionalProperties", "additional_property_not_allowed",
		"Additional properties {properties} are not allowed", map[string]any{"properties": extra})
}
