package validate

import "fmt"

// evaluateItems recurses into each element of a sequence instance
// against schema.Items. Mirrors items.go.
func evaluateItems(schema *Schema, items []any, result *Result, path string) {
	if schema.Items == nil {
		return
	}
	for i, item := range items {
		evaluate(schema.Items, item, result, fmt.Sprintf("%s[%d]", path, i))
	}
}
