package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateRequiredAndType(t *testing.T) {
	raw := map[string]any{
		"type":     "object",
		"required": []any{"name", "port"},
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"port": map[string]any{"type": "integer", "minimum": float64(1), "maximum": float64(65535)},
		},
	}
	schema, err := NewSchema(raw)
	require.NoError(t, err)

	result := Evaluate(schema, map[string]any{"name": "svc", "port": float64(8080)})
	assert.True(t, result.Valid, "%+v", result.Errors)

	result = Evaluate(schema, map[string]any{"name": "svc"})
	assert.False(t, result.Valid)

	result = Evaluate(schema, map[string]any{"name": "svc", "port": float64(99999)})
	assert.False(t, result.Valid)
}

func TestEvaluatePattern(t *testing.T) {
	schema, err := NewSchema(map[string]any{"type": "string", "pattern": "^[a-z]+$"})
	require.NoError(t, err)

	assert.True(t, Evaluate(schema, "abc").Valid)
	assert.False(t, Evaluate(schema, "ABC").Valid)
}

func TestEvaluateAdditionalPropertiesFalse(t *testing.T) {
	schema, err := NewSchema(map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"a": map[string]any{"type": "string"}},
		"additionalProperties": false,
	})
	require.NoError(t, err)

	assert.True(t, Evaluate(schema, map[string]any{"a": "x"}).Valid)
	assert.False(t, Evaluate(schema, map[string]any{"a": "x", "b": "y"}).Valid)
}

func TestEvaluateBooleanSchemas(t *testing.T) {
	trueSchema, err := NewSchema(true)
	require.NoError(t, err)
	assert.True(t, Evaluate(trueSchema, "anything").Valid)

	falseSchema, err := NewSchema(false)
	require.NoError(t, err)
	assert.False(t, Evaluate(falseSchema, "anything").Valid)
}
