package schemaregistry

// builtinMetaSchemas returns the small set of built-in meta-schemas the
// registry always knows about: the document envelope itself, and the two
// control-document shapes the rendering engine understands structurally
// (spec §4.1 — "meta-schemas (document envelope, layering policy,
// validation policy)").
func builtinMetaSchemas() map[string]any {
	return map[string]any{
		"metadata/Document/v1": map[string]any{
			"type":     "object",
			"required": []any{"schema", "name"},
			"properties": map[string]any{
				"schema": map[string]any{"type": "string"},
				"name":   map[string]any{"type": "string", "minLength": float64(1)},
			},
		},
		"deckhand/LayeringPolicy/v1": map[string]any{
			"type":     "object",
			"required": []any{"layerOrder"},
			"properties": map[string]any{
				"layerOrder": map[string]any{
					"type":     "array",
					"minItems": float64(1),
					"items":    map[string]any{"type": "string"},
				},
			},
		},
		"deckhand/ValidationPolicy/v1": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"validations": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	}
}
