package validate

import (
	"regexp"

	"github.com/zeebo/errs"
)

// ErrSchema classifies malformed schema bodies supplied by a DataSchema
// control document.
var ErrSchema = errs.Class("schema")

// Schema is the subset of JSON Schema Draft 2020-12 the document
// validator understands (see package doc comment for the rationale).
type Schema struct {
	Type                 []string
	Required             []string
	Properties           map[string]*Schema
	Items                *Schema
	Enum                 []any
	Const                *any
	Pattern              *string
	compiledPattern      *regexp.Regexp
	Minimum              *float64
	Maximum              *float64
	MinLength            *int
	MaxLength            *int
	MinItems             *int
	MaxItems             *int
	AdditionalProperties *bool
}

// NewSchema builds a Schema from a decoded JSON schema body (the `any`
// produced by decoding a DataSchema's `schema` field). A `true`/`false`
// boolean schema is accepted per JSON Schema (anything, or nothing, valid).
func NewSchema(raw any) (*Schema, error) {
	if raw == nil {
		return &Schema{}, nil
	}
	if b, ok := raw.(bool); ok {
		if b {
			return &Schema{}, nil
		}
		return &Schema{Type: []string{"__never__"}}, nil
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrSchema.New("schema body must be a mapping or boolean, got %T", raw)
	}

	s := &Schema{}

	if t, ok := m["type"]; ok {
		switch tv := t.(type) {
		case string:
			s.Type = []string{tv}
		case []any:
			for _, e := range tv {
				if str, ok := e.(string); ok {
					s.Type = append(s.Type, str)
				}
			}
		}
	}

	if req, ok := m["required"].([]any); ok {
		for _, r := range req {
			if str, ok := r.(string); ok {
				s.Required = append(s.Required, str)
			}
		}
	}

	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*Schema, len(props))
		for k, v := range props {
			child, err := NewSchema(v)
			if err != nil {
				return nil, ErrSchema.New("properties.%s: %w", k, err)
			}
			s.Properties[k] = child
		}
	}

	if items, ok := m["items"]; ok {
		child, err := NewSchema(items)
		if err != nil {
			return nil, ErrSchema.New("items: %w", err)
		}
		s.Items = child
	}

	if enum, ok := m["enum"].([]any); ok {
		s.Enum = enum
	}

	if c, ok := m["const"]; ok {
		s.Const = &c
	}

	if p, ok := m["pattern"].(string); ok {
		s.Pattern = &p
	}

	if v, ok := asFloat64(m["minimum"]); ok {
		s.Minimum = &v
	}
	if v, ok := asFloat64(m["maximum"]); ok {
		s.Maximum = &v
	}
	if v, ok := asInt(m["minLength"]); ok {
		s.MinLength = &v
	}
	if v, ok := asInt(m["maxLength"]); ok {
		s.MaxLength = &v
	}
	if v, ok := asInt(m["minItems"]); ok {
		s.MinItems = &v
	}
	if v, ok := asInt(m["maxItems"]); ok {
		s.MaxItems = &v
	}
	if v, ok := m["additionalProperties"].(bool); ok {
		s.AdditionalProperties = &v
	}

	return s, nil
}

func asInt(v any) (int, bool) {
	f, ok := asFloat64(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// never is the sentinel produced for a `false` boolean schema.
func (s *Schema) never() bool {
	return len(s.Type) == 1 && s.Type[0] == "__never__"
}
