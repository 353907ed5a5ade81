package document

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/zeebo/errs"
)

// ErrControl classifies malformed control documents.
var ErrControl = errs.Class("control document")

// SchemaTriple is the parsed `namespace/Kind/version` tag (spec §3).
type SchemaTriple struct {
	Namespace string
	Kind      string
	Version   string
}

func (t SchemaTriple) String() string {
	return fmt.Sprintf("%s/%s/%s", t.Namespace, t.Kind, t.Version)
}

// ParseSchemaTriple splits a "namespace/Kind/version" schema tag.
func ParseSchemaTriple(schema string) (SchemaTriple, error) {
	parts := strings.Split(schema, "/")
	if len(parts) != 3 {
		return SchemaTriple{}, fmt.Errorf("schema %q is not a namespace/Kind/version triple", schema)
	}
	return SchemaTriple{Namespace: parts[0], Kind: parts[1], Version: parts[2]}, nil
}

// LayeringPolicy is the control document naming the layer order.
type LayeringPolicy struct {
	Document   Document
	LayerOrder []string
}

// DataSchema is a control document registering a JSON schema for a
// target schema triple.
type DataSchema struct {
	Document   Document
	Target     string // the schema triple this registers a schema for
	SchemaJSON any    // the JSON schema body, as decoded data
}

// ValidationPolicy names the validations expected to pass for a revision
// to be considered healthy.
type ValidationPolicy struct {
	Document    Document
	Validations []string
}

// Control is the tagged variant over the three control document kinds
// (design notes §9: "use a tagged variant for control documents").
type Control struct {
	LayeringPolicy   *LayeringPolicy
	DataSchema       *DataSchema
	ValidationPolicy *ValidationPolicy
}

// ParseControl classifies and decodes a control document by its schema
// Kind segment. Unrecognised control kinds are returned as an ErrControl
// error, the same as a malformed body; the caller decides how severe that
// is.
func ParseControl(doc Document) (Control, error) {
	triple, err := ParseSchemaTriple(doc.SchemaName)
	if err != nil {
		return Control{}, ErrControl.Wrap(err)
	}

	switch triple.Kind {
	case KindLayeringPolicy:
		var body struct {
			LayerOrder []string `yaml:"layerOrder"`
		}
		if err := remarshal(doc.Data, &body); err != nil {
			return Control{}, ErrControl.New("%s: %w", doc.ID(), err)
		}
		return Control{LayeringPolicy: &LayeringPolicy{Document: doc, LayerOrder: body.LayerOrder}}, nil

	case KindDataSchema:
		var body struct {
			Name   string `yaml:"name"`
			Schema any    `yaml:"schema"`
		}
		if err := remarshal(doc.Data, &body); err != nil {
			return Control{}, ErrControl.New("%s: %w", doc.ID(), err)
		}
		target := body.Name
		if target == "" {
			target = doc.Metadata.Name
		}
		return Control{DataSchema: &DataSchema{Document: doc, Target: target, SchemaJSON: body.Schema}}, nil

	case KindValidationPolicy:
		var body struct {
			Validations []string `yaml:"validations"`
		}
		if err := remarshal(doc.Data, &body); err != nil {
			return Control{}, ErrControl.New("%s: %w", doc.ID(), err)
		}
		return Control{ValidationPolicy: &ValidationPolicy{Document: doc, Validations: body.Validations}}, nil

	default:
		return Control{}, ErrControl.New("%s: unrecognised control kind %q", doc.ID(), triple.Kind)
	}
}

func remarshal(in any, out any) error {
	b, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}
