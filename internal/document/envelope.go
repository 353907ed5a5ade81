package document

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/zeebo/errs"
)

// ErrEnvelope classifies wire-format violations of the document envelope
// contract (spec §6): unknown top-level keys, malformed YAML, etc.
var ErrEnvelope = errs.Class("document envelope")

// rawEnvelope captures the envelope before rejecting unknown top-level
// keys, since goccy/go-yaml happily ignores fields a plain struct decode
// would miss.
type rawEnvelope struct {
	Schema   *string        `yaml:"schema"`
	Metadata map[string]any `yaml:"metadata"`
	Data     any            `yaml:"data"`
}

var envelopeKeys = map[string]struct{}{
	"schema":   {},
	"metadata": {},
	"data":     {},
}

// DecodeStream parses a multi-document `application/x-yaml` stream
// (documents separated by "---") into Documents, in stream order.
func DecodeStream(streamName string, data []byte) ([]Document, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))

	var docs []Document
	for i := 0; ; i++ {
		var node map[string]any
		err := dec.Decode(&node)
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, ErrEnvelope.New("%s: document %d: %w", streamName, i, err)
		}
		if node == nil {
			continue // blank "---" separated section
		}

		for key := range node {
			if _, ok := envelopeKeys[key]; !ok {
				return nil, ErrEnvelope.New("%s: document %d: unknown top-level key %q", streamName, i, key)
			}
		}

		doc, err := decodeOne(node)
		if err != nil {
			return nil, ErrEnvelope.New("%s: document %d: %w", streamName, i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeOne(node map[string]any) (Document, error) {
	reencoded, err := yaml.Marshal(node)
	if err != nil {
		return Document{}, fmt.Errorf("re-encode: %w", err)
	}
	var raw rawEnvelope
	if err := yaml.Unmarshal(reencoded, &raw); err != nil {
		return Document{}, fmt.Errorf("decode envelope: %w", err)
	}
	if raw.Schema == nil {
		return Document{}, fmt.Errorf("missing top-level 'schema' key")
	}
	if raw.Metadata == nil {
		return Document{}, fmt.Errorf("missing top-level 'metadata' key")
	}

	metaBytes, err := yaml.Marshal(raw.Metadata)
	if err != nil {
		return Document{}, fmt.Errorf("re-encode metadata: %w", err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(metaBytes, &meta); err != nil {
		return Document{}, fmt.Errorf("decode metadata: %w", err)
	}

	return Document{
		SchemaName: *raw.Schema,
		Metadata:   meta,
		Data:       raw.Data,
	}, nil
}

// EncodeStream serialises documents back into a multi-document YAML
// stream, in the given order. store.Diff also compares documents by
// their encoded form.
func EncodeStream(docs []Document) ([]byte, error) {
	var out strings.Builder
	for i, doc := range docs {
		if i > 0 {
			out.WriteString("---\n")
		}
		envelope := map[string]any{
			"schema":   doc.SchemaName,
			"metadata": doc.Metadata,
			"data":     doc.Data,
		}
		b, err := yaml.Marshal(envelope)
		if err != nil {
			return nil, fmt.Errorf("encode document %s: %w", doc.ID(), err)
		}
		out.Write(b)
	}
	return []byte(out.String()), nil
}
