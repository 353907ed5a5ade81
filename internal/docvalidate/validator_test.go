package docvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
	"github.com/deckhand/deckhand/internal/report"
	"github.com/deckhand/deckhand/internal/schemaregistry"
)

func registeredRegistry(t *testing.T) *schemaregistry.Registry {
	t.Helper()
	reg := schemaregistry.New()
	require.NoError(t, reg.Load([]document.DataSchema{{
		Document: document.Document{
			SchemaName: "deckhand/DataSchema/v1",
			Metadata:   document.Metadata{Schema: document.MetaControlV1, Name: "armada/Chart/v1"},
		},
		Target: "armada/Chart/v1",
		SchemaJSON: map[string]any{
			"type":     "object",
			"required": []any{"debug"},
			"properties": map[string]any{
				"debug": map[string]any{"type": "boolean"},
			},
		},
	}}))
	return reg
}

func TestRunMarksBothInternalValidationsSuccess(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata:   document.Metadata{Schema: document.MetaDocumentV1, Name: "ucp"},
		Data:       map[string]any{"debug": true},
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, nil, []document.Document{doc}, builder, make(map[int]bool))

	assert.Empty(t, errs)
	assert.False(t, builder.HasFatalRevisionError())

	rep := builder.Build(nil, nil)
	assert.Equal(t, report.StatusSuccess, rep.Internal[report.SchemaValidationName])
	assert.Equal(t, report.StatusSuccess, rep.Internal[report.PolicyValidationName])
}

// Registered-schema validation failures are fatal-document, not
// fatal-revision: the offending document is excluded from output but
// the rest of the revision still renders (spec §4.2, §7).
func TestRunRecordsSchemaValidationFailureAsFatalDocument(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata:   document.Metadata{Schema: document.MetaDocumentV1, Name: "ucp"},
		Data:       map[string]any{},
	}

	builder := report.NewBuilder(1)
	failed := make(map[int]bool)
	errs := Run(reg, nil, []document.Document{doc}, builder, failed)

	require.Len(t, errs, 1)
	rerr, ok := rendererr.As(errs[0])
	require.True(t, ok)
	assert.Equal(t, rendererr.KindSchemaValidationFailed, rerr.Kind)
	assert.Equal(t, rendererr.SeverityFatalDocument, rerr.Severity())
	assert.False(t, builder.HasFatalRevisionError())
	assert.True(t, failed[0])
}

func TestRunRecordsControlEnvelopeFailureAsFatalRevision(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "deckhand/DataSchema/v1",
		Metadata:   document.Metadata{Schema: document.MetaControlV1, Name: "bad"},
		Data:       "not an object",
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, nil, []document.Document{doc}, builder, make(map[int]bool))

	require.Len(t, errs, 1)
	rerr, ok := rendererr.As(errs[0])
	require.True(t, ok)
	assert.Equal(t, rendererr.KindInvalidDocumentFormat, rerr.Kind)
	assert.True(t, builder.HasFatalRevisionError())
}

func TestRunRejectsLayerNotInPolicy(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata: document.Metadata{
			Schema: document.MetaDocumentV1,
			Name:   "ucp",
			LayeringDefinition: &document.LayeringDefinition{
				Layer: "site",
			},
		},
		Data: map[string]any{"debug": true},
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, []string{"global"}, []document.Document{doc}, builder, make(map[int]bool))

	require.Len(t, errs, 1)
	assert.True(t, builder.HasFatalRevisionError())
}

func TestRunRejectsLayerWithNoLayeringPolicyAtAll(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata: document.Metadata{
			Schema: document.MetaDocumentV1,
			Name:   "ucp",
			LayeringDefinition: &document.LayeringDefinition{
				Layer: "site",
			},
		},
		Data: map[string]any{"debug": true},
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, nil, []document.Document{doc}, builder, make(map[int]bool))

	require.Len(t, errs, 1)
	assert.True(t, builder.HasFatalRevisionError())
}

func TestRunSkipsUnregisteredAbstractDocument(t *testing.T) {
	reg := schemaregistry.New()
	doc := document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata: document.Metadata{
			Schema:             document.MetaDocumentV1,
			Name:               "ucp",
			LayeringDefinition: &document.LayeringDefinition{Abstract: true},
		},
		Data: map[string]any{},
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, nil, []document.Document{doc}, builder, make(map[int]bool))

	assert.Empty(t, errs)
}

func TestRunRejectsMalformedControlDocument(t *testing.T) {
	reg := registeredRegistry(t)
	doc := document.Document{
		SchemaName: "deckhand/DataSchema/v1",
		Metadata:   document.Metadata{Schema: document.MetaControlV1, Name: "bad"},
		Data:       "not an object",
	}

	builder := report.NewBuilder(1)
	errs := Run(reg, nil, []document.Document{doc}, builder, make(map[int]bool))

	require.Len(t, errs, 1)
}
