package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

func policy(name string, validations ...string) document.ValidationPolicy {
	return document.ValidationPolicy{
		Document:    document.Document{Metadata: document.Metadata{Name: name}},
		Validations: validations,
	}
}

func TestBuildReportPolicyRollup(t *testing.T) {
	b := NewBuilder(1)
	b.SetInternal(SchemaValidationName, StatusSuccess)
	b.SetInternal(PolicyValidationName, StatusSuccess)

	rep := b.Build([]document.ValidationPolicy{
		policy("site-deploy-ready", SchemaValidationName, PolicyValidationName),
	}, nil)

	require.Len(t, rep.PolicyResult, 1)
	assert.Equal(t, StatusSuccess, rep.PolicyResult[0].Status)
}

func TestBuildReportFailsOnMissingValidation(t *testing.T) {
	b := NewBuilder(1)
	b.SetInternal(SchemaValidationName, StatusSuccess)

	rep := b.Build([]document.ValidationPolicy{
		policy("site-deploy-ready", SchemaValidationName, "external-smoke-test"),
	}, nil)

	assert.Equal(t, StatusFailure, rep.PolicyResult[0].Status)
	assert.Equal(t, StatusMissing, rep.PolicyResult[0].Entries["external-smoke-test"])
}

func TestBuildReportJoinsExternalEntries(t *testing.T) {
	b := NewBuilder(1)

	rep := b.Build([]document.ValidationPolicy{
		policy("site-deploy-ready", "external-smoke-test"),
	}, []ValidationEntry{{Name: "external-smoke-test", Status: StatusSuccess}})

	assert.Equal(t, StatusSuccess, rep.PolicyResult[0].Status)
}

func TestHasFatalRevisionError(t *testing.T) {
	b := NewBuilder(1)
	b.AddError(rendererr.New(rendererr.StageSubstitution, rendererr.KindSubstitutionCycle, nil, "", "cycle detected"))

	assert.True(t, b.HasFatalRevisionError())
}

func TestFailedDocuments(t *testing.T) {
	id := document.ID{Schema: "armada/Chart/v1", Name: "ucp"}
	b := NewBuilder(1)
	b.AddError(rendererr.New(rendererr.StageLayering, rendererr.KindMissingParent, &id, "", "no parent"))

	failed := b.FailedDocuments()
	assert.True(t, failed[id])
}
