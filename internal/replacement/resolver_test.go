package replacement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand/deckhand/internal/document"
)

func replacementDoc(schema, name, layer string, isReplacement bool) document.Document {
	return document.Document{
		SchemaName: schema,
		Metadata: document.Metadata{
			Schema:      document.MetaDocumentV1,
			Name:        name,
			Replacement: isReplacement,
			LayeringDefinition: &document.LayeringDefinition{
				Layer: layer,
			},
		},
	}
}

func TestResolveRedirectsReplacedParent(t *testing.T) {
	parent := replacementDoc("deckhand/Certificate/v1", "example-cert", "global", false)
	repl := replacementDoc("deckhand/Certificate/v1", "example-cert", "site", true)
	docs := []document.Document{parent, repl}

	res, err := Resolve(docs, map[int]int{1: 0})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Effective[parent.ID()])
	assert.True(t, res.Suppressed[0])
	assert.False(t, res.Suppressed[1])
}

func TestResolveFailsWithoutParent(t *testing.T) {
	repl := replacementDoc("deckhand/Certificate/v1", "example-cert", "site", true)
	_, err := Resolve([]document.Document{repl}, map[int]int{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidReplacement")
}

func TestResolveFailsOnChainedReplacement(t *testing.T) {
	parent := replacementDoc("deckhand/Certificate/v1", "example-cert", "global", false)
	replA := replacementDoc("deckhand/Certificate/v1", "example-cert", "region", true)
	replB := replacementDoc("deckhand/Certificate/v1", "example-cert", "site", true)
	docs := []document.Document{parent, replA, replB}

	_, err := Resolve(docs, map[int]int{1: 0, 2: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SingletonReplacement")
}

func TestResolveFailsOnIdentityMismatch(t *testing.T) {
	parent := replacementDoc("deckhand/Certificate/v1", "other-cert", "global", false)
	repl := replacementDoc("deckhand/Certificate/v1", "example-cert", "site", true)
	docs := []document.Document{parent, repl}

	_, err := Resolve(docs, map[int]int{1: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidReplacement")
}
