package layering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand/deckhand/internal/document"
)

func TestResolveEmptyPolicy(t *testing.T) {
	p, err := Resolve(nil)
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.True(t, p.IsTopLayer("global"))
}

func TestResolveRejectsMultiplePolicies(t *testing.T) {
	_, err := Resolve([]document.LayeringPolicy{{}, {}})
	assert.Error(t, err)
}

func TestResolveOrdersLayers(t *testing.T) {
	p, err := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "region", "site"}}})
	require.NoError(t, err)

	assert.True(t, p.IsTopLayer("global"))
	assert.False(t, p.IsTopLayer("site"))

	parent, ok := p.ParentLayerOf("site")
	require.True(t, ok)
	assert.Equal(t, "region", parent)

	_, ok = p.ParentLayerOf("global")
	assert.False(t, ok)
}

func doc(schema, name, layer string, labels map[string]string, selector map[string]string, data any) document.Document {
	return document.Document{
		SchemaName: schema,
		Metadata: document.Metadata{
			Schema: document.MetaDocumentV1,
			Name:   name,
			Labels: labels,
			LayeringDefinition: &document.LayeringDefinition{
				Layer:          layer,
				ParentSelector: selector,
			},
		},
		Data: data,
	}
}

func indexOf(docs []document.Document, id document.ID) int {
	for i, d := range docs {
		if d.ID() == id {
			return i
		}
	}
	return -1
}

func TestSelectParentsMatchesUniqueCandidate(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "site"}}})

	global := doc("armada/Chart/v1", "ucp-global", "global", map[string]string{"component": "ucp"}, nil, nil)
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"}, nil)
	docs := []document.Document{global, site}

	parents, errs := SelectParents(p, docs, map[int]bool{})
	require.Empty(t, errs)
	assert.Equal(t, indexOf(docs, global.ID()), parents[indexOf(docs, site.ID())])
}

func TestSelectParentsFatalOnMissingParent(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "site"}}})
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"}, nil)

	_, errs := SelectParents(p, []document.Document{site}, map[int]bool{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "MissingParent")
}

func TestSelectParentsFatalOnIndeterminateParent(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "site"}}})

	globalA := doc("armada/Chart/v1", "ucp-global-a", "global", map[string]string{"component": "ucp"}, nil, nil)
	globalB := doc("armada/Chart/v1", "ucp-global-b", "global", map[string]string{"component": "ucp"}, nil, nil)
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"}, nil)

	_, errs := SelectParents(p, []document.Document{globalA, globalB, site}, map[int]bool{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "IndeterminateDocumentParent")
}

func TestLayerMergeAction(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "site"}}})

	global := doc("armada/Chart/v1", "ucp-global", "global", map[string]string{"component": "ucp"}, nil,
		map[string]any{"values": map[string]any{"replicas": float64(1), "image": "ucp:v1"}})
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"},
		map[string]any{"values": map[string]any{"replicas": float64(3)}})
	site.Metadata.LayeringDefinition.Actions = []document.Action{{Method: document.ActionMerge, Path: ".values"}}

	docs := []document.Document{global, site}
	parents, perrs := SelectParents(p, docs, map[int]bool{})
	require.Empty(t, perrs)

	failed := map[int]bool{}
	rendered, errs := Layer(p, docs, parents, nil, failed)
	require.Empty(t, errs)

	values := rendered[indexOf(docs, site.ID())].(map[string]any)["values"].(map[string]any)
	assert.Equal(t, float64(3), values["replicas"])
	assert.Equal(t, "ucp:v1", values["image"])
}

func TestLayerReplaceActionFatalOnMissingKey(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "site"}}})

	global := doc("armada/Chart/v1", "ucp-global", "global", map[string]string{"component": "ucp"}, nil,
		map[string]any{"values": map[string]any{}})
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"},
		map[string]any{"values": map[string]any{"image": "ucp:v2"}})
	site.Metadata.LayeringDefinition.Actions = []document.Action{{Method: document.ActionReplace, Path: ".values.missing"}}

	docs := []document.Document{global, site}
	parents, _ := SelectParents(p, docs, map[int]bool{})

	failed := map[int]bool{}
	_, errs := Layer(p, docs, parents, nil, failed)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "MissingDocumentKey")
	assert.True(t, failed[indexOf(docs, site.ID())])
}

func TestLayerCascadesFailureToChildren(t *testing.T) {
	p, _ := Resolve([]document.LayeringPolicy{{LayerOrder: []string{"global", "region", "site"}}})

	global := doc("armada/Chart/v1", "ucp-global", "global", map[string]string{"component": "ucp"}, nil, map[string]any{})
	region := doc("armada/Chart/v1", "ucp-region", "region", map[string]string{"component": "ucp"},
		map[string]string{"component": "ucp"}, map[string]any{})
	region.Metadata.LayeringDefinition.Actions = []document.Action{{Method: document.ActionDelete, Path: ".nonexistent"}}
	site := doc("armada/Chart/v1", "ucp-site", "site", nil, map[string]string{"component": "ucp"}, map[string]any{})

	docs := []document.Document{global, region, site}
	parents, _ := SelectParents(p, docs, map[int]bool{})

	failed := map[int]bool{}
	_, errs := Layer(p, docs, parents, nil, failed)
	require.Len(t, errs, 1)
	assert.True(t, failed[indexOf(docs, region.ID())])
	assert.True(t, failed[indexOf(docs, site.ID())])
}
