package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckhand/deckhand/internal/document"
)

func docAt(name string, data map[string]any) document.Document {
	return document.Document{
		SchemaName: "armada/Chart/v1",
		Metadata:   document.Metadata{Schema: document.MetaDocumentV1, Name: name},
		Data:       data,
	}
}

func TestDiffClassifiesEveryKind(t *testing.T) {
	a := document.Revision{ID: 1, Documents: []document.Document{
		docAt("a", map[string]any{"v": 1}),
		docAt("b", map[string]any{"v": 1}),
		docAt("c", map[string]any{"v": 1}),
	}}
	b := document.Revision{ID: 2, Documents: []document.Document{
		docAt("a", map[string]any{"v": 1}),
		docAt("c", map[string]any{"v": 2}),
		docAt("d", map[string]any{"v": 1}),
	}}

	diff := Diff(a, b)
	assert.Equal(t, DiffUnmodified, diff[document.ID{Schema: "armada/Chart/v1", Name: "a"}])
	assert.Equal(t, DiffDeleted, diff[document.ID{Schema: "armada/Chart/v1", Name: "b"}])
	assert.Equal(t, DiffModified, diff[document.ID{Schema: "armada/Chart/v1", Name: "c"}])
	assert.Equal(t, DiffCreated, diff[document.ID{Schema: "armada/Chart/v1", Name: "d"}])
}

func TestDiffFromEmptyRevisionIsAllCreated(t *testing.T) {
	empty := document.Revision{ID: document.Revision0}
	a := document.Revision{ID: 1, Documents: []document.Document{docAt("a", nil)}}

	diff := Diff(empty, a)
	assert.Equal(t, DiffCreated, diff[document.ID{Schema: "armada/Chart/v1", Name: "a"}])
}

func TestDiffSameRevisionIsAllUnmodified(t *testing.T) {
	x := document.Revision{ID: 1, Documents: []document.Document{docAt("a", map[string]any{"v": 1})}}
	diff := Diff(x, x)
	assert.Equal(t, DiffUnmodified, diff[document.ID{Schema: "armada/Chart/v1", Name: "a"}])
}

func TestDiffBothEmptyIsEmpty(t *testing.T) {
	empty := document.Revision{ID: document.Revision0}
	diff := Diff(empty, empty)
	assert.Empty(t, diff)
}
