package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhand/deckhand/internal/document"
)

func TestStorePutAndDocuments(t *testing.T) {
	s := New()
	docs := []document.Document{
		{SchemaName: "armada/Chart/v1", Metadata: document.Metadata{Name: "ucp"}},
	}
	s.Put(1, docs)

	got, err := s.Documents(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestStoreDocumentsRevision0IsEmpty(t *testing.T) {
	s := New()
	got, err := s.Documents(context.Background(), document.Revision0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreDocumentsUnknownRevision(t *testing.T) {
	s := New()
	_, err := s.Documents(context.Background(), 7)
	assert.Error(t, err)
}

func TestStoreLatest(t *testing.T) {
	s := New()
	assert.Equal(t, document.Revision0, s.Latest())
	s.Put(3, nil)
	s.Put(1, nil)
	assert.Equal(t, 3, s.Latest())
}

func TestStoreDocumentsRespectsContextCancellation(t *testing.T) {
	s := New()
	s.Put(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Documents(ctx, 1)
	assert.Error(t, err)
}
