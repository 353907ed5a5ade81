package secretstore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	fetches atomic.Int32
	fail    error
}

func (s *countingStore) Fetch(ctx context.Context, reference string) ([]byte, error) {
	s.fetches.Add(1)
	if s.fail != nil {
		return nil, s.fail
	}
	return []byte("cleartext:" + reference), nil
}

func TestCacheFetchesOnce(t *testing.T) {
	store := &countingStore{}
	cache := NewCache(store)

	for i := 0; i < 5; i++ {
		v, err := cache.Dereference(context.Background(), "barbican://example-password")
		require.NoError(t, err)
		assert.Equal(t, "cleartext:barbican://example-password", string(v))
	}
	assert.Equal(t, int32(1), store.fetches.Load())
}

func TestCacheClearAllowsRefetch(t *testing.T) {
	store := &countingStore{}
	cache := NewCache(store)

	_, err := cache.Dereference(context.Background(), "tok")
	require.NoError(t, err)
	cache.Clear()
	_, err = cache.Dereference(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, int32(2), store.fetches.Load())
}

func TestCachePropagatesNotFound(t *testing.T) {
	store := &countingStore{fail: &NotFoundError{Reference: "missing"}}
	cache := NewCache(store)

	_, err := cache.Dereference(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
