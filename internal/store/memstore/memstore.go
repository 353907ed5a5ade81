// Package memstore is an in-memory RevisionProvider, a fixture store for
// tests and embedders that want a RevisionProvider without a database.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/deckhand/deckhand/internal/document"
)

// Store holds a fixed set of revisions keyed by ID.
type Store struct {
	mu        sync.RWMutex
	revisions map[int][]document.Document
}

// New builds an empty Store.
func New() *Store {
	return &Store{revisions: make(map[int][]document.Document)}
}

// Put records (or replaces) the document set for a revision.
func (s *Store) Put(revisionID int, docs []document.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revisions[revisionID] = docs
}

// Documents implements store.RevisionProvider.
func (s *Store) Documents(ctx context.Context, revisionID int) ([]document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if revisionID == document.Revision0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.revisions[revisionID]
	if !ok {
		return nil, fmt.Errorf("revision %d not found", revisionID)
	}
	out := make([]document.Document, len(docs))
	copy(out, docs)
	return out, nil
}

// Latest returns the highest revision ID recorded, or Revision0 if none.
func (s *Store) Latest() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.revisions))
	for id := range s.revisions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if len(ids) == 0 {
		return document.Revision0
	}
	return ids[len(ids)-1]
}
