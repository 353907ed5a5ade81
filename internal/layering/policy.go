// Package layering implements the layering policy resolver, parent
// selector, and layering engine (spec §4.3-4.5): the hierarchical merge
// that turns a forest of documents into per-document rendered data.
package layering

import (
	"github.com/deckhand/deckhand/internal/document"
	"github.com/deckhand/deckhand/internal/rendererr"
)

// Policy is the resolved total ordering of layer names, most abstract
// first (spec §4.3).
type Policy struct {
	Order []string
	index map[string]int
}

// Resolve locates the revision's unique LayeringPolicy. An absent policy
// yields an empty Policy (layering is effectively a no-op: every document
// is a root). More than one policy is a fatal-revision error.
func Resolve(policies []document.LayeringPolicy) (*Policy, error) {
	if len(policies) == 0 {
		return &Policy{}, nil
	}
	if len(policies) > 1 {
		return nil, rendererr.New(rendererr.StageLayering, rendererr.KindMultipleLayeringPolicies, nil, "",
			"revision contains %d LayeringPolicy documents, expected at most one", len(policies))
	}

	p := policies[0]
	idx := make(map[string]int, len(p.LayerOrder))
	for i, layer := range p.LayerOrder {
		idx[layer] = i
	}
	return &Policy{Order: p.LayerOrder, index: idx}, nil
}

// Empty reports whether no LayeringPolicy was present.
func (p *Policy) Empty() bool {
	return len(p.Order) == 0
}

// Index returns a layer's position in the order, most abstract = 0.
func (p *Policy) Index(layer string) (int, bool) {
	i, ok := p.index[layer]
	return i, ok
}

// IsTopLayer reports whether layer is the most abstract layer (or the
// policy is empty, in which case everything is effectively top-layer).
func (p *Policy) IsTopLayer(layer string) bool {
	if p.Empty() {
		return true
	}
	i, ok := p.index[layer]
	return ok && i == 0
}

// ParentLayerOf returns the layer immediately preceding layer in the
// order, or ok=false if layer is the first layer or unknown.
func (p *Policy) ParentLayerOf(layer string) (string, bool) {
	i, ok := p.index[layer]
	if !ok || i == 0 {
		return "", false
	}
	return p.Order[i-1], true
}

// HasLayer reports whether layer is part of the resolved order.
func (p *Policy) HasLayer(layer string) bool {
	if p.Empty() {
		return false
	}
	_, ok := p.index[layer]
	return ok
}
