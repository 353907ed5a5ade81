package render

import (
	"sort"

	"github.com/goccy/go-json"
)

// CanonicalJSON marshals a render Result's documents with sorted map keys
// and stable document ordering, so two renders of the same revision
// produce byte-identical output (spec §8 invariant 1). Documents is
// already sorted by ID; go-json's encoder sorts map[string]any keys by
// default, closing the remaining source of nondeterminism.
func CanonicalJSON(docs []RenderedDocument) ([]byte, error) {
	sorted := make([]RenderedDocument, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID.Less(sorted[j].ID)
	})
	out := make([]map[string]any, 0, len(sorted))
	for _, d := range sorted {
		out = append(out, map[string]any{
			"schema": d.ID.Schema,
			"name":   d.ID.Name,
			"bucket": d.Bucket,
			"data":   d.Data,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
