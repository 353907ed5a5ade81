package document

import "sort"

// Revision0 is the distinguished empty revision (spec §3).
const Revision0 = 0

// Revision is an immutable, numbered snapshot of documents across all
// buckets.
type Revision struct {
	ID        int
	Documents []Document
}

// Sorted returns a copy of the revision's documents ordered by (schema,
// name), the total order the orchestrator uses to make iteration
// deterministic (spec §4.10).
func (r Revision) Sorted() []Document {
	out := make([]Document, len(r.Documents))
	copy(out, r.Documents)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().Less(out[j].ID())
	})
	return out
}

// ByID indexes the revision's documents by (schema, name).
func (r Revision) ByID() map[ID]Document {
	out := make(map[ID]Document, len(r.Documents))
	for _, d := range r.Documents {
		out[d.ID()] = d
	}
	return out
}

// Buckets groups the revision's documents by their owning bucket.
func (r Revision) Buckets() map[string][]Document {
	out := make(map[string][]Document)
	for _, d := range r.Documents {
		out[d.Bucket] = append(out[d.Bucket], d)
	}
	return out
}
