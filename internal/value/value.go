package value

import "github.com/zeebo/errs"

// ErrNotFound is returned by Get/Delete when an intermediate segment does
// not resolve to a mapping or sequence element that exists.
var ErrNotFound = errs.Class("value not found")

// Get resolves path against root and returns the value found there.
// An empty path ("." with no segments) returns root itself.
func Get(root any, path string) (any, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return get(root, segs)
}

func get(cur any, segs []Segment) (any, error) {
	if len(segs) == 0 {
		return cur, nil
	}
	seg := segs[0]
	if seg.IsIndex {
		seq, ok := cur.([]any)
		if !ok {
			return nil, ErrNotFound.New("segment %q: not a sequence", seg.Original)
		}
		if seg.Index < 0 || seg.Index >= len(seq) {
			return nil, ErrNotFound.New("index %d out of range", seg.Index)
		}
		return get(seq[seg.Index], segs[1:])
	}
	m, ok := cur.(map[string]any)
	if !ok {
		return nil, ErrNotFound.New("segment %q: not a mapping", seg.Original)
	}
	next, ok := m[seg.Key]
	if !ok {
		return nil, ErrNotFound.New("key %q not found", seg.Key)
	}
	return get(next, segs[1:])
}

// Set writes v at path within root, returning the (possibly new) root.
// Intermediate mappings are created as needed; intermediate sequence
// indices must already exist (sequences are never auto-extended).
func Set(root any, path string, v any) (any, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return v, nil
	}
	return set(root, segs, v)
}

func set(cur any, segs []Segment, v any) (any, error) {
	seg := segs[0]
	rest := segs[1:]

	if seg.IsIndex {
		seq, ok := cur.([]any)
		if !ok {
			if cur == nil {
				seq = nil
			} else {
				return nil, ErrNotFound.New("segment %q: not a sequence", seg.Original)
			}
		}
		if seg.Index < 0 || seg.Index >= len(seq) {
			return nil, ErrNotFound.New("index %d out of range", seg.Index)
		}
		out := make([]any, len(seq))
		copy(out, seq)
		if len(rest) == 0 {
			out[seg.Index] = v
		} else {
			child, err := set(out[seg.Index], rest, v)
			if err != nil {
				return nil, err
			}
			out[seg.Index] = child
		}
		return out, nil
	}

	m, ok := cur.(map[string]any)
	if !ok {
		if cur == nil {
			m = nil
		} else {
			return nil, ErrNotFound.New("segment %q: not a mapping", seg.Original)
		}
	}
	out := make(map[string]any, len(m)+1)
	for k, val := range m {
		out[k] = val
	}
	if len(rest) == 0 {
		out[seg.Key] = v
	} else {
		child, err := set(out[seg.Key], rest, v)
		if err != nil {
			return nil, err
		}
		out[seg.Key] = child
	}
	return out, nil
}

// Delete removes the key/index addressed by path from root, returning the
// new root. It is an error (ErrNotFound) if path does not resolve to an
// existing key or index.
func Delete(root any, path string) (any, error) {
	segs, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, nil
	}
	return del(root, segs)
}

func del(cur any, segs []Segment) (any, error) {
	seg := segs[0]
	rest := segs[1:]

	if seg.IsIndex {
		seq, ok := cur.([]any)
		if !ok {
			return nil, ErrNotFound.New("segment %q: not a sequence", seg.Original)
		}
		if seg.Index < 0 || seg.Index >= len(seq) {
			return nil, ErrNotFound.New("index %d out of range", seg.Index)
		}
		if len(rest) == 0 {
			out := make([]any, 0, len(seq)-1)
			out = append(out, seq[:seg.Index]...)
			out = append(out, seq[seg.Index+1:]...)
			return out, nil
		}
		out := make([]any, len(seq))
		copy(out, seq)
		child, err := del(out[seg.Index], rest)
		if err != nil {
			return nil, err
		}
		out[seg.Index] = child
		return out, nil
	}

	m, ok := cur.(map[string]any)
	if !ok {
		return nil, ErrNotFound.New("segment %q: not a mapping", seg.Original)
	}
	if _, exists := m[seg.Key]; !exists {
		return nil, ErrNotFound.New("key %q not found", seg.Key)
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	if len(rest) == 0 {
		delete(out, seg.Key)
		return out, nil
	}
	child, err := del(out[seg.Key], rest)
	if err != nil {
		return nil, err
	}
	out[seg.Key] = child
	return out, nil
}

// DeepCopy returns a recursive copy of v so callers may mutate the result
// without aliasing shared document data.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = DeepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = DeepCopy(val)
		}
		return out
	default:
		return t
	}
}

// DeepMerge merges src into dst per the layering engine's merge action
// semantics: mappings merge key by key with src overriding dst, sequences
// are fully replaced by src (no element-wise merge), and any other type
// pair is replaced outright by src.
func DeepMerge(dst, src any) any {
	dstMap, dstIsMap := dst.(map[string]any)
	srcMap, srcIsMap := src.(map[string]any)
	if dstIsMap && srcIsMap {
		out := make(map[string]any, len(dstMap)+len(srcMap))
		for k, v := range dstMap {
			out[k] = DeepCopy(v)
		}
		for k, v := range srcMap {
			if existing, ok := out[k]; ok {
				out[k] = DeepMerge(existing, v)
			} else {
				out[k] = DeepCopy(v)
			}
		}
		return out
	}
	return DeepCopy(src)
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !Equal(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !Equal(v, bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
