package value

import (
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

// ErrPath classifies malformed path addresses.
var ErrPath = errs.Class("value path")

// Segment is one step of a parsed path: either a mapping key or a
// sequence index.
type Segment struct {
	Key      string
	Index    int
	IsIndex  bool
	Original string
}

// ParsePath parses a JSON-path-like address of the form accepted by
// layering actions and substitution paths: a leading "." denotes the root
// of data, ".a.b" addresses nested mapping keys, and ".a[0]" addresses a
// sequence element.
func ParsePath(path string) ([]Segment, error) {
	if path == "" || path[0] != '.' {
		return nil, ErrPath.New("path %q must start with '.'", path)
	}
	if path == "." {
		return nil, nil
	}

	var segments []Segment
	for _, raw := range strings.Split(path[1:], ".") {
		if raw == "" {
			return nil, ErrPath.New("path %q has an empty segment", path)
		}

		key := raw
		var indices []string
		for {
			open := strings.IndexByte(key, '[')
			if open < 0 {
				break
			}
			close := strings.IndexByte(key, ']')
			if close < open {
				return nil, ErrPath.New("path %q has an unterminated index", path)
			}
			indices = append(indices, key[open+1:close])
			key = key[:open] + key[close+1:]
		}

		if key != "" {
			segments = append(segments, Segment{Key: key, Original: raw})
		}
		for _, idxStr := range indices {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, ErrPath.New("path %q has a non-numeric index %q", path, idxStr)
			}
			segments = append(segments, Segment{Index: idx, IsIndex: true, Original: raw})
		}
	}
	return segments, nil
}

// MustParsePath parses path and panics on error. Reserved for constants
// known at compile time (tests, built-in meta-schema wiring).
func MustParsePath(path string) []Segment {
	segs, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return segs
}
