package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []Segment
	}{
		{".", nil},
		{".a", []Segment{{Key: "a", Original: "a"}}},
		{".a.b", []Segment{{Key: "a", Original: "a"}, {Key: "b", Original: "b"}}},
		{".list[0]", []Segment{{Key: "list", Original: "list[0]"}, {Index: 0, IsIndex: true, Original: "list[0]"}}},
	}
	for _, tt := range tests {
		got, err := ParsePath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParsePathRejectsMalformed(t *testing.T) {
	for _, path := range []string{"", "a.b", ".a..b", ".a[x]"} {
		_, err := ParsePath(path)
		assert.Error(t, err, path)
	}
}

func TestGetSetDelete(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{"b": []any{1, 2, 3}},
	}

	got, err := Get(root, ".a.b[1]")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	updated, err := Set(root, ".a.b[1]", 99)
	require.NoError(t, err)
	got, err = Get(updated, ".a.b[1]")
	require.NoError(t, err)
	assert.Equal(t, 99, got)

	// original is untouched (Set never mutates in place).
	got, err = Get(root, ".a.b[1]")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	deleted, err := Delete(updated, ".a.b")
	require.NoError(t, err)
	_, err = Get(deleted, ".a.b")
	assert.Error(t, err)
}

func TestDeepMergeMappingsOverrideReplacesSequences(t *testing.T) {
	parent := map[string]any{"a": 1, "b": 2, "list": []any{1, 2}}
	child := map[string]any{"b": 3, "c": 4, "list": []any{9}}

	merged := DeepMerge(parent, child)

	assert.Equal(t, map[string]any{
		"a":    1,
		"b":    3,
		"c":    4,
		"list": []any{9},
	}, merged)
}

func TestDeepCopyDoesNotAlias(t *testing.T) {
	original := map[string]any{"nested": map[string]any{"x": 1}}
	copied := DeepCopy(original).(map[string]any)
	copied["nested"].(map[string]any)["x"] = 2

	assert.Equal(t, 1, original["nested"].(map[string]any)["x"])
}

func TestEqual(t *testing.T) {
	a := map[string]any{"x": []any{1, 2}, "y": "z"}
	b := map[string]any{"x": []any{1, 2}, "y": "z"}
	c := map[string]any{"x": []any{1, 3}, "y": "z"}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}
