package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_Getters(t *testing.T) {
	v := Values{
		"name":     "Blog",
		"levels":   int64(3),
		"quality":  float64(82),
		"enabled":  true,
		"sites":    []any{"en", 4, "fr"},
		"settings": map[string]any{"limit": 1},
		"list":     []any{map[string]any{"a": 1}},
	}

	assert.Equal(t, "Blog", v.String("name"))
	assert.Equal(t, "", v.String("levels"))
	assert.Equal(t, 3, v.Int("levels"))
	assert.Equal(t, 82, v.Int("quality"))
	assert.Equal(t, 0, v.Int("missing"))
	assert.True(t, v.Bool("enabled"))
	assert.False(t, v.Bool("name"))
	assert.Equal(t, []string{"en", "fr"}, v.Strings("sites"))
	assert.Equal(t, map[string]any{"limit": 1}, v.Map("settings"))
	assert.Len(t, v.Slice("list"), 1)
	assert.True(t, v.Has("name"))
	assert.False(t, v.Has("missing"))
}

func TestAsValues(t *testing.T) {
	v, ok := AsValues(map[string]any{"handle": "en"})
	require.True(t, ok)
	assert.Equal(t, "en", v.String("handle"))

	v, ok = AsValues(map[any]any{"handle": "fr"})
	require.True(t, ok)
	assert.Equal(t, "fr", v.String("handle"))

	_, ok = AsValues([]any{})
	assert.False(t, ok)
}

func TestNormalize_NumericWidths(t *testing.T) {
	fromJSON := map[string]any{"width": float64(300), "ratio": 1.5, "tags": []any{"a"}}
	fromYAML := map[string]any{"width": 300, "ratio": 1.5, "tags": []string{"a"}}
	fromTOML := map[string]any{"width": int64(300), "ratio": 1.5, "tags": []any{"a"}}

	assert.Equal(t, Normalize(fromYAML), Normalize(fromJSON))
	assert.Equal(t, Normalize(fromYAML), Normalize(fromTOML))
}

func TestNormalize_EmptyCollectionsAreNil(t *testing.T) {
	assert.Nil(t, Normalize(map[string]any{}))
	assert.Nil(t, Normalize([]any{}))
	assert.Nil(t, Normalize([]string{}))
	assert.Nil(t, NormalizeMap(map[string]any{}))
	assert.Nil(t, NormalizeMap(nil))
}

func TestNormalize_DropsNilKeys(t *testing.T) {
	assert.Equal(t,
		map[string]any{"rows": 4},
		Normalize(map[string]any{"rows": 4, "extra": map[string]any{}, "none": nil}),
	)
	assert.Nil(t, Normalize(map[string]any{"none": nil}))
}

func TestNormalize_Nested(t *testing.T) {
	in := map[string]any{
		"outer": map[any]any{"inner": uint8(2)},
		"plain": map[string]string{"k": "v"},
	}

	out := Normalize(in)

	assert.Equal(t, map[string]any{
		"outer": map[string]any{"inner": 2},
		"plain": map[string]any{"k": "v"},
	}, out)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
