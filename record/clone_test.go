package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"string", "hi", "hi"},
		{"int", 42, int64(42)},
		{"int8", int8(-3), int64(-3)},
		{"int32", int32(7), int64(7)},
		{"int64", int64(7), int64(7)},
		{"uint16", uint16(9), int64(9)},
		{"uint64", uint64(12), int64(12)},
		{"float32", float32(1.5), float64(1.5)},
		{"float64", 2.25, 2.25},
		{"number_int", json.Number("101"), int64(101)},
		{"number_float", json.Number("1.25"), 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clone(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCloneMapIndependence(t *testing.T) {
	src := map[string]any{
		"message": "hi",
		"tags":    []any{"a", "b"},
		"meta":    map[string]any{"likes": 3},
	}

	got, err := CloneMap(src)
	require.NoError(t, err)

	// Mutating the copy at every level must leave the source untouched.
	got["message"] = "changed"
	got["tags"].([]any)[0] = "z"
	got["meta"].(map[string]any)["likes"] = int64(99)

	assert.Equal(t, "hi", src["message"])
	assert.Equal(t, "a", src["tags"].([]any)[0])
	assert.Equal(t, 3, src["meta"].(map[string]any)["likes"])
}

func TestCloneNormalizesNestedNumbers(t *testing.T) {
	got, err := CloneMap(map[string]any{
		"counts": []any{1, int32(2), uint8(3)},
		"ratio":  float32(0.5),
	})
	require.NoError(t, err)

	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, got["counts"])
	assert.Equal(t, float64(0.5), got["ratio"])
}

func TestCloneSharedSubtree(t *testing.T) {
	shared := map[string]any{"kind": "shared"}
	src := map[string]any{"left": shared, "right": shared}

	got, err := CloneMap(src)
	require.NoError(t, err)

	// Sharing without a loop is fine; the copies are independent.
	got["left"].(map[string]any)["kind"] = "left"
	assert.Equal(t, "shared", got["right"].(map[string]any)["kind"])
}

func TestCloneMapCycle(t *testing.T) {
	m := map[string]any{"name": "loop"}
	m["self"] = m

	_, err := CloneMap(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCloneSliceCycle(t *testing.T) {
	s := []any{1, 2, nil}
	s[2] = s

	_, err := Clone(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCloneIndirectCycle(t *testing.T) {
	a := map[string]any{}
	b := map[string]any{"up": a}
	a["down"] = b

	_, err := Clone(a)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestCloneSlicePrefixIsNotACycle(t *testing.T) {
	// A slice may contain a shorter slice over the same backing array.
	// That shares elements but does not loop.
	backing := []any{"x", "y", nil}
	backing[2] = backing[:2]

	got, err := Clone(backing)
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y", []any{"x", "y"}}, got)
}

func TestCloneRejectsNonData(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"func", map[string]any{"fn": func() {}}},
		{"chan", map[string]any{"ch": make(chan int)}},
		{"struct", map[string]any{"t": struct{ X int }{1}}},
		{"pointer", map[string]any{"p": new(int)}},
		{"typed_slice", map[string]any{"xs": []int{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Clone(tt.in)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestCloneUintOverflow(t *testing.T) {
	_, err := Clone(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Clone(map[string]any{"n": uint(math.MaxUint64)})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCloneMalformedNumber(t *testing.T) {
	_, err := Clone(json.Number("not-a-number"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestCloneMapNil(t *testing.T) {
	_, err := CloneMap(nil)
	require.Error(t, err)
}

func TestCloneErrorNamesPath(t *testing.T) {
	src := map[string]any{"outer": []any{map[string]any{"bad": make(chan int)}}}

	_, err := Clone(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "outer"`)
	assert.Contains(t, err.Error(), "index 0")
	assert.Contains(t, err.Error(), `key "bad"`)
}
