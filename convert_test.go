package nest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestToArray(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []any
	}{
		{"nil", nil, []any{}},
		{"sequence passes through", []any{1, 2}, []any{1, 2}},
		{"mapping values in key order", map[string]any{"b": 2, "a": 1}, []any{1, 2}},
		{"typed slice widened", []int{1, 2, 3}, []any{1, 2, 3}},
		{"typed map widened", map[string]int{"a": 1}, []any{1}},
		{"scalar", "x", []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ToArray(tt.value)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToObject(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  map[string]any
	}{
		{"nil", nil, map[string]any{}},
		{"mapping passes through", map[string]any{"a": 1}, map[string]any{"a": 1}},
		{"sequence keyed by index", []any{"x", "y"}, map[string]any{"0": "x", "1": "y"}},
		{"typed map widened", map[int]string{1: "a"}, map[string]any{"1": "a"}},
		{"scalar", 42, map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ToObject(tt.value)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContainerPredicates(t *testing.T) {
	assert.True(t, IsArray([]any{}))
	assert.False(t, IsArray(map[string]any{}))
	assert.False(t, IsArray("x"))

	assert.True(t, IsObject(map[string]any{}))
	assert.False(t, IsObject([]any{}))
	assert.False(t, IsObject(nil))
}

func TestWrapContainer(t *testing.T) {
	assert.Equal(t, []any{}, wrapContainer(nil))
	assert.Equal(t, []any{"x"}, wrapContainer("x"))

	seq := []any{1}
	assert.Equal(t, seq, wrapContainer(seq))

	m := map[string]any{"a": 1}
	assert.Equal(t, m, wrapContainer(m))
}

func TestIsEmptyValue(t *testing.T) {
	empty := []any{nil, "", 0, int64(0), 0.0, false, []any{}, map[string]any{}}
	for _, v := range empty {
		assert.True(t, isEmptyValue(v), "%#v should be empty", v)
	}

	nonEmpty := []any{1, "x", true, []any{nil}, map[string]any{"k": nil}, 0.5}
	for _, v := range nonEmpty {
		assert.False(t, isEmptyValue(v), "%#v should not be empty", v)
	}
}
