package nest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainEndToEnd(t *testing.T) {
	rows := []any{
		map[string]any{"id": 1},
		map[string]any{"id": 2},
		map[string]any{"id": 3},
	}

	c := NewChain(rows).
		MustApply("pluck", "id").
		MustApply("map", "x * x").
		MustApply("filterEmpty")

	v, err := c.Value()
	require.NoError(t, err)

	want := []any{1, 4, 9}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestChainLaziness(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Register("tick", func(value any, _ ...any) (any, error) {
		calls++
		return value, nil
	})

	c := reg.NewChain([]any{1, 2, 3})
	_, err := c.Apply("tick")
	require.NoError(t, err)

	// Appending must not evaluate anything.
	assert.Equal(t, 0, calls)

	_, err = c.Value()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A second Value without mutation returns the cache.
	_, err = c.Value()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Appending invalidates; the whole pipeline re-runs once.
	_, err = c.Apply("tick")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = c.Value()
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestChainCacheInvalidationOnWith(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Register("tick", func(value any, _ ...any) (any, error) {
		calls++
		return value, nil
	})

	c := reg.NewChain(1)
	_, err := c.Apply("tick")
	require.NoError(t, err)

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, calls)

	v, err = c.With(2).Value()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestChainCopyIndependence(t *testing.T) {
	a := NewChain([]any{1, 2, 3}).MustApply("map", "x + 1")
	b := a.Copy()

	b.MustApply("sum")
	bv, err := b.With([]any{4, 5, 6}).Value()
	require.NoError(t, err)
	assert.Equal(t, 18, bv)

	av, err := a.With([]any{1, 2, 3}).Value()
	require.NoError(t, err)

	want := []any{2, 3, 4}
	if diff := cmp.Diff(want, av); diff != "" {
		t.Errorf("original chain affected by copy (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestChainUnknownOperation(t *testing.T) {
	c := NewChain(1)
	_, err := c.Apply("definitelyNotAnOperation")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
	// The failed append must not grow the pipeline.
	assert.Equal(t, 0, c.Len())

	assert.Panics(t, func() {
		c.MustApply("definitelyNotAnOperation")
	})
}

func TestChainMutatingOperation(t *testing.T) {
	input := []any{3, 1, 2}
	c := NewChain(input).MustApply("sort")

	v, err := c.Value()
	require.NoError(t, err)

	// The mutator's return is ignored; the running value stays the same
	// (mutated) slice.
	got, ok := v.([]any)
	require.True(t, ok)
	want := []any{1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestChainOperationErrorPropagates(t *testing.T) {
	c := NewChain([]any{1}).MustApply("sample", 5)
	_, err := c.Value()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// The failed evaluation leaves the chain dirty; fixing the input
	// allows a clean recompute.
	v, err := c.With([]any{1, 2, 3, 4, 5}).Value()
	require.NoError(t, err)
	assert.Len(t, v, 5)
}

func TestChainViews(t *testing.T) {
	t.Run("array view of a mapping", func(t *testing.T) {
		c := NewChain(map[string]any{"b": 2, "a": 1})
		v, err := c.ArrayValue()
		require.NoError(t, err)
		want := []any{1, 2}
		if diff := cmp.Diff(want, v); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("object view of a sequence", func(t *testing.T) {
		c := NewChain([]any{"x", "y"})
		v, err := c.ObjectValue()
		require.NoError(t, err)
		want := map[string]any{"0": "x", "1": "y"}
		if diff := cmp.Diff(want, v); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("scalar coerces to empty views", func(t *testing.T) {
		c := NewChain("scalar")
		arr, err := c.ArrayValue()
		require.NoError(t, err)
		assert.Empty(t, arr)

		obj, err := c.ObjectValue()
		require.NoError(t, err)
		assert.Empty(t, obj)
	})
}

func TestChainRun(t *testing.T) {
	reg := NewRegistry()
	ran := false
	reg.Register("sideEffect", func(value any, _ ...any) (any, error) {
		ran = true
		return value, nil
	})

	c := reg.NewChain(nil)
	_, err := c.Apply("sideEffect")
	require.NoError(t, err)
	require.NoError(t, c.Run())
	assert.True(t, ran)
}

func TestChainWithoutInput(t *testing.T) {
	c := NewChain()
	v, err := c.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = c.With("later").Value()
	require.NoError(t, err)
	assert.Equal(t, "later", v)
}

func TestChainPathOperations(t *testing.T) {
	c := NewChain(sampleData()).
		MustApply("get", "items").
		MustApply("pluck", "id").
		MustApply("reverse")

	v, err := c.Value()
	require.NoError(t, err)
	want := []any{3, 2, 1}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
