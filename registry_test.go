package nest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()

	t.Run("unknown name", func(t *testing.T) {
		_, err := reg.Resolve("nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownOperation))
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("registered name", func(t *testing.T) {
		reg.Register("double", func(value any, _ ...any) (any, error) {
			n, _ := toFloat64(value)
			return n * 2, nil
		})
		op, err := reg.Resolve("double")
		require.NoError(t, err)
		assert.Equal(t, KindValue, op.Kind)
	})

	t.Run("builtin wins over registry entry", func(t *testing.T) {
		reg.Register("size", func(value any, _ ...any) (any, error) {
			return "shadowed", nil
		})
		v, err := reg.Call("size", []any{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})
}

func TestRegistryIsolation(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()

	a.Register("onlyInA", func(value any, _ ...any) (any, error) {
		return value, nil
	})

	_, err := a.Resolve("onlyInA")
	require.NoError(t, err)

	_, err = b.Resolve("onlyInA")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

func TestRegisterMutator(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterMutator("fillZero", func(value any, _ ...any) (any, error) {
		items, ok := value.([]any)
		if !ok {
			return nil, newInvalidArgumentError("fillZero", "value must be a sequence")
		}
		for i := range items {
			items[i] = 0
		}
		// The return value is ignored for mutators.
		return "ignored", nil
	})

	op, err := reg.Resolve("fillZero")
	require.NoError(t, err)
	assert.Equal(t, KindMutate, op.Kind)

	input := []any{1, 2, 3}
	v, err := reg.Call("fillZero", input)
	require.NoError(t, err)
	assert.Equal(t, []any{0, 0, 0}, v)

	// Through a chain, the running value stays the mutated input.
	c := reg.NewChain([]any{7, 8})
	_, err = c.Apply("fillZero")
	require.NoError(t, err)
	out, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, []any{0, 0}, out)
}

func TestDefaultRegistryCall(t *testing.T) {
	// Package-level registration goes through the process-wide default
	// registry; the name is deliberately unique to avoid cross-test
	// collisions, since default-registry entries persist for the process.
	name := fmt.Sprintf("testOp_%s", t.Name())
	Register(name, func(value any, _ ...any) (any, error) {
		return "custom", nil
	})

	v, err := Call(name, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", v)

	op, err := Resolve(name)
	require.NoError(t, err)
	assert.Equal(t, name, op.Name)

	_, err = Call("neverRegistered", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOperation))
}

func TestOperationKindString(t *testing.T) {
	assert.Equal(t, "value", KindValue.String())
	assert.Equal(t, "mutate", KindMutate.String())
	assert.Equal(t, "unknown", OperationKind(99).String())
}
