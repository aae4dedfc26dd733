package nest

// Chain is an append-only pipeline of named operations over a replaceable
// input, evaluated lazily with output memoization. Appending an operation
// or replacing the input invalidates the cached output; Value recomputes
// at most once until the next invalidation. A Chain is a single-owner,
// sequential builder: it is not safe for concurrent use.
type Chain struct {
	registry *Registry
	input    any
	ops      []*boundOperation
	output   any
	dirty    bool
}

// NewChain creates a chain bound to the default registry, with an
// optional initial input.
func NewChain(input ...any) *Chain {
	return defaultRegistry.NewChain(input...)
}

// NewChain creates a chain whose operation names resolve against r
// (built-ins first, then r), with an optional initial input.
func (r *Registry) NewChain(input ...any) *Chain {
	c := &Chain{registry: r, dirty: true}
	if len(input) > 0 {
		c.input = input[0]
	}
	return c
}

// With replaces the chain's input and invalidates the cached output.
func (c *Chain) With(input any) *Chain {
	c.input = input
	c.dirty = true
	return c
}

// Apply resolves name and appends the operation with its trailing args.
// Resolution happens here, at append time: an unknown name surfaces
// immediately as an error wrapping ErrUnknownOperation, never deferred to
// evaluation. The leading argument slot is reserved for the running value.
func (c *Chain) Apply(name string, args ...any) (*Chain, error) {
	op, err := c.registry.Resolve(name)
	if err != nil {
		return c, err
	}
	c.ops = append(c.ops, &boundOperation{name: name, op: op, args: args})
	c.dirty = true
	return c, nil
}

// MustApply is Apply for pipelines built from trusted operation names;
// it panics if the name does not resolve.
func (c *Chain) MustApply(name string, args ...any) *Chain {
	next, err := c.Apply(name, args...)
	if err != nil {
		panic(err)
	}
	return next
}

// Value evaluates the chain: the input is folded through the bound
// operations in append order, exactly once, and the result is cached
// until the input is replaced or another operation is appended. Mutating
// operations receive the running value as an aliased handle and their
// return is ignored; value operations replace the running value with
// their return. Operation errors propagate unchanged and leave the cache
// invalid.
func (c *Chain) Value() (any, error) {
	if !c.dirty {
		return c.output, nil
	}
	output := c.input
	for _, bound := range c.ops {
		result, err := bound.op.Func(output, bound.args...)
		if err != nil {
			return nil, err
		}
		if bound.op.Kind == KindValue {
			output = result
		}
	}
	c.output = output
	c.dirty = false
	return output, nil
}

// Run evaluates the chain for its side effects, discarding the result.
func (c *Chain) Run() error {
	_, err := c.Value()
	return err
}

// ArrayValue evaluates the chain and coerces the result to a sequence;
// a scalar result coerces to an empty one.
func (c *Chain) ArrayValue() ([]any, error) {
	v, err := c.Value()
	if err != nil {
		return nil, err
	}
	return ToArray(v), nil
}

// ObjectValue evaluates the chain and coerces the result to a plain
// key-value record; a scalar result coerces to an empty one.
func (c *Chain) ObjectValue() (map[string]any, error) {
	v, err := c.Value()
	if err != nil {
		return nil, err
	}
	return ToObject(v), nil
}

// Copy returns an independent chain with the same input, cached output
// and operation list. The bound operations themselves are shared; the
// list spine is duplicated, so appends and With on either chain never
// affect the other. Operations closing over mutable external state are
// outside this guarantee.
func (c *Chain) Copy() *Chain {
	ops := make([]*boundOperation, len(c.ops))
	copy(ops, c.ops)
	return &Chain{
		registry: c.registry,
		input:    c.input,
		ops:      ops,
		output:   c.output,
		dirty:    c.dirty,
	}
}

// Len returns the number of operations bound to the chain.
func (c *Chain) Len() int {
	return len(c.ops)
}
