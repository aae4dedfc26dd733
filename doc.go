// Package nest provides path-based access to heterogeneous nested data
// (maps, slices, scalars) and a lazy, cache-backed operation chain for
// composing transformations over such data.
//
// # Path operations
//
// Values inside nested containers are addressed with dotted string paths.
// All path operations are fail-soft: a missing or mistyped path never
// produces an error, it degrades to a default value, false, or a no-op.
//
//	data := map[string]any{"user": map[string]any{"name": "John"}}
//	name := nest.Get(data, "user.name")              // "John"
//	age := nest.Get(data, "user.age", 30)            // 30 (default)
//	data = nest.Set(data, "user.age", 31).(map[string]any)
//	ok := nest.Has(data, "user.name", "user.age")    // true
//
// The wildcard segment "*" fans out over every element of the current
// container and collects the results:
//
//	ids := nest.Path(data, "items.*.id")
//
// # Chains
//
// A Chain accumulates named operations and evaluates them lazily, caching
// the result until the input is replaced or another operation is appended:
//
//	c := nest.NewChain(rows)
//	c.MustApply("pluck", "id").MustApply("map", "x * x")
//	out, err := c.Value()
//
// Operation names resolve against the built-in library first and then
// against a registry of custom operations; unknown names fail at append
// time, not at evaluation time. Custom operations are registered with
// Register (value-returning) or RegisterMutator (mutates its argument in
// place). Any operation can also be invoked standalone via Call, without
// building a chain.
//
// The package assumes single-threaded use: neither a Chain nor a Registry
// is safe for concurrent mutation.
package nest
