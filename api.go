package nest

// Package-level operation surface, delegating to the default registry.

// Register adds a value-returning custom operation to the default
// registry, making it available to NewChain pipelines and Call.
func Register(name string, fn OperationFunc) {
	defaultRegistry.Register(name, fn)
}

// RegisterMutator adds an in-place-mutating custom operation to the
// default registry.
func RegisterMutator(name string, fn OperationFunc) {
	defaultRegistry.RegisterMutator(name, fn)
}

// Call invokes an operation by name directly, bypassing the chain.
// Built-in names take precedence over registered ones; an unresolvable
// name yields an error wrapping ErrUnknownOperation.
func Call(name string, value any, args ...any) (any, error) {
	return defaultRegistry.Call(name, value, args...)
}

// Resolve returns the invocable descriptor for name, built-ins first,
// then the default registry.
func Resolve(name string) (*Operation, error) {
	return defaultRegistry.Resolve(name)
}
