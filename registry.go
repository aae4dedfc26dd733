package nest

// Registry is a mutable table of custom operations keyed by name. It
// starts empty: built-in operations do not live here, they are consulted
// first during resolution. Entries persist for the registry's lifetime;
// there is no removal API. A Registry is not safe for concurrent
// mutation and must be serialized by the embedding application.
type Registry struct {
	ops map[string]*Operation
}

// NewRegistry returns an empty, isolated registry. Isolated registries
// keep tests and embedded subsystems free of cross-registration leakage.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// defaultRegistry backs the package-level registration and call surface.
// It is initialized once and never reset within a process.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by NewChain,
// Call and Register.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a value-returning operation under name: the operation
// receives the running value and returns the new one. Re-registering a
// name replaces the previous entry.
func (r *Registry) Register(name string, fn OperationFunc) {
	r.ops[name] = &Operation{Name: name, Kind: KindValue, Func: fn}
}

// RegisterMutator adds an operation that mutates its leading argument in
// place; the chain evaluator ignores its return value and keeps the
// running value as-is.
func (r *Registry) RegisterMutator(name string, fn OperationFunc) {
	r.ops[name] = &Operation{Name: name, Kind: KindMutate, Func: fn}
}

// Resolve returns the operation registered under name, with built-in
// operations taking precedence over registry entries. Unresolvable names
// yield an error wrapping ErrUnknownOperation.
func (r *Registry) Resolve(name string) (*Operation, error) {
	if op, ok := builtinOperations[name]; ok {
		return op, nil
	}
	if op, ok := r.ops[name]; ok {
		return op, nil
	}
	return nil, newUnknownOperationError(name)
}

// Call invokes the operation name standalone, outside any chain. For
// mutating operations the (mutated) input value is returned.
func (r *Registry) Call(name string, value any, args ...any) (any, error) {
	op, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	out, err := op.Func(value, args...)
	if err != nil {
		return nil, err
	}
	if op.Kind == KindMutate {
		return value, nil
	}
	return out, nil
}
