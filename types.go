package nest

// Path syntax constants
const (
	// DefaultDelimiter separates segments in a dotted path.
	DefaultDelimiter = "."

	// Wildcard is the path segment matching every element of the
	// current container.
	Wildcard = "*"
)

// OperationKind describes how an operation treats its leading argument.
// The kind is fixed when the operation is defined; the chain evaluator
// switches on it instead of inspecting call signatures at run time.
type OperationKind int

const (
	// KindValue operations receive the running value and return a new
	// value, which becomes the chain's running value.
	KindValue OperationKind = iota

	// KindMutate operations mutate the running value in place (maps and
	// slices alias their backing storage); their return value is ignored
	// by the chain evaluator.
	KindMutate
)

// String returns the kind name for diagnostics
func (k OperationKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindMutate:
		return "mutate"
	default:
		return "unknown"
	}
}

// OperationFunc is the uniform shape of every operation: the running
// value first, then the operation's own trailing arguments.
type OperationFunc func(value any, args ...any) (any, error)

// Operation is an invocable descriptor: a callable plus its calling
// convention, resolved once so evaluation never branches on name again.
type Operation struct {
	Name string
	Kind OperationKind
	Func OperationFunc
}

// boundOperation is an operation captured by a chain together with its
// partially-applied trailing arguments. The leading argument slot is
// filled with the chain's running value at evaluation time.
type boundOperation struct {
	name string
	op   *Operation
	args []any
}
