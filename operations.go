package nest

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// builtinOperations is the fixed table of built-in operations. It is
// populated by the ops_*.go init functions and consulted before the
// registry during resolution.
var builtinOperations = make(map[string]*Operation)

// builtin registers a built-in operation descriptor
func builtin(name string, kind OperationKind, fn OperationFunc) {
	builtinOperations[name] = &Operation{Name: name, Kind: kind, Func: fn}
}

// Operations returns the sorted names of all built-in operations.
func Operations() []string {
	names := make([]string, 0, len(builtinOperations))
	for name := range builtinOperations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Argument helpers shared by the built-in operations. Unlike the path
// engine, built-ins are strict about their own arguments: a contract
// violation surfaces as ErrInvalidArgument.

func stringArg(op string, args []any, i int) (string, error) {
	if i >= len(args) {
		return "", newInvalidArgumentError(op, fmt.Sprintf("missing argument %d", i+1))
	}
	s, ok := args[i].(string)
	if !ok {
		return "", newInvalidArgumentError(op, fmt.Sprintf("argument %d must be a string, got %T", i+1, args[i]))
	}
	return s, nil
}

func intArg(op string, args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, newInvalidArgumentError(op, fmt.Sprintf("missing argument %d", i+1))
	}
	if n, ok := args[i].(int); ok {
		return n, nil
	}
	if f, ok := toFloat64(args[i]); ok && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, newInvalidArgumentError(op, fmt.Sprintf("argument %d must be an integer, got %T", i+1, args[i]))
}

// elementFunc applies an operation-supplied transformation to one element
type elementFunc func(elem any, index int) (any, error)

// valueMapper adapts the supported mapper shapes to a single form:
// Go callbacks, or an expression string compiled with expr and evaluated
// with the element bound to x and its index to i.
func valueMapper(op string, arg any) (elementFunc, error) {
	switch fn := arg.(type) {
	case func(any) any:
		return func(elem any, _ int) (any, error) {
			return fn(elem), nil
		}, nil
	case func(any) (any, error):
		return func(elem any, _ int) (any, error) {
			return fn(elem)
		}, nil
	case func(any, int) any:
		return func(elem any, index int) (any, error) {
			return fn(elem, index), nil
		}, nil
	case string:
		return exprMapper(op, fn)
	}
	return nil, newInvalidArgumentError(op, fmt.Sprintf("unsupported mapper type %T", arg))
}

// predicate adapts the supported predicate shapes: Go callbacks, or an
// expression string whose result is taken as a boolean (non-boolean
// results fall back to emptiness testing).
func predicate(op string, arg any) (func(elem any, index int) (bool, error), error) {
	switch fn := arg.(type) {
	case func(any) bool:
		return func(elem any, _ int) (bool, error) {
			return fn(elem), nil
		}, nil
	case func(any) (bool, error):
		return func(elem any, _ int) (bool, error) {
			return fn(elem)
		}, nil
	case string:
		mapper, err := exprMapper(op, fn)
		if err != nil {
			return nil, err
		}
		return func(elem any, index int) (bool, error) {
			v, err := mapper(elem, index)
			if err != nil {
				return false, err
			}
			if b, ok := v.(bool); ok {
				return b, nil
			}
			return !isEmptyValue(v), nil
		}, nil
	}
	return nil, newInvalidArgumentError(op, fmt.Sprintf("unsupported predicate type %T", arg))
}

// exprMapper compiles src once and returns a per-element evaluator
func exprMapper(op, src string) (elementFunc, error) {
	program, err := expr.Compile(src)
	if err != nil {
		return nil, newInvalidArgumentError(op, fmt.Sprintf("bad expression %q: %v", src, err))
	}
	return func(elem any, index int) (any, error) {
		return runProgram(program, elem, index)
	}, nil
}

func runProgram(program *vm.Program, elem any, index int) (any, error) {
	return expr.Run(program, map[string]any{"x": elem, "i": index})
}
