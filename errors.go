package nest

import (
	"errors"
	"fmt"
)

// Core error definitions
var (
	// ErrUnknownOperation is returned when an operation name resolves to
	// neither a built-in nor a registered custom operation.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidArgument is returned when a built-in operation receives
	// arguments outside its contract.
	ErrInvalidArgument = errors.New("invalid argument")
)

// OpError represents an operation failure with essential context
type OpError struct {
	Op      string // Operation name that failed
	Path    string // Path involved in the failure, if any
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *OpError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("nest %s failed at path '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("nest %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is
func (e *OpError) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*OpError); ok {
		return e.Op == targetErr.Op && errors.Is(e.Err, targetErr.Err)
	}
	return errors.Is(e.Err, target)
}

// newUnknownOperationError creates an OpError for unresolvable names
func newUnknownOperationError(name string) error {
	return &OpError{
		Op:      name,
		Message: fmt.Sprintf("no built-in or registered operation named %q", name),
		Err:     ErrUnknownOperation,
	}
}

// newInvalidArgumentError creates an OpError for argument contract violations
func newInvalidArgumentError(op, message string) error {
	return &OpError{
		Op:      op,
		Message: message,
		Err:     ErrInvalidArgument,
	}
}
