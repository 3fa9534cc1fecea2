package calcerr

import (
	"errors"
	"fmt"
)

// Error kinds categorize calculation failures by their origin.
const (
	// KindBinding represents failures mapping call arguments onto a schema,
	// such as an override directive naming a parameter the schema does not declare.
	KindBinding = "binding"

	// KindType represents values that cannot be interpreted as their declared kind.
	KindType = "type"

	// KindConstraint represents values of the correct kind that violate declared
	// bounds, options, patterns, ordering or uniqueness requirements.
	KindConstraint = "constraint"

	// KindExecution represents errors raised by a calculation body after its
	// arguments passed validation.
	KindExecution = "execution"

	// KindConfiguration represents invalid schema or calculation definitions.
	KindConfiguration = "configuration"
)

// Sentinel errors for common failure conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrUnknownParameter indicates an override directive or rule referenced a
	// parameter that is not declared in the schema.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrUnknownKind indicates a schema entry declared an unrecognized kind.
	ErrUnknownKind = errors.New("unknown schema kind")

	// ErrCalculationNotFound indicates the requested calculation was not found
	// in the catalogue.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrDuplicateCalculation indicates a calculation name was registered twice.
	ErrDuplicateCalculation = errors.New("calculation already registered")

	// ErrInvalidConfig indicates a calculation or schema definition is invalid
	// or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed and the category of failure.
//
// Error implements the error interface and supports error unwrapping, making
// it compatible with errors.Is() and errors.As(). Validation and execution
// failures are funneled through a single channel at the propagation layer;
// the Kind field preserves the distinction for tests and callers that need it.
type Error struct {
	// Op is the operation that failed (e.g., "Calculation.Execute", "schema.LoadFile").
	Op string

	// Kind categorizes the error (e.g., KindBinding, KindConstraint).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional detail about the error (optional), such as
	// the parameter name and offending value.
	Context map[string]any
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind and underlying error.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gravel: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("gravel: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("gravel: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or on Kind/Op when the target is itself an *Error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new Error with the provided context merged in.
// The receiver is not modified.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, and the empty
// string otherwise.
func KindOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewBindingError creates a new Error with KindBinding.
func NewBindingError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindBinding, Err: err}
}

// NewTypeError creates a new Error with KindType.
func NewTypeError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindType, Err: err}
}

// NewConstraintError creates a new Error with KindConstraint.
func NewConstraintError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConstraint, Err: err}
}

// NewExecutionError creates a new Error with KindExecution.
func NewExecutionError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindExecution, Err: err}
}

// NewConfigurationError creates a new Error with KindConfiguration.
func NewConfigurationError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}
