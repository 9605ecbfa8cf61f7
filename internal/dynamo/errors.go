package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for engine setup and configuration.
var (
	// ErrUnknownScheme indicates an unsupported integration scheme selector.
	ErrUnknownScheme = errors.New("dynamo: unknown integration scheme")

	// ErrUnknownCoordMode indicates an unsupported vertex coordinate mode.
	ErrUnknownCoordMode = errors.New("dynamo: unknown coordinate mode")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrIndexOutOfRange indicates a spring or element referencing a missing node.
	ErrIndexOutOfRange = errors.New("dynamo: node index out of range")

	// ErrNoIntegrator indicates a body built without an integrator factory.
	ErrNoIntegrator = errors.New("dynamo: no integrator factory")
)

// SetupError wraps an error raised while assembling a body.
type SetupError struct {
	Stage   string
	Index   int
	Wrapped error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Stage, e.Index, e.Wrapped)
}

func (e *SetupError) Unwrap() error {
	return e.Wrapped
}
