package meshio

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedField = errors.New("meshio: malformed field")
	ErrMissingField   = errors.New("meshio: missing field")
	ErrEmpty          = errors.New("meshio: no data rows")
)

// ParseError locates a malformed field. Line is 1-based, Column 0-based.
type ParseError struct {
	Line    int
	Column  int
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d column %d: %v", e.Line, e.Column, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
