package compute

import (
	"errors"
	"fmt"
)

// Every function in this package returns one of these sentinels wrapped with the
// name of the failing operation, so callers match them with errors.Is.
var (
	// ErrInvalidShape is returned when an array has the wrong rank, a wrong
	// channel/column count, or ragged rows.
	ErrInvalidShape = errors.New("compute: invalid shape")

	// ErrShapeMismatch is returned when two operands disagree in size.
	ErrShapeMismatch = errors.New("compute: shape mismatch")

	// ErrEmptySequence is returned for zero-length input where at least one element is required.
	ErrEmptySequence = errors.New("compute: empty sequence")

	// ErrNilTensor is returned when a nil *tensor.Dense is passed.
	ErrNilTensor = errors.New("compute: nil tensor")

	// ErrDtype is returned when the backing type of a tensor does not match the requested element type.
	ErrDtype = errors.New("compute: unexpected dtype")
)

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func opErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", op, err, fmt.Sprintf(format, args...))
}
