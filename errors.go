package huffenc

import (
	"errors"
)

var (
	// ErrIO is matched (via errors.Is) by every *IOError.
	ErrIO = errors.New("I/O error")

	// ErrInvalidInput is returned when the input holds no symbols, so no
	// Huffman tree can be built from it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContractViolation is returned when an internal invariant turns
	// out to be broken at a point where it can still be reported as an
	// error, e.g. the input changed between the counting pass and the
	// encoding pass.
	ErrContractViolation = errors.New("contract violation")
)

// IOError reports a failure to read the input or write the output.
type IOError struct {
	// Op names the stage that failed: "open", "count", "encode", "write"
	// or "close".
	Op string

	// Path is the file involved, if known.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error returns the error message.
func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

var _ error = (*IOError)(nil)

func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}
