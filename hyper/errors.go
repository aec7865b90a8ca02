package hyper

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular is raised by Inv when a zero pivot (or zero determinant for
	// the closed forms) is found. It is never returned, it is panicked.
	ErrSingular = errors.New("hyper: singular tensor")

	// ErrIndexRange is raised by Tensor.Cmpt for a direction outside [0, N).
	ErrIndexRange = errors.New("hyper: direction out of range")

	// ErrDimensionMismatch is raised when operands do not share the same N.
	ErrDimensionMismatch = errors.New("hyper: dimension mismatch")

	// ErrStream is returned by the stream and JSON decoders for malformed input.
	ErrStream = errors.New("hyper: malformed component stream")
)

type SingularError struct {
	Op        string
	RowLength int
	Step      int // elimination step at which the zero pivot appeared
	Row, Col  int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("%s: singular tensor%d at step %d, pivot (%d %d)",
		e.Op, e.RowLength, e.Step, e.Row, e.Col)
}

func (e *SingularError) Unwrap() error { return ErrSingular }

type IndexError struct {
	RowLength int
	I, J      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("direction out of range (0 %d) and (i j) = (%d %d)",
		e.RowLength-1, e.I, e.J)
}

func (e *IndexError) Unwrap() error { return ErrIndexRange }

func mismatch(op string, a, b int) {
	panic(fmt.Errorf("%s: %d vs %d: %w", op, a, b, ErrDimensionMismatch))
}
