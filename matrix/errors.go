package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrPivotInvariant reports an internal reduction inconsistency. It
	// should be unreachable and indicates a bug.
	ErrPivotInvariant = errors.New("matrix: pivot invariant violated")

	// ErrZeroChainScale is returned when a chain column would be multiplied
	// by zero, which would silently drop a basis element.
	ErrZeroChainScale = errors.New("matrix: chain column multiplied by zero")

	// ErrRowAccessRequired is returned when an operation needs the inverted
	// row index but the matrix was built without one.
	ErrRowAccessRequired = errors.New("matrix: operation requires row access")

	// ErrZeroCoefficient is returned when a boundary carries a coefficient
	// that normalizes to zero; producers must drop such faces.
	ErrZeroCoefficient = errors.New("matrix: zero coefficient in boundary")
)

// ErrOutOfOrderBoundary indicates a boundary referencing a row that has not
// been inserted yet.
type ErrOutOfOrderBoundary struct {
	Column int
	Row    uint64
}

func (e *ErrOutOfOrderBoundary) Error() string {
	return fmt.Sprintf("matrix: boundary of column %d references unknown row %d", e.Column, e.Row)
}

// ErrFaceTransposition indicates a vineyard transposition of two simplices
// that are in a face relation and therefore cannot be swapped.
type ErrFaceTransposition struct {
	Index int
}

func (e *ErrFaceTransposition) Error() string {
	return fmt.Sprintf("matrix: cannot transpose %d and %d: face relation", e.Index, e.Index+1)
}
