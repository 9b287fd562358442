package filtration

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedStream is returned when a filtration file cannot be decoded.
	ErrMalformedStream = errors.New("filtration: malformed stream")

	// ErrUnsupportedVersion is returned for files written by a newer format
	// revision.
	ErrUnsupportedVersion = errors.New("filtration: unsupported format version")

	// ErrUnknownCodec is returned when a writer is created with an unknown
	// compression codec.
	ErrUnknownCodec = errors.New("filtration: unknown codec")
)

// ErrInvalidRecord indicates a structurally broken filtration record.
type ErrInvalidRecord struct {
	ID     uint64
	Reason string
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("filtration: invalid record %d: %s", e.ID, e.Reason)
}

// ErrRetiredVertex indicates a tower operation on a vertex removed by an
// earlier contraction.
type ErrRetiredVertex struct {
	Vertex uint64
}

func (e *ErrRetiredVertex) Error() string {
	return fmt.Sprintf("filtration: vertex %d was retired by a contraction", e.Vertex)
}

// ErrNonMonotone indicates a tower or complex operation whose filtration
// value decreases.
type ErrNonMonotone struct {
	Value float64
	Last  float64
}

func (e *ErrNonMonotone) Error() string {
	return fmt.Sprintf("filtration: value %g below preceding value %g", e.Value, e.Last)
}
