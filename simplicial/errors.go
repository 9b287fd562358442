package simplicial

import "fmt"

// ErrInvalidSimplex indicates a structurally unusable simplex.
type ErrInvalidSimplex struct {
	Vertices []uint64
	Reason   string
}

func (e *ErrInvalidSimplex) Error() string {
	return fmt.Sprintf("simplicial: invalid simplex %v: %s", e.Vertices, e.Reason)
}

// ErrMissingFace indicates an insertion whose boundary face has not been
// inserted yet.
type ErrMissingFace struct {
	Vertices []uint64
	Face     []uint64
}

func (e *ErrMissingFace) Error() string {
	return fmt.Sprintf("simplicial: simplex %v inserted before its face %v", e.Vertices, e.Face)
}
