// Package filtration models the boundary stream fed into the engine and the
// persistence diagram coming out, together with a compact binary file format
// for filtrations and a tower-to-filtration converter.
package filtration

import (
	"math"
)

// Record is one simplex of a filtration: its identifier, dimension, the
// identifiers of its boundary faces in increasing order, and its filtration
// value. Coefficients optionally carry the orientation sign of each face;
// when absent every face counts with sign +1, which is exact over Z/2.
type Record struct {
	ID           uint64
	Dim          uint32
	Boundary     []uint64
	Coefficients []int8
	Value        float64
}

// Validate checks the structural invariants of the record.
func (r Record) Validate() error {
	if len(r.Coefficients) != 0 && len(r.Coefficients) != len(r.Boundary) {
		return &ErrInvalidRecord{ID: r.ID, Reason: "coefficient count does not match boundary"}
	}

	for i, face := range r.Boundary {
		if face >= r.ID {
			return &ErrInvalidRecord{ID: r.ID, Reason: "boundary face precedes the simplex"}
		}
		if i > 0 && face <= r.Boundary[i-1] {
			return &ErrInvalidRecord{ID: r.ID, Reason: "boundary faces not strictly increasing"}
		}
	}

	for _, c := range r.Coefficients {
		if c == 0 {
			return &ErrInvalidRecord{ID: r.ID, Reason: "zero coefficient"}
		}
	}

	if math.IsNaN(r.Value) {
		return &ErrInvalidRecord{ID: r.ID, Reason: "NaN filtration value"}
	}

	return nil
}

// Pair is one interval of a persistence diagram in filtration values. Death
// is +Inf and HasDeath false for essential classes.
type Pair struct {
	Dim      uint32
	Birth    float64
	Death    float64
	BirthID  uint64
	DeathID  uint64
	HasDeath bool
}

// Persistence returns the lifetime of the interval.
func (p Pair) Persistence() float64 { return p.Death - p.Birth }

// Diagram is a persistence diagram, ordered by (dim, birth).
type Diagram []Pair

// ByDimension filters the diagram down to one homological dimension.
func (d Diagram) ByDimension(dim uint32) Diagram {
	var out Diagram
	for _, p := range d {
		if p.Dim == dim {
			out = append(out, p)
		}
	}

	return out
}

// Essential filters the diagram down to the classes that never die.
func (d Diagram) Essential() Diagram {
	var out Diagram
	for _, p := range d {
		if !p.HasDeath {
			out = append(out, p)
		}
	}

	return out
}

// Cycle is a representative cycle, referencing the simplex identifiers of
// its chain. PairID is the birth identifier of the interval it represents.
type Cycle struct {
	PairID uint64
	Chain  []uint64
}
