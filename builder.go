// Package topogo computes persistent homology of filtered complexes.
//
// This file implements the fluent builder API for creating and configuring
// engines. Builders are immutable - each method returns a new builder with
// the updated configuration.
package topogo

import (
	"fmt"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
	"github.com/hupe1980/topogo/matrix"
)

// Z2 creates a new engine builder over the two-element field. Boundary
// coefficients degenerate to presence bits, which enables the bitmap-backed
// set columns.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	eng, err := topogo.Z2().
//	    Boundary().
//	    SetColumns().
//	    Twist().
//	    Build()
func Z2() Builder {
	return Builder{characteristic: 2}
}

// Zp creates a new engine builder over the prime field Z/p. Build fails for
// composite p.
//
// Example:
//
//	eng, err := topogo.Zp(5).
//	    RU().
//	    RowAccess().
//	    Vineyards().
//	    Build()
func Zp(p uint32) Builder {
	return Builder{characteristic: p}
}

// Builder is an immutable fluent builder for creating engines.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	characteristic uint32
	species        Species
	kind           column.Kind
	rowAccess      column.RowAccess
	rowCapacity    int
	driver         Driver
	workers        int
	vineyards      bool
}

// Boundary selects the plain boundary matrix. Lowest memory; pairs only.
func (b Builder) Boundary() Builder {
	b.species = SpeciesBoundary
	return b
}

// RU selects the full R = D*U decomposition. Required for representative
// cycles and vineyard transpositions.
func (b Builder) RU() Builder {
	b.species = SpeciesRU
	return b
}

// Chain selects the chain-basis matrix. Reduction happens on insertion, so
// the driver setting is ignored.
func (b Builder) Chain() Builder {
	b.species = SpeciesChain
	return b
}

// VectorColumns stores columns as sorted cell slices. The default.
func (b Builder) VectorColumns() Builder {
	b.kind = column.KindVector
	return b
}

// ListColumns stores columns as linked lists merged without relocation.
func (b Builder) ListColumns() Builder {
	b.kind = column.KindList
	return b
}

// SetColumns stores columns as unordered sets with a lazy pivot. Over Z/2
// they are backed by roaring bitmaps and cannot carry a row index.
func (b Builder) SetColumns() Builder {
	b.kind = column.KindSet
	return b
}

// HeapColumns buffers column additions on a heap and compacts on read.
// Heap columns cannot carry a row index.
func (b Builder) HeapColumns() Builder {
	b.kind = column.KindHeap
	return b
}

// OrderedColumns stores columns as ordered containers with in-place edits.
func (b Builder) OrderedColumns() Builder {
	b.kind = column.KindOrdered
	return b
}

// RowAccess enables the intrusive inverted row index (row -> columns).
func (b Builder) RowAccess() Builder {
	b.rowAccess = column.RowAccessIntrusive
	return b
}

// OrderedRowAccess enables the row index variant that keeps each row's cells
// ordered by column.
func (b Builder) OrderedRowAccess() Builder {
	b.rowAccess = column.RowAccessOrdered
	return b
}

// RowCapacity bounds the row index; insertions past the bound fail with
// column.ErrCapacityExceeded. Zero (the default) grows on demand.
func (b Builder) RowCapacity(n int) Builder {
	b.rowCapacity = n
	return b
}

// Standard selects left-to-right column reduction. The default.
func (b Builder) Standard() Builder {
	b.driver = DriverStandard
	return b
}

// Twist selects reduction by decreasing dimension with clearing.
func (b Builder) Twist() Builder {
	b.driver = DriverTwist
	return b
}

// Chunk selects parallel per-dimension reduction on the given number of
// worker goroutines; workers <= 0 means one per dimension. Chunked reduction
// requires row access to stay disabled.
func (b Builder) Chunk(workers int) Builder {
	b.driver = DriverChunk
	b.workers = workers
	return b
}

// Vineyards enables adjacent transpositions on the reduced matrix. Implies
// the RU species and row access.
func (b Builder) Vineyards() Builder {
	b.vineyards = true
	b.species = SpeciesRU
	if b.rowAccess == column.RowAccessOff {
		b.rowAccess = column.RowAccessIntrusive
	}
	return b
}

// Build creates the engine.
func (b Builder) Build(optFns ...Option) (*Engine, error) {
	f, err := field.New(b.characteristic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if b.vineyards && b.species != SpeciesRU {
		return nil, fmt.Errorf("%w: vineyards require the RU species", ErrInvalidConfig)
	}
	if b.driver == DriverChunk && b.rowAccess != column.RowAccessOff {
		return nil, fmt.Errorf("%w: chunked reduction requires row access disabled", ErrInvalidConfig)
	}
	if b.driver == DriverChunk && b.species == SpeciesChain {
		return nil, fmt.Errorf("%w: the chain species reduces on insertion and cannot be chunked", ErrInvalidConfig)
	}
	if b.rowAccess != column.RowAccessOff && !b.kind.SupportsRowAccess(b.characteristic) {
		return nil, fmt.Errorf("%w: %s columns do not support row access", ErrInvalidConfig, b.kind)
	}

	cfg := matrix.Config{
		ColumnKind:     b.kind,
		RowAccess:      b.rowAccess,
		RowCapacity:    b.rowCapacity,
		TrackDimension: true,
	}

	opts := applyOptions(optFns)

	e := &Engine{
		f:         f,
		species:   b.species,
		driver:    b.driver,
		workers:   b.workers,
		vineyards: b.vineyards,
		ids:       make(map[uint64]int),
		metrics:   opts.metricsCollector,
		logger:    opts.logger,
	}

	switch b.species {
	case SpeciesRU:
		ru := matrix.NewRU(f, cfg)
		e.m, e.red, e.ru = ru, ru, ru
	case SpeciesChain:
		ch := matrix.NewChain(f, cfg)
		e.m, e.chain = ch, ch
		e.computed = true // the chain basis is reduced from the start
	default:
		bd := matrix.NewBoundary(f, cfg)
		e.m, e.red = bd, bd
	}

	return e, nil
}

// MustBuild creates the engine, panicking on error.
func (b Builder) MustBuild(optFns ...Option) *Engine {
	e, err := b.Build(optFns...)
	if err != nil {
		panic(err)
	}
	return e
}
