// Package topogo computes persistent homology of filtered complexes.
//
// Topogo reduces boundary matrices over prime fields and reports
// persistence diagrams, with production-ready features including:
//
//   - Prime-field arithmetic: Z/2 specializations and Z/p with table inverses
//   - Five column containers: vector, list, set (bitmap over Z/2), heap, ordered
//   - Three matrix species: plain boundary (R), RU decomposition, chain basis
//   - Standard, twist (clearing) and chunked parallel reduction drivers
//   - Vineyard updates: transpose adjacent simplices on a reduced RU matrix
//   - Representative cycles from U or from the chain basis
//   - A compact binary filtration format (.flt) with zstd/lz4 framing
//   - Simplicial-complex and tower front-ends producing filtration streams
//
// # Quick Start (Fluent API)
//
// Build an engine with the type-safe builder:
//
//	ctx := context.Background()
//	eng, err := topogo.Z2().     // Coefficient field
//	    Boundary().              // Matrix species
//	    Twist().                 // Reduction driver
//	    Build()
//	if err != nil {
//	    panic(err)
//	}
//	defer eng.Close()
//
// Feed a filtration and compute the diagram:
//
//	for _, rec := range records {
//	    if err := eng.Insert(ctx, rec); err != nil {
//	        panic(err)
//	    }
//	}
//	diagram, err := eng.Compute(ctx)
//
// Representative cycles and vineyard updates need the RU species:
//
//	eng, _ := topogo.Zp(5).RU().RowAccess().Vineyards().Build()
//	// ... insert, compute ...
//	err = eng.Transpose(ctx, i) // swap simplices i and i+1
//
// # Species Selection
//
// Choose the right matrix for your workload:
//   - Boundary: pairs only, lowest memory (optionally with twist clearing)
//   - RU: pairs + representative cycles + vineyard transpositions
//   - Chain: incremental pairing with an explicit chain basis
package topogo

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
	"github.com/hupe1980/topogo/filtration"
	"github.com/hupe1980/topogo/matrix"
	"github.com/hupe1980/topogo/reduction"
)

// Species selects the matrix maintained by the engine.
type Species int

const (
	// SpeciesBoundary reduces the plain boundary matrix R.
	SpeciesBoundary Species = iota
	// SpeciesRU maintains the full R = D*U decomposition.
	SpeciesRU
	// SpeciesChain maintains an explicit chain basis, reduced on insertion.
	SpeciesChain
)

func (s Species) String() string {
	switch s {
	case SpeciesBoundary:
		return "boundary"
	case SpeciesRU:
		return "ru"
	case SpeciesChain:
		return "chain"
	default:
		return "unknown"
	}
}

// Driver selects the reduction order.
type Driver int

const (
	// DriverStandard reduces columns left to right.
	DriverStandard Driver = iota
	// DriverTwist reduces by decreasing dimension with clearing.
	DriverTwist
	// DriverChunk reduces dimensions in parallel on worker goroutines.
	DriverChunk
)

func (d Driver) String() string {
	switch d {
	case DriverStandard:
		return "standard"
	case DriverTwist:
		return "twist"
	case DriverChunk:
		return "chunk"
	default:
		return "unknown"
	}
}

// pairsMatrix is the surface the engine needs from every species.
type pairsMatrix interface {
	InsertBoundary(entries []column.Entry, dim int) (int, error)
	NumColumns() int
	Pairs() []matrix.IndexPair
	Close()
}

// Engine streams filtration records into a matrix and computes persistence.
// It is not safe for concurrent use; the chunk driver parallelizes internally.
type Engine struct {
	f         field.Arithmetic
	species   Species
	driver    Driver
	workers   int
	vineyards bool

	m     pairsMatrix
	red   reduction.Matrix // nil for the chain species
	ru    *matrix.RU       // nil unless SpeciesRU
	chain *matrix.Chain    // nil unless SpeciesChain

	ids  map[uint64]int
	recs []filtration.Record

	computed bool
	pairs    []matrix.IndexPair
	diag     filtration.Diagram

	metrics MetricsCollector
	logger  *Logger
}

// Field returns the coefficient field of the engine.
func (e *Engine) Field() field.Arithmetic { return e.f }

// Species returns the matrix species of the engine.
func (e *Engine) Species() Species { return e.species }

// Len returns the number of inserted simplices.
func (e *Engine) Len() int { return len(e.recs) }

// Insert feeds one filtration record into the engine. Records must arrive in
// filtration order: faces before cofaces, values non-decreasing.
func (e *Engine) Insert(ctx context.Context, rec filtration.Record) error {
	start := time.Now()
	err := e.insert(rec)
	err = translateError(err)
	e.metrics.RecordInsert(time.Since(start), err)
	e.logger.LogInsert(ctx, rec.ID, rec.Dim, err)
	return err
}

// InsertAll feeds a batch of filtration records into the engine.
func (e *Engine) InsertAll(ctx context.Context, recs []filtration.Record) error {
	for _, rec := range recs {
		if err := e.Insert(ctx, rec); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) insert(rec filtration.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if _, ok := e.ids[rec.ID]; ok {
		return &ErrDuplicateID{ID: rec.ID}
	}
	if n := len(e.recs); n > 0 && rec.Value < e.recs[n-1].Value {
		return &filtration.ErrNonMonotone{Value: rec.Value, Last: e.recs[n-1].Value}
	}

	entries := make([]column.Entry, 0, len(rec.Boundary))
	for i, face := range rec.Boundary {
		idx, ok := e.ids[face]
		if !ok {
			return &ErrUnknownFace{ID: rec.ID, Face: face}
		}

		c := int8(1)
		if len(rec.Coefficients) > 0 {
			c = rec.Coefficients[i]
		}
		v := e.f.Normalize(int64(c))
		if v == 0 {
			// The term vanishes in this field (coefficient divisible by p).
			continue
		}

		entries = append(entries, column.Entry{Row: uint64(idx), Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Row < entries[j].Row })

	idx, err := e.m.InsertBoundary(entries, int(rec.Dim))
	if err != nil {
		return err
	}

	e.ids[rec.ID] = idx
	e.recs = append(e.recs, rec)
	e.computed = e.species == SpeciesChain
	e.pairs = nil
	e.diag = nil

	return nil
}

// Compute reduces the matrix and returns the persistence diagram. For the
// chain species the basis is already reduced and Compute only collects pairs.
// Compute may be called again after further insertions.
func (e *Engine) Compute(ctx context.Context) (filtration.Diagram, error) {
	start := time.Now()

	var err error
	if e.red != nil {
		switch e.driver {
		case DriverTwist:
			err = reduction.Twist(ctx, e.red)
		case DriverChunk:
			err = reduction.Chunk(ctx, e.red, e.workers)
		default:
			err = reduction.Standard(ctx, e.red)
		}
	}

	if err == nil {
		e.pairs = e.m.Pairs()
		e.diag = e.diagram(e.pairs)
		e.computed = true
	}

	e.metrics.RecordReduce(e.m.NumColumns(), len(e.pairs), time.Since(start), err)
	e.logger.LogReduce(ctx, e.m.NumColumns(), len(e.pairs), err)

	if err != nil {
		return nil, err
	}
	return e.diag, nil
}

// Diagram returns the diagram of the last Compute call.
func (e *Engine) Diagram() (filtration.Diagram, error) {
	if !e.computed || e.diag == nil {
		return nil, ErrNotComputed
	}
	return e.diag, nil
}

func (e *Engine) diagram(pairs []matrix.IndexPair) filtration.Diagram {
	d := make(filtration.Diagram, 0, len(pairs))
	for _, ip := range pairs {
		birth := e.recs[ip.Birth]
		p := filtration.Pair{
			Dim:     uint32(ip.Dim),
			Birth:   birth.Value,
			Death:   math.Inf(1),
			BirthID: birth.ID,
		}
		if !ip.Essential() {
			death := e.recs[ip.Death]
			p.Death = death.Value
			p.DeathID = death.ID
			p.HasDeath = true
		}
		d = append(d, p)
	}

	sort.SliceStable(d, func(i, j int) bool {
		if d[i].Dim != d[j].Dim {
			return d[i].Dim < d[j].Dim
		}
		if d[i].Birth != d[j].Birth {
			return d[i].Birth < d[j].Birth
		}
		return d[i].BirthID < d[j].BirthID
	})

	return d
}

// RepresentativeCycles returns one representative cycle per interval,
// referencing simplex identifiers. Requires the RU or chain species.
func (e *Engine) RepresentativeCycles(ctx context.Context) ([]filtration.Cycle, error) {
	start := time.Now()
	cycles, err := e.representativeCycles()
	e.metrics.RecordCycles(len(cycles), time.Since(start), err)
	e.logger.LogCycles(ctx, len(cycles), err)
	return cycles, err
}

func (e *Engine) representativeCycles() ([]filtration.Cycle, error) {
	if e.ru == nil && e.chain == nil {
		return nil, ErrCyclesUnavailable
	}
	if !e.computed {
		return nil, ErrNotComputed
	}
	if e.pairs == nil {
		e.pairs = e.m.Pairs()
		e.diag = e.diagram(e.pairs)
	}

	cycles := make([]filtration.Cycle, 0, len(e.pairs))
	for _, ip := range e.pairs {
		var entries []column.Entry
		if e.ru != nil {
			entries = e.ru.RepresentativeCycle(ip)
		} else {
			entries = e.chain.RepresentativeCycle(ip)
		}

		chain := make([]uint64, 0, len(entries))
		for _, ent := range entries {
			chain = append(chain, e.recs[ent.Row].ID)
		}
		sort.Slice(chain, func(i, j int) bool { return chain[i] < chain[j] })

		cycles = append(cycles, filtration.Cycle{PairID: e.recs[ip.Birth].ID, Chain: chain})
	}

	return cycles, nil
}

// Transpose swaps the simplices at filtration positions i and i+1 and repairs
// the decomposition. The engine must be built with Vineyards() and the matrix
// must be reduced. Swapping a simplex with one of its faces fails with
// matrix.ErrFaceTransposition.
func (e *Engine) Transpose(ctx context.Context, i int) error {
	start := time.Now()
	err := e.transpose(i)
	e.metrics.RecordTranspose(time.Since(start), err)
	e.logger.LogTranspose(ctx, i, err)
	return err
}

func (e *Engine) transpose(i int) error {
	if !e.vineyards || e.ru == nil {
		return ErrVineyardsDisabled
	}
	if !e.computed {
		return ErrNotComputed
	}

	if err := e.ru.Transpose(i); err != nil {
		return err
	}

	e.recs[i], e.recs[i+1] = e.recs[i+1], e.recs[i]
	e.ids[e.recs[i].ID] = i
	e.ids[e.recs[i+1].ID] = i + 1

	e.pairs = e.m.Pairs()
	e.diag = e.diagram(e.pairs)

	return nil
}

// Close releases the pooled column storage of the engine.
func (e *Engine) Close() {
	e.m.Close()
}
