package matrix

import (
	"sort"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

// RU maintains the full decomposition R = D*U: R is the reduced boundary
// matrix, D the inserted boundaries, and U the invertible upper triangular
// matrix recording the column operations. Keeping U buys representative
// cycles for essential classes and vineyard transpositions; every column
// operation on R is mirrored on U.
type RU struct {
	f field.Arithmetic
	r *Boundary
	u *Base
	d *Base
}

// NewRU creates an empty decomposition over f. Vineyard transpositions need
// row access on all three matrices; pass RowAccessOff when only pairs and
// cycles are wanted.
func NewRU(f field.Arithmetic, cfg Config) *RU {
	return &RU{
		f: f,
		r: NewBoundary(f, cfg),
		u: NewBase(f, cfg),
		d: NewBase(f, cfg),
	}
}

// Field returns the matrix field arithmetic.
func (m *RU) Field() field.Arithmetic { return m.f }

// NumColumns returns the number of inserted boundaries.
func (m *RU) NumColumns() int { return m.r.NumColumns() }

// Dimension returns the dimension of the simplex behind the column.
func (m *RU) Dimension(i int) int { return m.r.Dimension(i) }

// R returns the reduced boundary matrix.
func (m *RU) R() *Boundary { return m.r }

// U returns the column operation matrix.
func (m *RU) U() *Base { return m.u }

// D returns the unreduced boundary matrix.
func (m *RU) D() *Base { return m.d }

// Pivots returns the pivot table of R.
func (m *RU) Pivots() *PivotTable { return m.r.Pivots() }

// InsertBoundary appends the boundary of the next simplex to both R and D
// and extends U by an identity column.
func (m *RU) InsertBoundary(entries []column.Entry, dim int) (int, error) {
	idx, err := m.r.InsertBoundary(entries, dim)
	if err != nil {
		return 0, err
	}

	if _, err := m.d.InsertColumn(entries, dim); err != nil {
		return 0, err
	}

	if _, err := m.u.InsertColumn([]column.Entry{{Row: uint64(idx), Value: 1}}, dim); err != nil {
		return 0, err
	}

	return idx, nil
}

// IsReduced reports whether the column has been reduced.
func (m *RU) IsReduced(i int) bool { return m.r.IsReduced(i) }

// PivotOf returns the pivot of the column of R after reduction.
func (m *RU) PivotOf(i int) (uint64, bool) { return m.r.PivotOf(i) }

// ReduceColumn reduces column j of R against the global pivot table,
// mirroring every addition on U.
func (m *RU) ReduceColumn(j int) error {
	return m.ReduceColumnLocal(j, m.r.pivots)
}

// ReduceColumnLocal is ReduceColumn against a caller-supplied pivot table.
func (m *RU) ReduceColumnLocal(j int, pivots *PivotTable) error {
	if m.r.reduced[j] {
		return nil
	}

	if m.r.cleared.Contains(uint64(j)) {
		m.r.reduced[j] = true
		return nil
	}

	col := m.r.base.Column(j)

	for {
		p, ok := col.Pivot()
		if !ok {
			break
		}

		k, owned := pivots.Lookup(p)
		if !owned {
			pivots.Set(p, j)
			break
		}

		if k >= j {
			return ErrPivotInvariant
		}

		c, err := m.eliminator(col, k)
		if err != nil {
			return err
		}

		if err := col.MultiplySourceAndAdd(m.r.base.Column(k), c); err != nil {
			return err
		}
		if err := m.u.MultiplySourceAndAdd(j, k, c); err != nil {
			return err
		}
	}

	m.r.reduced[j] = true

	return nil
}

// eliminator returns the coefficient c such that col + c*R[k] cancels the
// pivot of col against the pivot of R[k].
func (m *RU) eliminator(col column.Column, k int) (field.Element, error) {
	inv, err := m.f.Inv(m.r.base.Column(k).PivotValue())
	if err != nil {
		return 0, err
	}

	return m.f.Neg(m.f.Mul(col.PivotValue(), inv)), nil
}

// MergePivots installs a chunk-local pivot table into the global one.
func (m *RU) MergePivots(local *PivotTable) error {
	return m.r.MergePivots(local)
}

// ClearColumn performs the twist clearing of the creator column at the given
// row. R keeps R = D*U valid by replacing U[row] with the cycle stored in the
// killer column of R, normalized to a unit pivot: killer columns of R are
// boundaries, hence cycles, so D applied to them vanishes.
func (m *RU) ClearColumn(row uint64, killer int) error {
	rcol := m.r.base.Column(killer)

	inv, err := m.f.Inv(rcol.PivotValue())
	if err != nil {
		return err
	}

	entries := rcol.Entries()
	for i := range entries {
		entries[i].Value = m.f.Mul(entries[i].Value, inv)
	}

	m.u.Column(int(row)).Assign(entries)

	return m.r.ClearColumn(row, killer)
}

// Pairs derives the persistence pairs from the pivot table of R.
func (m *RU) Pairs() []IndexPair {
	return m.r.Pairs()
}

// RepresentativeCycle returns a cycle generating the homology class of the
// pair: the killer column of R for finite pairs, the creator column of U for
// essential ones. Valid after reduction.
func (m *RU) RepresentativeCycle(p IndexPair) []column.Entry {
	if p.Essential() {
		return m.u.Column(p.Birth).Entries()
	}

	return m.r.base.Column(p.Death).Entries()
}

// Transpose exchanges the simplices at filtration positions i and i+1 and
// repairs the decomposition, updating the pairing in place. The matrices
// must be fully reduced and built with row access. Simplices in a face
// relation cannot be swapped.
func (m *RU) Transpose(i int) error {
	if m.d.Column(i + 1).IsNonZero(uint64(i)) {
		return &ErrFaceTransposition{Index: i}
	}

	// The columns whose pivots may move: the swapped pair and the current
	// owners of rows i and i+1. Their pivot rows are released before any
	// column changes and re-claimed once the swap is done.
	seen := map[int]struct{}{i: {}, i + 1: {}}
	candidates := []int{i, i + 1}

	for _, row := range []uint64{uint64(i), uint64(i + 1)} {
		if owner, ok := m.r.pivots.Lookup(row); ok {
			if _, dup := seen[owner]; !dup {
				seen[owner] = struct{}{}
				candidates = append(candidates, owner)
			}
		}
	}

	for _, c := range candidates {
		if p, ok := m.r.base.Column(c).Pivot(); ok {
			m.r.pivots.Remove(p)
		}
	}

	// Zero the row i entry of U[i+1], so swapping rows and columns keeps U
	// upper triangular.
	if w, ok := m.u.Column(i + 1).ValueAt(uint64(i)); ok {
		c := m.f.Neg(w)
		if err := m.u.MultiplySourceAndAdd(i+1, i, c); err != nil {
			return err
		}
		if err := m.r.base.MultiplySourceAndAdd(i+1, i, c); err != nil {
			return err
		}
	}

	for _, b := range []*Base{m.r.base, m.u, m.d} {
		if err := swapAdjacentRows(b, i); err != nil {
			return err
		}
	}

	m.r.SwapColumns(i, i+1)
	m.u.SwapColumns(i, i+1)
	m.d.SwapColumns(i, i+1)

	// Re-claim pivots left to right; at most one pair of candidates can end
	// up sharing a pivot, resolved by a single mirrored addition.
	sort.Ints(candidates)

	for _, j := range candidates {
		col := m.r.base.Column(j)

		for {
			p, ok := col.Pivot()
			if !ok {
				break
			}

			k, owned := m.r.pivots.Lookup(p)
			if !owned {
				m.r.pivots.Set(p, j)
				break
			}

			if k >= j {
				return ErrPivotInvariant
			}

			c, err := m.eliminator(col, k)
			if err != nil {
				return err
			}

			if err := col.MultiplySourceAndAdd(m.r.base.Column(k), c); err != nil {
				return err
			}
			if err := m.u.MultiplySourceAndAdd(j, k, c); err != nil {
				return err
			}
		}
	}

	return nil
}

// swapAdjacentRows exchanges rows i and i+1 of the matrix, touching only the
// columns the row index reports as affected.
func swapAdjacentRows(b *Base, i int) error {
	perm := map[uint64]uint64{uint64(i): uint64(i + 1), uint64(i + 1): uint64(i)}

	lo, err := b.RowColumns(uint64(i))
	if err != nil {
		return err
	}

	hi, err := b.RowColumns(uint64(i + 1))
	if err != nil {
		return err
	}

	seen := make(map[int]struct{}, len(lo)+len(hi))
	for _, c := range append(lo, hi...) {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		if err := b.Column(c).Reorder(perm); err != nil {
			return err
		}
	}

	return nil
}

// Close releases all three matrices.
func (m *RU) Close() {
	m.r.Close()
	m.u.Close()
	m.d.Close()
}
