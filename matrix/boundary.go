package matrix

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

// Boundary stores the reduced boundary matrix R of the R=DU decomposition
// together with its pivot table. Columns are inserted unreduced in
// filtration order; reduction drivers call ReduceColumn left to right.
type Boundary struct {
	base    *Base
	pivots  *PivotTable
	cleared *roaring64.Bitmap
	reduced []bool
}

// NewBoundary creates an empty boundary matrix over f.
func NewBoundary(f field.Arithmetic, cfg Config) *Boundary {
	return &Boundary{
		base:    NewBase(f, cfg),
		pivots:  NewPivotTable(),
		cleared: roaring64.New(),
	}
}

// Field returns the matrix field arithmetic.
func (m *Boundary) Field() field.Arithmetic { return m.base.Field() }

// NumColumns returns the number of inserted boundaries.
func (m *Boundary) NumColumns() int { return m.base.NumColumns() }

// Dimension returns the dimension of the simplex behind the column.
func (m *Boundary) Dimension(i int) int { return m.base.Dimension(i) }

// Column returns the (possibly reduced) column at the given index.
func (m *Boundary) Column(i int) column.Column { return m.base.Column(i) }

// Pivots returns the pivot table.
func (m *Boundary) Pivots() *PivotTable { return m.pivots }

// InsertBoundary appends the boundary of the next simplex. Rows must be
// strictly increasing, reference only previously inserted simplices, and
// carry non-zero coefficients.
func (m *Boundary) InsertBoundary(entries []column.Entry, dim int) (int, error) {
	idx := m.base.NumColumns()

	var prev uint64
	for i, e := range entries {
		if e.Row >= uint64(idx) {
			return 0, &ErrOutOfOrderBoundary{Column: idx, Row: e.Row}
		}
		if i > 0 && e.Row <= prev {
			return 0, &ErrOutOfOrderBoundary{Column: idx, Row: e.Row}
		}
		prev = e.Row
	}

	m.reduced = append(m.reduced, false)

	return m.base.InsertColumn(entries, dim)
}

// IsReduced reports whether the column has been reduced.
func (m *Boundary) IsReduced(i int) bool { return m.reduced[i] }

// PivotOf returns the pivot of the column after reduction.
func (m *Boundary) PivotOf(i int) (uint64, bool) {
	return m.base.Column(i).Pivot()
}

// ReduceColumn reduces the column against the global pivot table: while its
// pivot is owned by an earlier column, that column is added with the
// coefficient cancelling the pivot. The first free pivot is claimed.
func (m *Boundary) ReduceColumn(j int) error {
	return m.ReduceColumnLocal(j, m.pivots)
}

// ReduceColumnLocal is ReduceColumn against a caller-supplied pivot table.
// Chunk drivers use per-chunk tables and merge afterwards.
func (m *Boundary) ReduceColumnLocal(j int, pivots *PivotTable) error {
	if m.reduced[j] {
		return nil
	}

	if m.cleared.Contains(uint64(j)) {
		m.reduced[j] = true
		return nil
	}

	col := m.base.Column(j)
	f := m.base.Field()

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

		inv, err := f.Inv(m.base.Column(k).PivotValue())
		if err != nil {
			return err
		}

		c := f.Neg(f.Mul(col.PivotValue(), inv))
		if err := col.MultiplySourceAndAdd(m.base.Column(k), c); err != nil {
			return err
		}
	}

	m.reduced[j] = true

	return nil
}

// MergePivots installs a chunk-local pivot table into the global one.
func (m *Boundary) MergePivots(local *PivotTable) error {
	var conflict bool
	local.ForEach(func(row uint64, col int) {
		if _, taken := m.pivots.Lookup(row); taken {
			conflict = true
			return
		}
		m.pivots.Set(row, col)
	})

	if conflict {
		return ErrPivotInvariant
	}

	return nil
}

// ClearColumn empties the column at the given row index during twist
// reduction: once a pivot identifies it as killed, its own reduction is
// known to end at zero. The killer argument is unused here; the RU matrix
// needs it to repair U.
func (m *Boundary) ClearColumn(row uint64, _ int) error {
	m.base.ClearColumn(int(row))
	m.cleared.Add(row)

	return nil
}

// SwapColumns exchanges two columns together with their reduction state.
func (m *Boundary) SwapColumns(i, j int) {
	m.base.SwapColumns(i, j)
	m.reduced[i], m.reduced[j] = m.reduced[j], m.reduced[i]

	ci, cj := m.cleared.Contains(uint64(i)), m.cleared.Contains(uint64(j))
	if ci != cj {
		if ci {
			m.cleared.Remove(uint64(i))
			m.cleared.Add(uint64(j))
		} else {
			m.cleared.Remove(uint64(j))
			m.cleared.Add(uint64(i))
		}
	}
}

// Pairs derives the persistence pairs from the pivot table. Every pivot
// (row, col) is a finite pair; creators whose row was never claimed are
// essential. Call after reduction.
func (m *Boundary) Pairs() []IndexPair {
	killed := make(map[int]bool, m.pivots.Len())
	pairs := make([]IndexPair, 0, m.base.NumColumns())

	m.pivots.ForEach(func(row uint64, col int) {
		killed[int(row)] = true
		pairs = append(pairs, IndexPair{Birth: int(row), Death: col, Dim: m.base.Dimension(int(row))})
	})

	for j := 0; j < m.base.NumColumns(); j++ {
		creator := m.cleared.Contains(uint64(j)) || m.base.Column(j).IsEmpty()
		if creator && !killed[j] {
			pairs = append(pairs, IndexPair{Birth: j, Death: -1, Dim: m.base.Dimension(j)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Birth < pairs[j].Birth })

	return pairs
}

// Close releases the matrix storage.
func (m *Boundary) Close() { m.base.Close() }
