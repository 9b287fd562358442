package matrix

import (
	"sort"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

// chainColumn is one basis element of the chain matrix. The pivot is a
// stored attribute rather than recomputed; paired is the index of the
// partner column, or -1 for essential classes.
type chainColumn struct {
	col    column.Column
	pivot  uint64
	paired int
}

// Chain maintains a compatible basis of the cycle and boundary spaces.
// Every column is either unpaired, holding a cycle of an essential class,
// or part of a pair (cycle, death) where the death column's boundary equals
// the cycle column exactly. Insertion reduces the new boundary against the
// basis eagerly, so pairs are available at any point of the filtration;
// RemoveLast undoes the latest insertion for zigzag use.
type Chain struct {
	f    field.Arithmetic
	cfg  Config
	pool *column.Pool

	cols   []chainColumn
	dims   []int
	pivots *PivotTable
}

// NewChain creates an empty chain matrix over f.
func NewChain(f field.Arithmetic, cfg Config) *Chain {
	rows := column.NewRowIndex(cfg.RowAccess, cfg.RowCapacity)

	return &Chain{
		f:      f,
		cfg:    cfg,
		pool:   column.NewPool(rows),
		pivots: NewPivotTable(),
	}
}

// Field returns the matrix field arithmetic.
func (m *Chain) Field() field.Arithmetic { return m.f }

// NumColumns returns the number of basis columns.
func (m *Chain) NumColumns() int { return len(m.cols) }

// Column returns the basis column at the given index.
func (m *Chain) Column(i int) column.Column { return m.cols[i].col }

// Dimension returns the dimension of the simplex behind the column.
func (m *Chain) Dimension(i int) int { return m.dims[i] }

// PivotOf returns the stored pivot of the column.
func (m *Chain) PivotOf(i int) (uint64, bool) {
	if m.cols[i].col.IsEmpty() {
		return 0, false
	}

	return m.cols[i].pivot, true
}

// PairedWith returns the partner of the column, or -1 when unpaired.
func (m *Chain) PairedWith(i int) int { return m.cols[i].paired }

// Pivots returns the pivot table.
func (m *Chain) Pivots() *PivotTable { return m.pivots }

// InsertBoundary appends the simplex with the given boundary and updates the
// basis. The boundary is reduced against the stored chains: if it reduces to
// zero the simplex creates a cycle and a fresh unpaired column is added; the
// adjustments over paired chains keep the boundary of the new column exact.
// Otherwise the largest unpaired chain it touches is paired with the simplex
// and rewritten to the reduced boundary.
func (m *Chain) InsertBoundary(entries []column.Entry, dim int) (int, error) {
	idx := len(m.cols)

	var prev uint64
	for i, e := range entries {
		if e.Value == 0 {
			return 0, ErrZeroCoefficient
		}
		if e.Row >= uint64(idx) {
			return 0, &ErrOutOfOrderBoundary{Column: idx, Row: e.Row}
		}
		if i > 0 && e.Row <= prev {
			return 0, &ErrOutOfOrderBoundary{Column: idx, Row: e.Row}
		}
		prev = e.Row
	}

	work, err := column.New(column.KindVector, m.f, nil, idx, dim, entries)
	if err != nil {
		return 0, err
	}

	used, err := m.reduce(work)
	if err != nil {
		return 0, err
	}

	chain, err := column.New(column.KindVector, m.f, nil, idx, dim,
		[]column.Entry{{Row: uint64(idx), Value: 1}})
	if err != nil {
		return 0, err
	}

	zeta, err := column.New(column.KindVector, m.f, nil, idx, dim, nil)
	if err != nil {
		return 0, err
	}

	tau := -1
	for c, coef := range used {
		g := m.f.Neg(coef)
		if g == 0 {
			continue
		}

		if partner := m.cols[c].paired; partner >= 0 {
			// A paired chain is a known boundary: fold its death chain into
			// the new column instead so the boundary stays exact.
			if err := chain.MultiplySourceAndAdd(m.cols[partner].col, m.f.Neg(g)); err != nil {
				return 0, err
			}
			continue
		}

		if err := zeta.MultiplySourceAndAdd(m.cols[c].col, g); err != nil {
			return 0, err
		}

		if tau < 0 || m.cols[c].pivot > m.cols[tau].pivot {
			tau = c
		}
	}

	for _, e := range chain.Entries() {
		if err := m.pool.EnsureRow(e.Row); err != nil {
			return 0, err
		}
	}

	col, err := column.New(m.cfg.ColumnKind, m.f, m.pool, idx, dim, chain.Entries())
	if err != nil {
		return 0, err
	}

	if tau < 0 {
		m.cols = append(m.cols, chainColumn{col: col, pivot: uint64(idx), paired: -1})
		m.dims = append(m.dims, dim)
		m.pivots.Set(uint64(idx), idx)

		return idx, nil
	}

	// The simplex kills the cycle of tau: replace that cycle with the
	// boundary of the new chain, preserving its pivot, and pair the two.
	m.cols[tau].col.Assign(zeta.Entries())
	m.cols[tau].paired = idx

	m.cols = append(m.cols, chainColumn{col: col, pivot: uint64(idx), paired: tau})
	m.dims = append(m.dims, dim)
	m.pivots.Set(uint64(idx), idx)

	return idx, nil
}

// reduce cancels work against the basis from the top row down and returns
// the coefficient each basis column was added with.
func (m *Chain) reduce(work column.Column) (map[int]field.Element, error) {
	used := make(map[int]field.Element)

	for {
		r, ok := work.Pivot()
		if !ok {
			return used, nil
		}

		c, owned := m.pivots.Lookup(r)
		if !owned {
			return nil, ErrPivotInvariant
		}

		pv, present := m.cols[c].col.ValueAt(r)
		if !present {
			return nil, ErrPivotInvariant
		}

		inv, err := m.f.Inv(pv)
		if err != nil {
			return nil, err
		}

		coef := m.f.Neg(m.f.Mul(work.PivotValue(), inv))
		if err := work.MultiplySourceAndAdd(m.cols[c].col, coef); err != nil {
			return nil, err
		}

		used[c] = m.f.Add(used[c], coef)
	}
}

// AddTo adds the source column into the target. When the addition raises
// the target's largest row to the source's pivot, the stored pivots of the
// two columns are exchanged, keeping the pivot table an injection. The
// caller is responsible for keeping the basis consistent.
func (m *Chain) AddTo(src, tgt int) error {
	if err := m.cols[tgt].col.Add(m.cols[src].col); err != nil {
		return err
	}

	p, ok := m.cols[tgt].col.Pivot()
	if !ok || p == m.cols[tgt].pivot {
		return nil
	}

	if p == m.cols[src].pivot {
		m.cols[src].pivot, m.cols[tgt].pivot = m.cols[tgt].pivot, p
		m.pivots.Set(m.cols[src].pivot, src)
		m.pivots.Set(m.cols[tgt].pivot, tgt)
	}

	return nil
}

// Scale multiplies the column by c. Chain columns are basis elements, so a
// zero factor is rejected rather than silently dropping the element.
func (m *Chain) Scale(i int, c field.Element) error {
	if m.f.Normalize(int64(c)) == 0 {
		return ErrZeroChainScale
	}

	return m.cols[i].col.Scale(c)
}

// RemoveLast undoes the most recent insertion. If the removed simplex was
// paired, its partner reverts to an unpaired cycle; the chain it holds is a
// boundary of the removed simplex and remains a valid cycle.
func (m *Chain) RemoveLast() {
	if len(m.cols) == 0 {
		return
	}

	idx := len(m.cols) - 1
	last := m.cols[idx]

	if last.paired >= 0 {
		m.cols[last.paired].paired = -1
	}

	m.pivots.Remove(last.pivot)
	last.col.Clear()

	if rows := m.pool.Rows(); rows != nil {
		rows.RemoveRow(uint64(idx))
	}

	m.cols = m.cols[:idx]
	m.dims = m.dims[:idx]
}

// Pairs derives the persistence pairs from the pairing. The birth of a pair
// is the pivot of its cycle column, the death the index of the partner.
func (m *Chain) Pairs() []IndexPair {
	pairs := make([]IndexPair, 0, len(m.cols))

	for i, c := range m.cols {
		switch {
		case c.paired < 0:
			pairs = append(pairs, IndexPair{Birth: int(c.pivot), Death: -1, Dim: m.dims[int(c.pivot)]})
		case c.paired > i:
			pairs = append(pairs, IndexPair{Birth: int(c.pivot), Death: int(m.cols[c.paired].pivot), Dim: m.dims[int(c.pivot)]})
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Birth < pairs[j].Birth })

	return pairs
}

// RepresentativeCycle returns the stored cycle of the class born at the
// pair's birth index.
func (m *Chain) RepresentativeCycle(p IndexPair) []column.Entry {
	c, ok := m.pivots.Lookup(uint64(p.Birth))
	if !ok {
		return nil
	}

	return m.cols[c].col.Entries()
}

// Close releases the matrix storage.
func (m *Chain) Close() {
	if rows := m.pool.Rows(); rows != nil {
		for row := uint64(0); row < uint64(len(m.cols)); row++ {
			rows.RemoveRow(row)
		}
	}

	for i := range m.cols {
		m.cols[i].col.Clear()
	}

	m.cols = nil
	m.dims = nil
}
