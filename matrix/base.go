package matrix

import (
	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

// Config bundles the storage options shared by all matrix species.
type Config struct {
	// ColumnKind selects the column container variant.
	ColumnKind column.Kind
	// RowAccess enables the inverted row index.
	RowAccess column.RowAccess
	// RowCapacity bounds the row index when positive; zero grows on demand.
	RowCapacity int
	// TrackDimension records the simplicial dimension of every column.
	TrackDimension bool
}

// Base is an append-only container of columns with the column operation
// surface lifted to indices. It backs the other matrix species and can be
// used directly to maintain a column-echelon structure.
type Base struct {
	f    field.Arithmetic
	cfg  Config
	pool *column.Pool
	cols []column.Column
	dims []int
}

// NewBase creates an empty base matrix over f.
func NewBase(f field.Arithmetic, cfg Config) *Base {
	rows := column.NewRowIndex(cfg.RowAccess, cfg.RowCapacity)

	return &Base{
		f:    f,
		cfg:  cfg,
		pool: column.NewPool(rows),
	}
}

// Field returns the matrix field arithmetic.
func (m *Base) Field() field.Arithmetic { return m.f }

// NumColumns returns the logical width of the matrix.
func (m *Base) NumColumns() int { return len(m.cols) }

// Column returns the column at the given index.
func (m *Base) Column(i int) column.Column { return m.cols[i] }

// Dimension returns the simplicial dimension recorded for the column.
func (m *Base) Dimension(i int) int { return m.dims[i] }

// InsertColumn appends a column built from the given sorted entries and
// returns its index. Unlike boundary insertion, rows are unconstrained.
func (m *Base) InsertColumn(entries []column.Entry, dim int) (int, error) {
	idx := len(m.cols)

	for _, e := range entries {
		if e.Value == 0 {
			return 0, ErrZeroCoefficient
		}
		if err := m.pool.EnsureRow(e.Row); err != nil {
			return 0, err
		}
	}

	col, err := column.New(m.cfg.ColumnKind, m.f, m.pool, idx, dim, entries)
	if err != nil {
		return 0, err
	}

	m.cols = append(m.cols, col)
	m.dims = append(m.dims, dim)

	return idx, nil
}

// AddTo adds the source column into the target column.
func (m *Base) AddTo(src, tgt int) error {
	return m.cols[tgt].Add(m.cols[src])
}

// MultiplyTargetAndAdd sets target to c*target + source.
func (m *Base) MultiplyTargetAndAdd(tgt int, c field.Element, src int) error {
	return m.cols[tgt].MultiplyTargetAndAdd(c, m.cols[src])
}

// MultiplySourceAndAdd sets target to target + c*source.
func (m *Base) MultiplySourceAndAdd(tgt, src int, c field.Element) error {
	return m.cols[tgt].MultiplySourceAndAdd(m.cols[src], c)
}

// Scale multiplies the column by c.
func (m *Base) Scale(i int, c field.Element) error {
	return m.cols[i].Scale(c)
}

// ClearColumn empties the column, keeping its slot.
func (m *Base) ClearColumn(i int) {
	m.cols[i].Clear()
}

// ClearRow zeroes one entry of one column.
func (m *Base) ClearRow(i int, row uint64) {
	m.cols[i].ClearRow(row)
}

// ReorderRows applies a row permutation to every column.
func (m *Base) ReorderRows(perm map[uint64]uint64) error {
	for _, col := range m.cols {
		if err := col.Reorder(perm); err != nil {
			return err
		}
	}

	return nil
}

// RowColumns returns the indices of columns with a non-zero entry in the
// given row, in unspecified order. Requires row access.
func (m *Base) RowColumns(row uint64) ([]int, error) {
	rows := m.pool.Rows()
	if rows == nil {
		return nil, ErrRowAccessRequired
	}

	cells := rows.Row(row)
	cols := make([]int, len(cells))
	for i, c := range cells {
		cols[i] = c.Column()
	}

	return cols, nil
}

// SwapColumns exchanges two adjacent storage slots, renumbering the columns
// and keeping the row index consistent.
func (m *Base) SwapColumns(i, j int) {
	m.cols[i], m.cols[j] = m.cols[j], m.cols[i]
	m.cols[i].SetIndex(i)
	m.cols[j].SetIndex(j)
	m.dims[i], m.dims[j] = m.dims[j], m.dims[i]
}

// Close tears the matrix down: row index first, then columns and cells.
func (m *Base) Close() {
	if rows := m.pool.Rows(); rows != nil {
		for row := uint64(0); row < uint64(len(m.cols)); row++ {
			rows.RemoveRow(row)
		}
	}

	for _, col := range m.cols {
		col.Clear()
	}

	m.cols = nil
	m.dims = nil
}
