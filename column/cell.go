package column

import (
	"sync"

	"github.com/hupe1980/topogo/field"
)

// Cell is one non-zero matrix entry. When row access is enabled the cell is
// also a node of an intrusive per-row list; prev/next are managed by the row
// index and must not be touched elsewhere.
type Cell struct {
	row   uint64
	value field.Element
	col   int

	prev, next *Cell
}

// Row returns the row index of the cell.
func (c *Cell) Row() uint64 { return c.row }

// Value returns the field value of the cell. Never zero.
func (c *Cell) Value() field.Element { return c.value }

// Column returns the index of the column owning the cell.
func (c *Cell) Column() int { return c.col }

// Pool owns the cells of one matrix. Cells are recycled through a sync.Pool,
// so concurrent chunk workers get per-P caches without extra locking. If a
// row index is attached, construction links the cell into it and destruction
// unlinks first.
type Pool struct {
	cells sync.Pool
	rows  RowIndex
}

// NewPool creates a cell pool. rows may be nil when row access is off.
func NewPool(rows RowIndex) *Pool {
	return &Pool{
		cells: sync.Pool{New: func() any { return new(Cell) }},
		rows:  rows,
	}
}

// Rows returns the attached row index, or nil.
func (p *Pool) Rows() RowIndex { return p.rows }

// EnsureRow makes sure the row index can track the given row.
func (p *Pool) EnsureRow(row uint64) error {
	if p.rows == nil {
		return nil
	}

	return p.rows.EnsureRow(row)
}

// Construct creates a cell for the given entry and links it into the row
// index if one is attached.
func (p *Pool) Construct(row uint64, value field.Element, col int) *Cell {
	c, _ := p.cells.Get().(*Cell)
	c.row, c.value, c.col = row, value, col
	c.prev, c.next = nil, nil

	if p.rows != nil {
		p.rows.Link(c)
	}

	return c
}

// Destroy unlinks the cell from the row index and returns it to the pool.
func (p *Pool) Destroy(c *Cell) {
	if p.rows != nil {
		p.rows.Unlink(c)
	}

	*c = Cell{}
	p.cells.Put(c)
}
