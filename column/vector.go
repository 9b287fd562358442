package column

import (
	"sort"

	"github.com/hupe1980/topogo/field"
)

// VectorColumn stores cells in a sorted slice. Additions are linear merges
// into a fresh buffer that is swapped in at the end; surviving cells keep
// their identity so row index back-pointers stay valid.
type VectorColumn struct {
	columnBase
	cells []*Cell
}

func newVectorColumn(f field.Arithmetic, pool *Pool, index, dim int) *VectorColumn {
	return &VectorColumn{columnBase: columnBase{f: f, pool: pool, index: index, dim: dim}}
}

func (c *VectorColumn) SetIndex(i int) {
	c.index = i
	relinkCells(c.pool, c.cells, i)
}

func (c *VectorColumn) IsEmpty() bool { return len(c.cells) == 0 }
func (c *VectorColumn) Size() int     { return len(c.cells) }

func (c *VectorColumn) IsNonZero(row uint64) bool {
	_, ok := c.ValueAt(row)
	return ok
}

func (c *VectorColumn) ValueAt(row uint64) (field.Element, bool) {
	i := sort.Search(len(c.cells), func(i int) bool { return c.cells[i].row >= row })
	if i < len(c.cells) && c.cells[i].row == row {
		return c.cells[i].value, true
	}

	return 0, false
}

func (c *VectorColumn) Pivot() (uint64, bool) {
	if len(c.cells) == 0 {
		return 0, false
	}

	return c.cells[len(c.cells)-1].row, true
}

func (c *VectorColumn) PivotValue() field.Element {
	if len(c.cells) == 0 {
		return 0
	}

	return c.cells[len(c.cells)-1].value
}

func (c *VectorColumn) Entries() []Entry {
	entries := make([]Entry, len(c.cells))
	for i, cell := range c.cells {
		entries[i] = Entry{Row: cell.row, Value: cell.value}
	}

	return entries
}

func (c *VectorColumn) Content(length uint64) []field.Element {
	return content(c.Entries(), length)
}

func (c *VectorColumn) Add(other Column) error {
	return c.MultiplySourceAndAdd(other, 1)
}

func (c *VectorColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	c.Assign(merge(c.f, v, c.Entries(), 1, other.Entries()))
	return nil
}

func (c *VectorColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	c.Assign(merge(c.f, 1, c.Entries(), v, other.Entries()))
	return nil
}

func (c *VectorColumn) Scale(v field.Element) error {
	if v == 0 {
		c.Clear()
		return nil
	}

	for _, cell := range c.cells {
		cell.value = c.f.Mul(cell.value, v)
	}

	return nil
}

func (c *VectorColumn) Assign(entries []Entry) {
	c.cells = rebuildCells(&c.columnBase, c.cells, entries)
}

func (c *VectorColumn) SetRow(row uint64, v field.Element) {
	i := sort.Search(len(c.cells), func(i int) bool { return c.cells[i].row >= row })

	switch {
	case i < len(c.cells) && c.cells[i].row == row:
		if v == 0 {
			c.pool.Destroy(c.cells[i])
			c.cells = append(c.cells[:i], c.cells[i+1:]...)
			return
		}
		c.cells[i].value = v
	case v == 0:
	default:
		c.cells = append(c.cells, nil)
		copy(c.cells[i+1:], c.cells[i:])
		c.cells[i] = c.pool.Construct(row, v, c.index)
	}
}

func (c *VectorColumn) Reorder(perm map[uint64]uint64) error {
	c.Assign(reorderEntries(c.Entries(), perm))
	return nil
}

func (c *VectorColumn) ClearRow(row uint64) {
	c.SetRow(row, 0)
}

func (c *VectorColumn) Clear() {
	for _, cell := range c.cells {
		c.pool.Destroy(cell)
	}

	c.cells = c.cells[:0]
}

// rebuildCells replaces old with the given sorted entries, reusing cells
// whose row survives and destroying the rest.
func rebuildCells(b *columnBase, old []*Cell, entries []Entry) []*Cell {
	fresh := make([]*Cell, 0, len(entries))
	i := 0

	for _, e := range entries {
		for i < len(old) && old[i].row < e.Row {
			b.pool.Destroy(old[i])
			i++
		}

		if i < len(old) && old[i].row == e.Row {
			old[i].value = e.Value
			fresh = append(fresh, old[i])
			i++
		} else {
			fresh = append(fresh, b.pool.Construct(e.Row, e.Value, b.index))
		}
	}

	for ; i < len(old); i++ {
		b.pool.Destroy(old[i])
	}

	return fresh
}

// relinkCells rebinds cells to a new column index, keeping the row index
// consistent.
func relinkCells(pool *Pool, cells []*Cell, index int) {
	rows := pool.Rows()
	for _, cell := range cells {
		if rows != nil {
			rows.Unlink(cell)
		}
		cell.col = index
		if rows != nil {
			rows.Link(cell)
		}
	}
}
