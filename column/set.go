package column

import (
	"sort"

	"github.com/hupe1980/topogo/field"
)

// SetColumn stores cells in an unordered map with O(1) membership and
// per-entry updates. The pivot is recomputed lazily behind a dirty flag.
// Used for odd characteristics; Z/2 gets the bitmap specialization instead.
type SetColumn struct {
	columnBase
	cells map[uint64]*Cell

	pivot    uint64
	hasPivot bool
	dirty    bool
}

func newSetColumn(f field.Arithmetic, pool *Pool, index, dim int) *SetColumn {
	return &SetColumn{
		columnBase: columnBase{f: f, pool: pool, index: index, dim: dim},
		cells:      make(map[uint64]*Cell),
	}
}

func (c *SetColumn) SetIndex(i int) {
	c.index = i

	rows := c.pool.Rows()
	for _, cell := range c.cells {
		if rows != nil {
			rows.Unlink(cell)
		}
		cell.col = i
		if rows != nil {
			rows.Link(cell)
		}
	}
}

func (c *SetColumn) IsEmpty() bool { return len(c.cells) == 0 }
func (c *SetColumn) Size() int     { return len(c.cells) }

func (c *SetColumn) IsNonZero(row uint64) bool {
	_, ok := c.cells[row]
	return ok
}

func (c *SetColumn) ValueAt(row uint64) (field.Element, bool) {
	cell, ok := c.cells[row]
	if !ok {
		return 0, false
	}

	return cell.value, true
}

func (c *SetColumn) Pivot() (uint64, bool) {
	if len(c.cells) == 0 {
		return 0, false
	}

	if c.dirty {
		var max uint64
		for row := range c.cells {
			if row > max {
				max = row
			}
		}
		c.pivot, c.hasPivot, c.dirty = max, true, false
	}

	return c.pivot, c.hasPivot
}

func (c *SetColumn) PivotValue() field.Element {
	row, ok := c.Pivot()
	if !ok {
		return 0
	}

	return c.cells[row].value
}

func (c *SetColumn) Entries() []Entry {
	entries := make([]Entry, 0, len(c.cells))
	for row, cell := range c.cells {
		entries = append(entries, Entry{Row: row, Value: cell.value})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Row < entries[j].Row })

	return entries
}

func (c *SetColumn) Content(length uint64) []field.Element {
	return content(c.Entries(), length)
}

func (c *SetColumn) Add(other Column) error {
	return c.MultiplySourceAndAdd(other, 1)
}

func (c *SetColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	// Snapshot before scaling: other may alias this column.
	src := other.Entries()

	if err := c.Scale(v); err != nil {
		return err
	}

	for _, e := range src {
		c.SetRow(e.Row, c.f.Add(e.Value, c.valueOrZero(e.Row)))
	}

	return nil
}

func (c *SetColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	if v == 0 {
		return nil
	}

	// Snapshot first: other may alias this column under compression.
	for _, e := range other.Entries() {
		c.SetRow(e.Row, c.f.MulAdd(e.Value, v, c.valueOrZero(e.Row)))
	}

	return nil
}

func (c *SetColumn) valueOrZero(row uint64) field.Element {
	if cell, ok := c.cells[row]; ok {
		return cell.value
	}

	return 0
}

func (c *SetColumn) Scale(v field.Element) error {
	if v == 0 {
		c.Clear()
		return nil
	}

	for _, cell := range c.cells {
		cell.value = c.f.Mul(cell.value, v)
	}

	return nil
}

func (c *SetColumn) Assign(entries []Entry) {
	c.Clear()
	for _, e := range entries {
		c.cells[e.Row] = c.pool.Construct(e.Row, e.Value, c.index)
	}

	c.dirty = true
	c.hasPivot = false
}

func (c *SetColumn) SetRow(row uint64, v field.Element) {
	if cell, ok := c.cells[row]; ok {
		if v == 0 {
			c.pool.Destroy(cell)
			delete(c.cells, row)
			if c.hasPivot && row == c.pivot {
				c.dirty = true
			}
			return
		}
		cell.value = v
		return
	}

	if v == 0 {
		return
	}

	c.cells[row] = c.pool.Construct(row, v, c.index)
	if !c.dirty && (!c.hasPivot || row > c.pivot) {
		c.pivot, c.hasPivot = row, true
	}
}

func (c *SetColumn) Reorder(perm map[uint64]uint64) error {
	c.Assign(reorderEntries(c.Entries(), perm))
	return nil
}

func (c *SetColumn) ClearRow(row uint64) {
	c.SetRow(row, 0)
}

func (c *SetColumn) Clear() {
	for _, cell := range c.cells {
		c.pool.Destroy(cell)
	}

	c.cells = make(map[uint64]*Cell)
	c.hasPivot, c.dirty = false, false
}
