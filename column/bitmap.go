package column

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/topogo/field"
)

// BitmapColumn is the Z/2 specialization of KindSet: values are implicit
// (presence = 1) and addition is the symmetric difference of two roaring
// bitmaps. It stores no cells and therefore cannot join a row index.
type BitmapColumn struct {
	columnBase
	rows *roaring64.Bitmap
}

func newBitmapColumn(f field.Arithmetic, index, dim int) *BitmapColumn {
	return &BitmapColumn{
		columnBase: columnBase{f: f, index: index, dim: dim},
		rows:       roaring64.New(),
	}
}

func (c *BitmapColumn) SetIndex(i int) { c.index = i }

func (c *BitmapColumn) IsEmpty() bool { return c.rows.IsEmpty() }
func (c *BitmapColumn) Size() int     { return int(c.rows.GetCardinality()) }

func (c *BitmapColumn) IsNonZero(row uint64) bool { return c.rows.Contains(row) }

func (c *BitmapColumn) ValueAt(row uint64) (field.Element, bool) {
	if c.rows.Contains(row) {
		return 1, true
	}

	return 0, false
}

func (c *BitmapColumn) Pivot() (uint64, bool) {
	if c.rows.IsEmpty() {
		return 0, false
	}

	return c.rows.Maximum(), true
}

func (c *BitmapColumn) PivotValue() field.Element {
	if c.rows.IsEmpty() {
		return 0
	}

	return 1
}

func (c *BitmapColumn) Entries() []Entry {
	entries := make([]Entry, 0, c.rows.GetCardinality())
	it := c.rows.Iterator()
	for it.HasNext() {
		entries = append(entries, Entry{Row: it.Next(), Value: 1})
	}

	return entries
}

func (c *BitmapColumn) Content(length uint64) []field.Element {
	return content(c.Entries(), length)
}

func (c *BitmapColumn) Add(other Column) error {
	if b, ok := other.(*BitmapColumn); ok {
		if b == c {
			// Doubling over Z/2 empties the column.
			c.rows = roaring64.New()
			return nil
		}
		c.rows.Xor(b.rows)
		return nil
	}

	for _, e := range other.Entries() {
		if c.rows.Contains(e.Row) {
			c.rows.Remove(e.Row)
		} else {
			c.rows.Add(e.Row)
		}
	}

	return nil
}

func (c *BitmapColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	if v == 0 {
		src := other.Entries()
		c.rows = roaring64.New()
		for _, e := range src {
			c.rows.Add(e.Row)
		}
		return nil
	}

	return c.Add(other)
}

func (c *BitmapColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	if v == 0 {
		return nil
	}

	return c.Add(other)
}

func (c *BitmapColumn) Scale(v field.Element) error {
	if v == 0 {
		c.Clear()
	}

	return nil
}

func (c *BitmapColumn) Assign(entries []Entry) {
	c.rows = roaring64.New()
	for _, e := range entries {
		c.rows.Add(e.Row)
	}
}

func (c *BitmapColumn) SetRow(row uint64, v field.Element) {
	if v == 0 {
		c.rows.Remove(row)
	} else {
		c.rows.Add(row)
	}
}

func (c *BitmapColumn) Reorder(perm map[uint64]uint64) error {
	fresh := roaring64.New()
	it := c.rows.Iterator()
	for it.HasNext() {
		row := it.Next()
		if mapped, ok := perm[row]; ok {
			row = mapped
		}
		fresh.Add(row)
	}

	c.rows = fresh

	return nil
}

func (c *BitmapColumn) ClearRow(row uint64) {
	c.rows.Remove(row)
}

func (c *BitmapColumn) Clear() {
	c.rows = roaring64.New()
}
