package column

import (
	"container/heap"

	"github.com/hupe1980/topogo/field"
)

// entryHeap is a max-heap of entries ordered by row. Duplicate rows are
// allowed; reads combine them.
type entryHeap []Entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].Row > h[j].Row }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)         { *h = append(*h, x.(Entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]

	return e
}

// HeapColumn buffers additions lazily: entries are pushed without merging
// and combined only when the pivot or the content is read. Amortized wins
// when many additions happen between reads.
type HeapColumn struct {
	columnBase
	h     entryHeap
	dirty bool
}

func newHeapColumn(f field.Arithmetic, index, dim int) *HeapColumn {
	return &HeapColumn{columnBase: columnBase{f: f, index: index, dim: dim}}
}

// compact pops everything, combining duplicate rows and dropping zeros.
func (c *HeapColumn) compact() {
	if !c.dirty {
		return
	}

	combined := make(entryHeap, 0, len(c.h))
	for c.h.Len() > 0 {
		e := heap.Pop(&c.h).(Entry)
		for c.h.Len() > 0 && c.h[0].Row == e.Row {
			dup := heap.Pop(&c.h).(Entry)
			e.Value = c.f.Add(e.Value, dup.Value)
		}
		if e.Value != 0 {
			combined = append(combined, e)
		}
	}

	// Popped in decreasing row order; a reversed sorted slice is a valid heap.
	for i, j := 0, len(combined)-1; i < j; i, j = i+1, j-1 {
		combined[i], combined[j] = combined[j], combined[i]
	}

	c.h = combined
	c.dirty = false
}

func (c *HeapColumn) SetIndex(i int) { c.index = i }

func (c *HeapColumn) IsEmpty() bool {
	c.compact()
	return len(c.h) == 0
}

func (c *HeapColumn) Size() int {
	c.compact()
	return len(c.h)
}

func (c *HeapColumn) IsNonZero(row uint64) bool {
	_, ok := c.ValueAt(row)
	return ok
}

func (c *HeapColumn) ValueAt(row uint64) (field.Element, bool) {
	c.compact()
	for _, e := range c.h {
		if e.Row == row {
			return e.Value, true
		}
	}

	return 0, false
}

func (c *HeapColumn) Pivot() (uint64, bool) {
	c.compact()
	if len(c.h) == 0 {
		return 0, false
	}

	return c.h[len(c.h)-1].Row, true
}

func (c *HeapColumn) PivotValue() field.Element {
	c.compact()
	if len(c.h) == 0 {
		return 0
	}

	return c.h[len(c.h)-1].Value
}

func (c *HeapColumn) Entries() []Entry {
	c.compact()
	entries := make([]Entry, len(c.h))
	copy(entries, c.h)

	return entries
}

func (c *HeapColumn) Content(length uint64) []field.Element {
	return content(c.Entries(), length)
}

func (c *HeapColumn) Add(other Column) error {
	return c.MultiplySourceAndAdd(other, 1)
}

func (c *HeapColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	src := other.Entries()

	if err := c.Scale(v); err != nil {
		return err
	}

	c.push(src, 1)

	return nil
}

func (c *HeapColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	if v == 0 {
		return nil
	}

	c.push(other.Entries(), v)

	return nil
}

// push lazily appends scaled entries and restores the heap property.
func (c *HeapColumn) push(src []Entry, v field.Element) {
	for _, e := range src {
		val := c.f.Mul(e.Value, v)
		if val != 0 {
			c.h = append(c.h, Entry{Row: e.Row, Value: val})
		}
	}

	heap.Init(&c.h)
	c.dirty = true
}

func (c *HeapColumn) Scale(v field.Element) error {
	if v == 0 {
		c.Clear()
		return nil
	}

	for i := range c.h {
		c.h[i].Value = c.f.Mul(c.h[i].Value, v)
	}

	return nil
}

func (c *HeapColumn) Assign(entries []Entry) {
	c.h = append(c.h[:0], entries...)
	c.dirty = false
}

func (c *HeapColumn) SetRow(row uint64, v field.Element) {
	c.compact()
	c.h = entryHeap(setEntry(c.f, []Entry(c.h), row, v))
}

func (c *HeapColumn) Reorder(perm map[uint64]uint64) error {
	c.Assign(reorderEntries(c.Entries(), perm))
	return nil
}

func (c *HeapColumn) ClearRow(row uint64) {
	c.SetRow(row, 0)
}

func (c *HeapColumn) Clear() {
	c.h = c.h[:0]
	c.dirty = false
}
