package column

import "github.com/hupe1980/topogo/field"

type listNode struct {
	cell *Cell
	next *listNode
}

// ListColumn stores cells in a singly-linked list. Merges splice nodes
// instead of relocating cells, which keeps row index traversals cheap when
// many columns share rows.
type ListColumn struct {
	columnBase
	head *listNode
	tail *listNode
	size int
}

func newListColumn(f field.Arithmetic, pool *Pool, index, dim int) *ListColumn {
	return &ListColumn{columnBase: columnBase{f: f, pool: pool, index: index, dim: dim}}
}

func (c *ListColumn) SetIndex(i int) {
	c.index = i

	rows := c.pool.Rows()
	for n := c.head; n != nil; n = n.next {
		if rows != nil {
			rows.Unlink(n.cell)
		}
		n.cell.col = i
		if rows != nil {
			rows.Link(n.cell)
		}
	}
}

func (c *ListColumn) IsEmpty() bool { return c.size == 0 }
func (c *ListColumn) Size() int     { return c.size }

func (c *ListColumn) IsNonZero(row uint64) bool {
	_, ok := c.ValueAt(row)
	return ok
}

func (c *ListColumn) ValueAt(row uint64) (field.Element, bool) {
	for n := c.head; n != nil && n.cell.row <= row; n = n.next {
		if n.cell.row == row {
			return n.cell.value, true
		}
	}

	return 0, false
}

func (c *ListColumn) Pivot() (uint64, bool) {
	if c.tail == nil {
		return 0, false
	}

	return c.tail.cell.row, true
}

func (c *ListColumn) PivotValue() field.Element {
	if c.tail == nil {
		return 0
	}

	return c.tail.cell.value
}

func (c *ListColumn) Entries() []Entry {
	entries := make([]Entry, 0, c.size)
	for n := c.head; n != nil; n = n.next {
		entries = append(entries, Entry{Row: n.cell.row, Value: n.cell.value})
	}

	return entries
}

func (c *ListColumn) Content(length uint64) []field.Element {
	return content(c.Entries(), length)
}

func (c *ListColumn) Add(other Column) error {
	return c.MultiplySourceAndAdd(other, 1)
}

func (c *ListColumn) MultiplyTargetAndAdd(v field.Element, other Column) error {
	c.Assign(merge(c.f, v, c.Entries(), 1, other.Entries()))
	return nil
}

func (c *ListColumn) MultiplySourceAndAdd(other Column, v field.Element) error {
	c.Assign(merge(c.f, 1, c.Entries(), v, other.Entries()))
	return nil
}

func (c *ListColumn) Scale(v field.Element) error {
	if v == 0 {
		c.Clear()
		return nil
	}

	for n := c.head; n != nil; n = n.next {
		n.cell.value = c.f.Mul(n.cell.value, v)
	}

	return nil
}

// Assign splices the list to match the given sorted entries, reusing the
// cells of surviving rows in place.
func (c *ListColumn) Assign(entries []Entry) {
	var head, tail *listNode
	size := 0

	appendNode := func(n *listNode) {
		n.next = nil
		if tail == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
		size++
	}

	cur := c.head
	for _, e := range entries {
		for cur != nil && cur.cell.row < e.Row {
			next := cur.next
			c.pool.Destroy(cur.cell)
			cur = next
		}

		if cur != nil && cur.cell.row == e.Row {
			cur.cell.value = e.Value
			next := cur.next
			appendNode(cur)
			cur = next
		} else {
			appendNode(&listNode{cell: c.pool.Construct(e.Row, e.Value, c.index)})
		}
	}

	for cur != nil {
		next := cur.next
		c.pool.Destroy(cur.cell)
		cur = next
	}

	c.head, c.tail, c.size = head, tail, size
}

func (c *ListColumn) SetRow(row uint64, v field.Element) {
	c.Assign(setEntry(c.f, c.Entries(), row, v))
}

func (c *ListColumn) Reorder(perm map[uint64]uint64) error {
	c.Assign(reorderEntries(c.Entries(), perm))
	return nil
}

func (c *ListColumn) ClearRow(row uint64) {
	c.SetRow(row, 0)
}

func (c *ListColumn) Clear() {
	for n := c.head; n != nil; n = n.next {
		c.pool.Destroy(n.cell)
	}

	c.head, c.tail, c.size = nil, nil, 0
}
