package column

import "sort"

// RowAccess selects the inverted row index variant of a matrix.
type RowAccess int

const (
	// RowAccessOff disables the row index.
	RowAccessOff RowAccess = iota
	// RowAccessIntrusive threads cells into per-row doubly-linked lists.
	// Cheapest; rows enumerate in unspecified order.
	RowAccessIntrusive
	// RowAccessOrdered keeps rows traversable in column order.
	RowAccessOrdered
)

func (a RowAccess) String() string {
	switch a {
	case RowAccessOff:
		return "off"
	case RowAccessIntrusive:
		return "intrusive"
	case RowAccessOrdered:
		return "ordered"
	default:
		return "unknown"
	}
}

// RowIndex enumerates, for a given row, all cells of columns with a non-zero
// entry there. It is kept consistent with column edits by the cell pool.
// Implementations are not safe for concurrent use.
type RowIndex interface {
	// Link registers a freshly constructed cell.
	Link(c *Cell)
	// Unlink removes a cell in O(1) given only the cell.
	Unlink(c *Cell)
	// Row returns a snapshot of the cells stored in the given row.
	Row(row uint64) []*Cell
	// EnsureRow grows the index to track the given row, or reports
	// ErrCapacityExceeded when the index has a fixed bound.
	EnsureRow(row uint64) error
	// RemoveRow drops the bookkeeping for a row. The cells themselves are
	// owned by their columns and are not destroyed here.
	RemoveRow(row uint64)
}

// NewRowIndex builds the row index for the given access mode. capacity bounds
// the number of rows when positive; zero means grow on demand. Returns nil
// for RowAccessOff.
func NewRowIndex(access RowAccess, capacity int) RowIndex {
	switch access {
	case RowAccessIntrusive:
		return &intrusiveRows{capacity: capacity}
	case RowAccessOrdered:
		return &orderedRows{capacity: capacity, rows: make(map[uint64]map[int]*Cell)}
	default:
		return nil
	}
}

// intrusiveRows keeps one doubly-linked list head per row. A cell is its own
// list node, so unlink is pointer surgery only.
type intrusiveRows struct {
	heads    []*Cell
	capacity int
}

func (r *intrusiveRows) EnsureRow(row uint64) error {
	if row < uint64(len(r.heads)) {
		return nil
	}

	if r.capacity > 0 && row >= uint64(r.capacity) {
		return ErrCapacityExceeded
	}

	grown := make([]*Cell, row+1)
	copy(grown, r.heads)
	r.heads = grown

	return nil
}

func (r *intrusiveRows) Link(c *Cell) {
	if err := r.EnsureRow(c.row); err != nil {
		// The owning matrix checks EnsureRow before constructing cells.
		panic(err)
	}

	head := r.heads[c.row]
	c.next = head
	if head != nil {
		head.prev = c
	}

	r.heads[c.row] = c
}

func (r *intrusiveRows) Unlink(c *Cell) {
	if c.prev != nil {
		c.prev.next = c.next
	} else if c.row < uint64(len(r.heads)) && r.heads[c.row] == c {
		r.heads[c.row] = c.next
	}

	if c.next != nil {
		c.next.prev = c.prev
	}

	c.prev, c.next = nil, nil
}

func (r *intrusiveRows) Row(row uint64) []*Cell {
	if row >= uint64(len(r.heads)) {
		return nil
	}

	var cells []*Cell
	for c := r.heads[row]; c != nil; c = c.next {
		cells = append(cells, c)
	}

	return cells
}

func (r *intrusiveRows) RemoveRow(row uint64) {
	if row < uint64(len(r.heads)) {
		r.heads[row] = nil
	}
}

// orderedRows keeps per-row cell sets keyed by column index; snapshots come
// back sorted by column so rows can be traversed in column order.
type orderedRows struct {
	rows     map[uint64]map[int]*Cell
	capacity int
}

func (r *orderedRows) EnsureRow(row uint64) error {
	if r.capacity > 0 && row >= uint64(r.capacity) {
		return ErrCapacityExceeded
	}

	return nil
}

func (r *orderedRows) Link(c *Cell) {
	set := r.rows[c.row]
	if set == nil {
		set = make(map[int]*Cell)
		r.rows[c.row] = set
	}

	set[c.col] = c
}

func (r *orderedRows) Unlink(c *Cell) {
	// Guard against stale slots: during a column transposition two cells can
	// transiently share a column index.
	if set := r.rows[c.row]; set != nil && set[c.col] == c {
		delete(set, c.col)
		if len(set) == 0 {
			delete(r.rows, c.row)
		}
	}
}

func (r *orderedRows) Row(row uint64) []*Cell {
	set := r.rows[row]
	if len(set) == 0 {
		return nil
	}

	cells := make([]*Cell, 0, len(set))
	for _, c := range set {
		cells = append(cells, c)
	}

	sort.Slice(cells, func(i, j int) bool { return cells[i].col < cells[j].col })

	return cells
}

func (r *orderedRows) RemoveRow(row uint64) {
	delete(r.rows, row)
}
