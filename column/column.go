package column

import (
	"sort"

	"github.com/hupe1980/topogo/field"
)

// Entry is one non-zero coordinate of a column, detached from cell storage.
type Entry struct {
	Row   uint64
	Value field.Element
}

// Kind selects the column container variant.
type Kind int

const (
	// KindVector is a sorted slice of cell pointers. The default.
	KindVector Kind = iota
	// KindList is a singly-linked list merged without relocating cells.
	KindList
	// KindSet is an unordered set with a lazily computed pivot. Over Z/2 it
	// is backed by a roaring bitmap.
	KindSet
	// KindHeap buffers additions on a heap and compacts on read.
	KindHeap
	// KindOrdered is an ordered container with in-place edits.
	KindOrdered
)

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindHeap:
		return "heap"
	case KindOrdered:
		return "ordered"
	default:
		return "unknown"
	}
}

// SupportsRowAccess reports whether the kind stores cells and can therefore
// participate in a row index.
func (k Kind) SupportsRowAccess(characteristic uint32) bool {
	switch k {
	case KindVector, KindList, KindOrdered:
		return true
	case KindSet:
		return characteristic != 2 // the Z/2 bitmap stores no cells
	default:
		return false
	}
}

// Column is the shared operation surface of all container variants.
//
// Invariants: iteration yields strictly increasing rows, no stored value is
// zero, and Pivot returns the largest stored row. Binary operations snapshot
// their operands first, so target and source may alias the same physical
// column.
type Column interface {
	// Index returns the position of the column in its matrix.
	Index() int
	// SetIndex renumbers the column, rebinding its cells in the row index.
	SetIndex(i int)
	// Dimension returns the simplicial dimension attached to the column.
	Dimension() int

	IsEmpty() bool
	Size() int
	IsNonZero(row uint64) bool
	// ValueAt returns the stored value at the row, if any.
	ValueAt(row uint64) (field.Element, bool)
	// Pivot returns the largest stored row; ok is false for empty columns.
	Pivot() (uint64, bool)
	// PivotValue returns the value at the pivot, or zero if empty.
	PivotValue() field.Element
	// Entries returns the content as a sorted snapshot.
	Entries() []Entry
	// Content returns the dense expansion of the first length rows.
	Content(length uint64) []field.Element

	// Add sets the column to itself plus other.
	Add(other Column) error
	// Scale multiplies every value by c; c = 0 empties the column.
	Scale(c field.Element) error
	// MultiplyTargetAndAdd sets the column to c*self + other.
	MultiplyTargetAndAdd(c field.Element, other Column) error
	// MultiplySourceAndAdd sets the column to self + c*other.
	MultiplySourceAndAdd(other Column, c field.Element) error

	// Assign replaces the content with the given sorted entries.
	Assign(entries []Entry)
	// SetRow sets a single coordinate; a zero value clears it.
	SetRow(row uint64, v field.Element)
	// Reorder applies a row permutation and restores sorted order.
	Reorder(perm map[uint64]uint64) error
	// ClearRow zeroes a single coordinate.
	ClearRow(row uint64)
	// Clear empties the column.
	Clear()
}

// New constructs a column of the given kind over f. entries must be sorted by
// strictly increasing row with no zero values; the slice is not retained.
// pool may be shared by many columns and supplies the row index, if any.
func New(kind Kind, f field.Arithmetic, pool *Pool, index, dim int, entries []Entry) (Column, error) {
	if pool != nil && pool.Rows() != nil && !kind.SupportsRowAccess(f.Characteristic()) {
		return nil, &ErrRowAccessUnsupported{Kind: kind}
	}

	if pool == nil {
		pool = NewPool(nil)
	}

	switch kind {
	case KindList:
		c := newListColumn(f, pool, index, dim)
		c.Assign(entries)
		return c, nil
	case KindSet:
		if f.Characteristic() == 2 {
			c := newBitmapColumn(f, index, dim)
			c.Assign(entries)
			return c, nil
		}
		c := newSetColumn(f, pool, index, dim)
		c.Assign(entries)
		return c, nil
	case KindHeap:
		c := newHeapColumn(f, index, dim)
		c.Assign(entries)
		return c, nil
	case KindOrdered:
		c := newOrderedColumn(f, pool, index, dim)
		c.Assign(entries)
		return c, nil
	default:
		c := newVectorColumn(f, pool, index, dim)
		c.Assign(entries)
		return c, nil
	}
}

// columnBase carries the state shared by every variant.
type columnBase struct {
	f     field.Arithmetic
	pool  *Pool
	index int
	dim   int
}

func (b *columnBase) Index() int     { return b.index }
func (b *columnBase) Dimension() int { return b.dim }

// merge computes a*x + b*y over f for sorted entry slices, dropping zeros.
// Neither input is modified.
func merge(f field.Arithmetic, a field.Element, x []Entry, b field.Element, y []Entry) []Entry {
	out := make([]Entry, 0, len(x)+len(y))
	i, j := 0, 0

	for i < len(x) && j < len(y) {
		switch {
		case x[i].Row < y[j].Row:
			if v := f.Mul(a, x[i].Value); v != 0 {
				out = append(out, Entry{Row: x[i].Row, Value: v})
			}
			i++
		case x[i].Row > y[j].Row:
			if v := f.Mul(b, y[j].Value); v != 0 {
				out = append(out, Entry{Row: y[j].Row, Value: v})
			}
			j++
		default:
			if v := f.Add(f.Mul(a, x[i].Value), f.Mul(b, y[j].Value)); v != 0 {
				out = append(out, Entry{Row: x[i].Row, Value: v})
			}
			i++
			j++
		}
	}

	for ; i < len(x); i++ {
		if v := f.Mul(a, x[i].Value); v != 0 {
			out = append(out, Entry{Row: x[i].Row, Value: v})
		}
	}

	for ; j < len(y); j++ {
		if v := f.Mul(b, y[j].Value); v != 0 {
			out = append(out, Entry{Row: y[j].Row, Value: v})
		}
	}

	return out
}

// content densely expands sorted entries over the first length rows.
func content(entries []Entry, length uint64) []field.Element {
	dense := make([]field.Element, length)
	for _, e := range entries {
		if e.Row < length {
			dense[e.Row] = e.Value
		}
	}

	return dense
}

// reorderEntries applies a row permutation and re-sorts. Rows missing from
// the permutation keep their index.
func reorderEntries(entries []Entry, perm map[uint64]uint64) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		row := e.Row
		if mapped, ok := perm[row]; ok {
			row = mapped
		}
		out[i] = Entry{Row: row, Value: e.Value}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })

	return out
}

// setEntry updates a sorted entry slice at one row, in place.
func setEntry(f field.Arithmetic, entries []Entry, row uint64, v field.Element) []Entry {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].Row >= row })

	switch {
	case i < len(entries) && entries[i].Row == row:
		if v == 0 {
			return append(entries[:i], entries[i+1:]...)
		}
		entries[i].Value = v
		return entries
	case v == 0:
		return entries
	default:
		entries = append(entries, Entry{})
		copy(entries[i+1:], entries[i:])
		entries[i] = Entry{Row: row, Value: v}
		return entries
	}
}
