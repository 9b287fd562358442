package matrix

// PivotTable maps pivot rows to the reduced column owning them. At the end
// of a reduction the mapping is a partial injection from rows to columns.
type PivotTable struct {
	byRow map[uint64]int
}

// NewPivotTable creates an empty table.
func NewPivotTable() *PivotTable {
	return &PivotTable{byRow: make(map[uint64]int)}
}

// Lookup returns the column owning the given pivot row.
func (t *PivotTable) Lookup(row uint64) (int, bool) {
	col, ok := t.byRow[row]
	return col, ok
}

// Set records the column owning the given pivot row.
func (t *PivotTable) Set(row uint64, col int) {
	t.byRow[row] = col
}

// Remove forgets the owner of the given row.
func (t *PivotTable) Remove(row uint64) {
	delete(t.byRow, row)
}

// Len returns the number of recorded pivots.
func (t *PivotTable) Len() int { return len(t.byRow) }

// ForEach visits every (row, column) pair.
func (t *PivotTable) ForEach(fn func(row uint64, col int)) {
	for row, col := range t.byRow {
		fn(row, col)
	}
}

// Injective reports whether no two rows map to the same column.
func (t *PivotTable) Injective() bool {
	seen := make(map[int]struct{}, len(t.byRow))
	for _, col := range t.byRow {
		if _, dup := seen[col]; dup {
			return false
		}
		seen[col] = struct{}{}
	}

	return true
}

// IndexPair is a persistence pair in column indices. Death is -1 for
// essential classes. Dim is the dimension of the birth simplex.
type IndexPair struct {
	Birth int
	Death int
	Dim   int
}

// Essential reports whether the class never dies.
func (p IndexPair) Essential() bool { return p.Death < 0 }
