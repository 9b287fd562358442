package matrix

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
	"github.com/hupe1980/topogo/internal/unionfind"
)

// Compressed is a base matrix with column compression: columns with
// identical content share one physical column, and the equivalence classes
// are tracked in a union-find. Adding to one member of a class therefore
// updates every member. Cohomology-style workloads, which produce many
// identical columns, save both memory and additions.
type Compressed struct {
	f    field.Arithmetic
	cfg  Config
	pool *column.Pool

	uf     *unionfind.UnionFind
	reps   map[int]column.Column
	dims   map[int]int
	hashes map[int]uint64
	byHash map[uint64][]int
}

// NewCompressed creates an empty compressed matrix over f. Row access is not
// supported: a physical column stands for many logical ones, so per-row
// back-pointers would be ambiguous.
func NewCompressed(f field.Arithmetic, cfg Config) *Compressed {
	cfg.RowAccess = column.RowAccessOff

	return &Compressed{
		f:      f,
		cfg:    cfg,
		pool:   column.NewPool(nil),
		uf:     unionfind.New(),
		reps:   make(map[int]column.Column),
		dims:   make(map[int]int),
		hashes: make(map[int]uint64),
		byHash: make(map[uint64][]int),
	}
}

// NumColumns returns the logical width of the matrix.
func (m *Compressed) NumColumns() int { return m.uf.Len() }

// ClassCount returns the number of distinct column classes.
func (m *Compressed) ClassCount() int { return len(m.reps) }

// SameClass reports whether two logical columns share a physical column.
func (m *Compressed) SameClass(i, j int) bool { return m.uf.Same(i, j) }

// Column resolves a logical index to its class representative.
func (m *Compressed) Column(i int) column.Column {
	return m.reps[m.uf.Find(i)]
}

// Dimension returns the dimension recorded for the class of the column.
func (m *Compressed) Dimension(i int) int { return m.dims[m.uf.Find(i)] }

// InsertColumn appends a logical column. If an identical physical column
// already exists, no storage is created: the new index joins its class.
func (m *Compressed) InsertColumn(entries []column.Entry, dim int) (int, error) {
	for _, e := range entries {
		if e.Value == 0 {
			return 0, ErrZeroCoefficient
		}
	}

	idx := m.uf.MakeSet()
	h := hashEntries(entries)

	if rep, ok := m.findClass(h, entries); ok {
		m.uf.Union(rep, idx)
		m.relocate(rep)
		return idx, nil
	}

	col, err := column.New(m.cfg.ColumnKind, m.f, m.pool, idx, dim, entries)
	if err != nil {
		return 0, err
	}

	m.reps[idx] = col
	m.dims[idx] = dim
	m.hashes[idx] = h
	m.byHash[h] = append(m.byHash[h], idx)

	return idx, nil
}

// AddTo adds the class of src into the class of tgt, re-establishing the
// compression invariant: the updated class is detached from the content
// dictionary, modified, and re-inserted, merging with any class that now has
// identical content.
func (m *Compressed) AddTo(src, tgt int) error {
	return m.apply(tgt, func(target, source column.Column) error {
		return target.Add(source)
	}, src)
}

// MultiplyTargetAndAdd sets the class of tgt to c*tgt + src.
func (m *Compressed) MultiplyTargetAndAdd(tgt int, c field.Element, src int) error {
	return m.apply(tgt, func(target, source column.Column) error {
		return target.MultiplyTargetAndAdd(c, source)
	}, src)
}

// MultiplySourceAndAdd sets the class of tgt to tgt + c*src.
func (m *Compressed) MultiplySourceAndAdd(tgt, src int, c field.Element) error {
	return m.apply(tgt, func(target, source column.Column) error {
		return target.MultiplySourceAndAdd(source, c)
	}, src)
}

func (m *Compressed) apply(tgt int, op func(target, source column.Column) error, src int) error {
	rt := m.uf.Find(tgt)
	target := m.reps[rt]
	source := m.reps[m.uf.Find(src)]

	m.detach(rt)

	// target and source may be the same physical column; column operations
	// snapshot their operands, so this is safe.
	if err := op(target, source); err != nil {
		m.attach(rt)
		return err
	}

	h := hashEntries(target.Entries())
	m.hashes[rt] = h

	if rep, ok := m.findClass(h, target.Entries()); ok && rep != rt {
		root := m.uf.Union(rep, rt)

		// One physical column survives per class.
		if root == rt {
			m.detach(rep)
			m.reps[rep].Clear()
			delete(m.reps, rep)
			delete(m.dims, rep)
			delete(m.hashes, rep)
			m.relocate(rt)
			m.attach(rt)
		} else {
			target.Clear()
			delete(m.reps, rt)
			delete(m.dims, rt)
			delete(m.hashes, rt)
		}

		return nil
	}

	m.attach(rt)

	return nil
}

// detach removes a representative from the content dictionary.
func (m *Compressed) detach(root int) {
	h := m.hashes[root]
	bucket := m.byHash[h]
	for i, r := range bucket {
		if r == root {
			m.byHash[h] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}

	if len(m.byHash[h]) == 0 {
		delete(m.byHash, h)
	}
}

// attach re-inserts a representative into the content dictionary.
func (m *Compressed) attach(root int) {
	h := m.hashes[root]
	m.byHash[h] = append(m.byHash[h], root)
}

// relocate re-keys a representative after a union changed its root.
func (m *Compressed) relocate(oldRoot int) {
	root := m.uf.Find(oldRoot)
	if root == oldRoot {
		return
	}

	col := m.reps[oldRoot]
	m.reps[root] = col
	m.dims[root] = m.dims[oldRoot]
	h := m.hashes[oldRoot]
	m.hashes[root] = h

	delete(m.reps, oldRoot)
	delete(m.dims, oldRoot)
	delete(m.hashes, oldRoot)

	bucket := m.byHash[h]
	for i, r := range bucket {
		if r == oldRoot {
			bucket[i] = root
			break
		}
	}
}

// findClass locates a representative with the given content, comparing
// entries on hash collisions.
func (m *Compressed) findClass(h uint64, entries []column.Entry) (int, bool) {
	for _, rep := range m.byHash[h] {
		if entriesEqual(m.reps[rep].Entries(), entries) {
			return rep, true
		}
	}

	return 0, false
}

func hashEntries(entries []column.Entry) uint64 {
	h := fnv.New64a()

	var buf [12]byte
	for _, e := range entries {
		binary.LittleEndian.PutUint64(buf[:8], e.Row)
		binary.LittleEndian.PutUint32(buf[8:], uint32(e.Value))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}

func entriesEqual(a, b []column.Entry) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
