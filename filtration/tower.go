package filtration

import (
	"sort"
	"strconv"
)

// Tower converts a simplicial tower into an equivalent filtration stream.
// A tower interleaves simplex insertions with vertex contractions; the
// converter realizes a contraction of v onto u by inserting the cone of
// the star of v over u, after which v is retired. The emitted records form
// an ordinary filtration with the same persistent homology.
type Tower struct {
	records []Record
	next    uint64
	last    float64

	ids     map[string]uint64
	active  map[string][]uint64
	stars   map[uint64]map[string]struct{}
	retired map[uint64]bool
}

// NewTower creates an empty tower.
func NewTower() *Tower {
	return &Tower{
		ids:     make(map[string]uint64),
		active:  make(map[string][]uint64),
		stars:   make(map[uint64]map[string]struct{}),
		retired: make(map[uint64]bool),
	}
}

// AddInsertion inserts the simplex with the given vertices at the given
// value. Missing faces are inserted first, at the same value.
func (t *Tower) AddInsertion(vertices []uint64, value float64) error {
	if err := t.advance(value); err != nil {
		return err
	}

	verts := append([]uint64(nil), vertices...)
	sort.Slice(verts, func(i, j int) bool { return verts[i] < verts[j] })

	for i, v := range verts {
		if i > 0 && verts[i-1] == v {
			return &ErrInvalidRecord{ID: t.next, Reason: "duplicate vertices in simplex"}
		}
		if t.retired[v] {
			return &ErrRetiredVertex{Vertex: v}
		}
	}

	_, err := t.insert(verts, value)

	return err
}

// AddContraction identifies vertex v with vertex u at the given value: the
// star of v is coned over u and v becomes unusable.
func (t *Tower) AddContraction(u, v uint64, value float64) error {
	if err := t.advance(value); err != nil {
		return err
	}

	if u == v {
		return &ErrInvalidRecord{ID: t.next, Reason: "contraction of a vertex onto itself"}
	}
	for _, w := range []uint64{u, v} {
		if t.retired[w] {
			return &ErrRetiredVertex{Vertex: w}
		}
		if _, ok := t.ids[simplexKey([]uint64{w})]; !ok {
			return &ErrInvalidRecord{ID: t.next, Reason: "contraction of an unknown vertex"}
		}
	}

	star := make([]string, 0, len(t.stars[v]))
	for key := range t.stars[v] {
		star = append(star, key)
	}
	sort.Strings(star)

	for _, key := range star {
		verts := t.active[key]
		if containsVertex(verts, u) {
			continue
		}

		cone := append([]uint64(nil), verts...)
		cone = append(cone, u)
		sort.Slice(cone, func(i, j int) bool { return cone[i] < cone[j] })

		if _, err := t.insert(cone, value); err != nil {
			return err
		}
	}

	// The simplices of v stay in the filtration but leave the current
	// complex; future stars must not cone over them again.
	for _, key := range star {
		verts := t.active[key]
		delete(t.active, key)
		for _, w := range verts {
			delete(t.stars[w], key)
		}
	}

	delete(t.stars, v)
	t.retired[v] = true

	return nil
}

// Records returns the filtration stream emitted so far.
func (t *Tower) Records() []Record { return t.records }

func (t *Tower) advance(value float64) error {
	if t.next > 0 && value < t.last {
		return &ErrNonMonotone{Value: value, Last: t.last}
	}

	t.last = value

	return nil
}

// insert emits the simplex and, recursively, any missing faces.
func (t *Tower) insert(verts []uint64, value float64) (uint64, error) {
	key := simplexKey(verts)
	if id, ok := t.ids[key]; ok {
		return id, nil
	}

	type face struct {
		id   uint64
		sign int8
	}

	var faces []face
	if len(verts) > 1 {
		faces = make([]face, 0, len(verts))
		buf := make([]uint64, 0, len(verts)-1)

		for i := range verts {
			buf = append(buf[:0], verts[:i]...)
			buf = append(buf, verts[i+1:]...)

			fid, err := t.insert(buf, value)
			if err != nil {
				return 0, err
			}

			sign := int8(1)
			if i%2 == 1 {
				sign = -1
			}
			faces = append(faces, face{id: fid, sign: sign})
		}

		sort.Slice(faces, func(i, j int) bool { return faces[i].id < faces[j].id })
	}

	rec := Record{ID: t.next, Dim: uint32(len(verts) - 1), Value: value}
	for _, f := range faces {
		rec.Boundary = append(rec.Boundary, f.id)
		rec.Coefficients = append(rec.Coefficients, f.sign)
	}

	t.records = append(t.records, rec)
	t.ids[key] = rec.ID
	owned := append([]uint64(nil), verts...)
	t.active[key] = owned

	for _, v := range owned {
		if t.stars[v] == nil {
			t.stars[v] = make(map[string]struct{})
		}
		t.stars[v][key] = struct{}{}
	}

	t.next++

	return rec.ID, nil
}

func containsVertex(verts []uint64, v uint64) bool {
	for _, w := range verts {
		if w == v {
			return true
		}
	}

	return false
}

func simplexKey(verts []uint64) string {
	buf := make([]byte, 0, len(verts)*4)
	for i, v := range verts {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendUint(buf, v, 10)
	}

	return string(buf)
}
