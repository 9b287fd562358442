// Package simplicial builds filtration streams from simplicial complexes:
// simplices are inserted in filtration order with their boundaries derived
// automatically, including orientation signs for odd characteristics.
package simplicial

import (
	"sort"
	"strconv"

	"github.com/hupe1980/topogo/filtration"
)

// Complex accumulates simplices in filtration order. Every simplex must be
// inserted after all of its faces, with a non-decreasing filtration value;
// the emitted records feed straight into the engine.
type Complex struct {
	ids     map[string]uint64
	records []filtration.Record
	last    float64
}

// NewComplex creates an empty complex.
func NewComplex() *Complex {
	return &Complex{ids: make(map[string]uint64)}
}

// Len returns the number of inserted simplices.
func (c *Complex) Len() int { return len(c.records) }

// Records returns the filtration stream.
func (c *Complex) Records() []filtration.Record { return c.records }

// Insert adds the simplex with the given vertices at the given value and
// returns its identifier. Vertex order is irrelevant.
func (c *Complex) Insert(vertices []uint64, value float64) (uint64, error) {
	verts := append([]uint64(nil), vertices...)
	sort.Slice(verts, func(i, j int) bool { return verts[i] < verts[j] })

	id := uint64(len(c.records))

	for i := 1; i < len(verts); i++ {
		if verts[i-1] == verts[i] {
			return 0, &ErrInvalidSimplex{Vertices: verts, Reason: "duplicate vertices"}
		}
	}

	if len(c.records) > 0 && value < c.last {
		return 0, &filtration.ErrNonMonotone{Value: value, Last: c.last}
	}

	key := simplexKey(verts)
	if _, ok := c.ids[key]; ok {
		return 0, &ErrInvalidSimplex{Vertices: verts, Reason: "already inserted"}
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

			fid, ok := c.ids[simplexKey(buf)]
			if !ok {
				return 0, &ErrMissingFace{Vertices: verts, Face: append([]uint64(nil), buf...)}
			}

			sign := int8(1)
			if i%2 == 1 {
				sign = -1
			}
			faces = append(faces, face{id: fid, sign: sign})
		}

		sort.Slice(faces, func(i, j int) bool { return faces[i].id < faces[j].id })
	}

	rec := filtration.Record{ID: id, Dim: uint32(len(verts) - 1), Value: value}
	for _, f := range faces {
		rec.Boundary = append(rec.Boundary, f.id)
		rec.Coefficients = append(rec.Coefficients, f.sign)
	}

	c.records = append(c.records, rec)
	c.ids[key] = id
	c.last = value

	return id, nil
}

// InsertAll inserts a batch of simplices at a shared value, ordered by
// dimension so faces precede cofaces.
func (c *Complex) InsertAll(simplices [][]uint64, value float64) error {
	batch := make([][]uint64, len(simplices))
	copy(batch, simplices)
	sort.SliceStable(batch, func(i, j int) bool { return len(batch[i]) < len(batch[j]) })

	for _, s := range batch {
		if _, err := c.Insert(s, value); err != nil {
			return err
		}
	}

	return nil
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
