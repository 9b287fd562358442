package simplicial

import (
	"errors"
	"sort"
)

// ErrBadDistanceMatrix is returned for a non-square distance matrix.
var ErrBadDistanceMatrix = errors.New("simplicial: distance matrix is not square")

// Rips builds the Vietoris-Rips filtration of the finite metric given by
// dists: the flag complex of the graph with all edges up to threshold,
// truncated at maxDim. A simplex enters at the largest pairwise distance of
// its vertices.
func Rips(dists [][]float64, threshold float64, maxDim int) (*Complex, error) {
	n := len(dists)
	for _, row := range dists {
		if len(row) != n {
			return nil, ErrBadDistanceMatrix
		}
	}

	type simplex struct {
		verts []uint64
		value float64
	}

	var all []simplex

	var extend func(verts []uint64, value float64)
	extend = func(verts []uint64, value float64) {
		all = append(all, simplex{verts: append([]uint64(nil), verts...), value: value})

		if len(verts) > maxDim {
			return
		}

		for w := verts[len(verts)-1] + 1; w < uint64(n); w++ {
			grown := value
			ok := true
			for _, u := range verts {
				d := dists[u][w]
				if d > threshold {
					ok = false
					break
				}
				if d > grown {
					grown = d
				}
			}

			if ok {
				extend(append(verts, w), grown)
			}
		}
	}

	for v := 0; v < n; v++ {
		extend([]uint64{uint64(v)}, 0)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].value != all[j].value {
			return all[i].value < all[j].value
		}
		return len(all[i].verts) < len(all[j].verts)
	})

	c := NewComplex()
	for _, s := range all {
		if _, err := c.Insert(s.verts, s.value); err != nil {
			return nil, err
		}
	}

	return c, nil
}
