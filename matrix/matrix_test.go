package matrix

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

type boundaryRec struct {
	entries []column.Entry
	dim     int
}

// triangleFiltration is a filled triangle: vertices a, b, c, edges ab, bc,
// ac, then the face abc.
func triangleFiltration(f field.Arithmetic) []boundaryRec {
	neg := f.Neg(1)

	return []boundaryRec{
		{nil, 0},
		{nil, 0},
		{nil, 0},
		{[]column.Entry{{Row: 0, Value: neg}, {Row: 1, Value: 1}}, 1},
		{[]column.Entry{{Row: 1, Value: neg}, {Row: 2, Value: 1}}, 1},
		{[]column.Entry{{Row: 0, Value: neg}, {Row: 2, Value: 1}}, 1},
		{[]column.Entry{{Row: 3, Value: 1}, {Row: 4, Value: 1}, {Row: 5, Value: neg}}, 2},
	}
}

type boundaryInserter interface {
	InsertBoundary(entries []column.Entry, dim int) (int, error)
}

func insertAll(t *testing.T, m boundaryInserter, recs []boundaryRec) {
	t.Helper()

	for i, rec := range recs {
		idx, err := m.InsertBoundary(rec.entries, rec.dim)
		require.NoError(t, err)
		require.Equal(t, i, idx)
	}
}

type columnReducer interface {
	NumColumns() int
	ReduceColumn(j int) error
}

func reduceAll(t *testing.T, m columnReducer) {
	t.Helper()

	for j := 0; j < m.NumColumns(); j++ {
		require.NoError(t, m.ReduceColumn(j))
	}
}

func sortPairs(pairs []IndexPair) []IndexPair {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Birth != pairs[j].Birth {
			return pairs[i].Birth < pairs[j].Birth
		}
		return pairs[i].Death < pairs[j].Death
	})

	return pairs
}

// requireDecomposition checks R = D*U column by column via dense expansion.
func requireDecomposition(t *testing.T, ru *RU) {
	t.Helper()

	n := uint64(ru.NumColumns())
	f := ru.Field()

	for j := 0; j < ru.NumColumns(); j++ {
		want := make([]field.Element, n)
		for _, ue := range ru.U().Column(j).Entries() {
			dense := ru.D().Column(int(ue.Row)).Content(n)
			for r := range dense {
				want[r] = f.Add(want[r], f.Mul(ue.Value, dense[r]))
			}
		}

		assert.Equal(t, want, ru.R().Column(j).Content(n), "column %d", j)
	}
}
