package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

func TestBoundary_Triangle(t *testing.T) {
	for _, p := range []uint32{2, 3, 5} {
		f, err := field.New(p)
		require.NoError(t, err)

		m := NewBoundary(f, Config{ColumnKind: column.KindVector})
		insertAll(t, m, triangleFiltration(f))
		reduceAll(t, m)

		want := []IndexPair{
			{Birth: 0, Death: -1, Dim: 0},
			{Birth: 1, Death: 3, Dim: 0},
			{Birth: 2, Death: 4, Dim: 0},
			{Birth: 5, Death: 6, Dim: 1},
		}
		assert.Equal(t, want, sortPairs(m.Pairs()), "Z/%d", p)

		// The edge ac reduces to zero: its cycle is killed by the face.
		assert.True(t, m.Column(5).IsEmpty())
		assert.True(t, m.Pivots().Injective())

		m.Close()
	}
}

func TestBoundary_VerticesOnly(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewBoundary(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	for i := 0; i < 5; i++ {
		_, err := m.InsertBoundary(nil, 0)
		require.NoError(t, err)
	}
	reduceAll(t, m)

	pairs := m.Pairs()
	require.Len(t, pairs, 5)
	for _, p := range pairs {
		assert.True(t, p.Essential())
		assert.Equal(t, 0, p.Dim)
	}
}

func TestBoundary_OutOfOrder(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewBoundary(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	_, err = m.InsertBoundary(nil, 0)
	require.NoError(t, err)

	t.Run("row beyond column", func(t *testing.T) {
		_, err := m.InsertBoundary([]column.Entry{{Row: 1, Value: 1}}, 1)
		var oob *ErrOutOfOrderBoundary
		require.ErrorAs(t, err, &oob)
		assert.Equal(t, 1, oob.Column)
		assert.Equal(t, uint64(1), oob.Row)
	})

	t.Run("rows not increasing", func(t *testing.T) {
		_, err := m.InsertBoundary(nil, 0)
		require.NoError(t, err)

		_, err = m.InsertBoundary([]column.Entry{{Row: 1, Value: 1}, {Row: 0, Value: 1}}, 1)
		var oob *ErrOutOfOrderBoundary
		require.ErrorAs(t, err, &oob)
	})

	t.Run("zero coefficient", func(t *testing.T) {
		_, err := m.InsertBoundary([]column.Entry{{Row: 0, Value: 0}}, 1)
		assert.ErrorIs(t, err, ErrZeroCoefficient)
	})
}

func TestBoundary_ClearColumn(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewBoundary(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	insertAll(t, m, triangleFiltration(f))

	// Twist order: reduce the face first, clear the killed edge, then sweep.
	for j := 3; j < 7; j++ {
		if m.Dimension(j) != 2 {
			continue
		}
		require.NoError(t, m.ReduceColumn(j))
		if p, ok := m.PivotOf(j); ok {
			require.NoError(t, m.ClearColumn(p, j))
		}
	}
	reduceAll(t, m)

	want := []IndexPair{
		{Birth: 0, Death: -1, Dim: 0},
		{Birth: 1, Death: 3, Dim: 0},
		{Birth: 2, Death: 4, Dim: 0},
		{Birth: 5, Death: 6, Dim: 1},
	}
	assert.Equal(t, want, sortPairs(m.Pairs()))
	assert.True(t, m.Pivots().Injective())
}

func TestBoundary_MergePivots(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewBoundary(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	local := NewPivotTable()
	local.Set(0, 1)
	require.NoError(t, m.MergePivots(local))

	col, ok := m.Pivots().Lookup(0)
	require.True(t, ok)
	assert.Equal(t, 1, col)

	conflicting := NewPivotTable()
	conflicting.Set(0, 2)
	assert.ErrorIs(t, m.MergePivots(conflicting), ErrPivotInvariant)
}
