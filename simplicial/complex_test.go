package simplicial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/filtration"
)

func TestComplex_Insert(t *testing.T) {
	c := NewComplex()

	for _, v := range [][]uint64{{0}, {1}, {2}} {
		_, err := c.Insert(v, 0)
		require.NoError(t, err)
	}

	id, err := c.Insert([]uint64{1, 0}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)

	rec := c.Records()[3]
	assert.Equal(t, uint32(1), rec.Dim)
	assert.Equal(t, []uint64{0, 1}, rec.Boundary)
	assert.Equal(t, []int8{-1, 1}, rec.Coefficients)
	assert.Equal(t, 1.0, rec.Value)
}

func TestComplex_Errors(t *testing.T) {
	c := NewComplex()

	_, err := c.Insert([]uint64{0}, 0)
	require.NoError(t, err)

	t.Run("missing face", func(t *testing.T) {
		_, err := c.Insert([]uint64{0, 1}, 1)
		var missing *ErrMissingFace
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []uint64{1}, missing.Face)
	})

	t.Run("duplicate simplex", func(t *testing.T) {
		_, err := c.Insert([]uint64{0}, 1)
		var invalid *ErrInvalidSimplex
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("duplicate vertices", func(t *testing.T) {
		_, err := c.Insert([]uint64{2, 2}, 1)
		var invalid *ErrInvalidSimplex
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("non-monotone", func(t *testing.T) {
		_, err := c.Insert([]uint64{1}, -1)
		var nm *filtration.ErrNonMonotone
		require.ErrorAs(t, err, &nm)
	})
}

func TestComplex_InsertAll(t *testing.T) {
	c := NewComplex()

	// Mixed dimensions in one batch: faces get inserted first.
	err := c.InsertAll([][]uint64{{0, 1}, {0}, {1}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	for _, rec := range c.Records() {
		require.NoError(t, rec.Validate())
	}
}

func TestRips(t *testing.T) {
	// Equilateral-ish triangle with one long side.
	dists := [][]float64{
		{0, 1, 2},
		{1, 0, 1},
		{2, 1, 0},
	}

	c, err := Rips(dists, 2, 2)
	require.NoError(t, err)

	recs := c.Records()
	require.Len(t, recs, 7)

	// Vertices at 0, short edges at 1, long edge and the filled triangle at 2.
	var values []float64
	for _, rec := range recs {
		values = append(values, rec.Value)
	}
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 2, 2}, values)
	assert.Equal(t, uint32(2), recs[6].Dim)

	t.Run("threshold cuts the long edge", func(t *testing.T) {
		c, err := Rips(dists, 1.5, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, c.Len())
	})

	t.Run("bad matrix", func(t *testing.T) {
		_, err := Rips([][]float64{{0, 1}}, 1, 1)
		assert.ErrorIs(t, err, ErrBadDistanceMatrix)
	})
}
