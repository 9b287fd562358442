package filtration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTower_InsertWithMissingFaces(t *testing.T) {
	tw := NewTower()

	// Inserting the triangle directly pulls in vertices and edges first.
	require.NoError(t, tw.AddInsertion([]uint64{2, 0, 1}, 1))

	recs := tw.Records()
	require.Len(t, recs, 7)

	assert.Equal(t, uint32(0), recs[0].Dim)
	assert.Equal(t, uint32(2), recs[6].Dim)
	assert.Len(t, recs[6].Boundary, 3)

	for _, rec := range recs {
		require.NoError(t, rec.Validate())
		assert.Equal(t, 1.0, rec.Value)
	}

	// Alternating orientation signs on the edges.
	for _, rec := range recs {
		if rec.Dim == 1 {
			assert.Equal(t, []int8{1, -1}, rec.Coefficients)
		}
	}

	// Re-inserting an existing simplex emits nothing.
	require.NoError(t, tw.AddInsertion([]uint64{0, 1}, 2))
	assert.Len(t, tw.Records(), 7)
}

func TestTower_Contraction(t *testing.T) {
	tw := NewTower()

	require.NoError(t, tw.AddInsertion([]uint64{0}, 0))
	require.NoError(t, tw.AddInsertion([]uint64{1}, 0))

	// Contracting 1 onto 0 cones the star of 1: the edge 01 appears.
	require.NoError(t, tw.AddContraction(0, 1, 1))

	recs := tw.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, []uint64{0, 1}, recs[2].Boundary)
	assert.Equal(t, []int8{-1, 1}, recs[2].Coefficients)
	assert.Equal(t, 1.0, recs[2].Value)

	// The retired vertex is unusable afterwards.
	var retired *ErrRetiredVertex
	require.ErrorAs(t, tw.AddInsertion([]uint64{1, 2}, 2), &retired)
	assert.Equal(t, uint64(1), retired.Vertex)

	// Contracting again against it fails too.
	require.NoError(t, tw.AddInsertion([]uint64{2}, 2))
	assert.ErrorAs(t, tw.AddContraction(2, 1, 2), &retired)
}

func TestTower_ContractionConesStar(t *testing.T) {
	tw := NewTower()

	// Edge 1-2 plus lone vertex 0; contract 2 onto 0.
	require.NoError(t, tw.AddInsertion([]uint64{1, 2}, 0))
	require.NoError(t, tw.AddInsertion([]uint64{0}, 0))
	require.NoError(t, tw.AddContraction(0, 2, 1))

	// The cone adds edge 02 and triangle 012 (with edge 01 as a face).
	recs := tw.Records()

	dims := make(map[uint32]int)
	for _, rec := range recs {
		require.NoError(t, rec.Validate())
		dims[rec.Dim]++
	}

	assert.Equal(t, 3, dims[0])
	assert.Equal(t, 3, dims[1])
	assert.Equal(t, 1, dims[2])
}

func TestTower_Monotone(t *testing.T) {
	tw := NewTower()

	require.NoError(t, tw.AddInsertion([]uint64{0}, 1))

	var nm *ErrNonMonotone
	require.ErrorAs(t, tw.AddInsertion([]uint64{1}, 0.5), &nm)
	assert.Equal(t, 0.5, nm.Value)
	assert.Equal(t, 1.0, nm.Last)
}

func TestTower_InvalidOperations(t *testing.T) {
	tw := NewTower()

	var invalid *ErrInvalidRecord
	require.ErrorAs(t, tw.AddInsertion([]uint64{3, 3}, 0), &invalid)

	require.NoError(t, tw.AddInsertion([]uint64{0}, 0))
	require.ErrorAs(t, tw.AddContraction(0, 0, 0), &invalid)
	require.ErrorAs(t, tw.AddContraction(0, 9, 0), &invalid)
}
