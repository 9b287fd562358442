package unionfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind(t *testing.T) {
	u := New()

	for i := 0; i < 6; i++ {
		assert.Equal(t, i, u.MakeSet())
	}

	assert.Equal(t, 6, u.Len())
	assert.Equal(t, 6, u.Sets())

	u.Union(0, 1)
	u.Union(2, 3)
	u.Union(1, 3)

	assert.Equal(t, 3, u.Sets())
	assert.True(t, u.Same(0, 2))
	assert.False(t, u.Same(0, 4))

	// Merging twice changes nothing.
	r := u.Union(0, 3)
	assert.Equal(t, r, u.Find(2))
	assert.Equal(t, 3, u.Sets())
}

func TestUnionFind_PathCompression(t *testing.T) {
	u := New()
	for i := 0; i < 100; i++ {
		u.MakeSet()
	}

	for i := 1; i < 100; i++ {
		u.Union(i-1, i)
	}

	root := u.Find(0)
	for i := 0; i < 100; i++ {
		assert.Equal(t, root, u.Find(i))
	}

	assert.Equal(t, 1, u.Sets())
}
