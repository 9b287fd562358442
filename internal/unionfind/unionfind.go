// Package unionfind implements a disjoint-set forest with union by rank and
// path compression. It tracks the equivalence classes of compressed matrix
// columns; sets only ever grow and merges are never split.
package unionfind

// UnionFind is a disjoint-set forest over the integers [0, Len).
// The zero value is ready to use.
type UnionFind struct {
	parent []int
	rank   []uint8
	sets   int
}

// New creates an empty forest.
func New() *UnionFind {
	return &UnionFind{}
}

// MakeSet adds a new singleton set and returns its element.
func (u *UnionFind) MakeSet() int {
	x := len(u.parent)
	u.parent = append(u.parent, x)
	u.rank = append(u.rank, 0)
	u.sets++

	return x
}

// Len returns the number of elements.
func (u *UnionFind) Len() int { return len(u.parent) }

// Sets returns the number of disjoint sets.
func (u *UnionFind) Sets() int { return u.sets }

// Find returns the representative of the set containing x, compressing the
// path along the way.
func (u *UnionFind) Find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}

	return x
}

// Union merges the sets containing a and b and returns the surviving
// representative. Merging a set with itself is a no-op.
func (u *UnionFind) Union(a, b int) int {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return ra
	}

	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}

	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}

	u.sets--

	return ra
}

// Same reports whether a and b belong to the same set.
func (u *UnionFind) Same(a, b int) bool {
	return u.Find(a) == u.Find(b)
}
