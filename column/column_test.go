package column

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/field"
)

var allKinds = []Kind{KindVector, KindList, KindSet, KindHeap, KindOrdered}

func newTestColumn(t *testing.T, kind Kind, f field.Arithmetic, entries []Entry) Column {
	t.Helper()

	col, err := New(kind, f, nil, 0, 0, entries)
	require.NoError(t, err)

	return col
}

func testFields(t *testing.T) []field.Arithmetic {
	t.Helper()

	var fields []field.Arithmetic
	for _, p := range []uint32{2, 5} {
		f, err := field.New(p)
		require.NoError(t, err)
		fields = append(fields, f)
	}

	return fields
}

// randomEntries draws a sorted random column over f.
func randomEntries(rng *rand.Rand, f field.Arithmetic, maxRow uint64) []Entry {
	p := f.Characteristic()

	var entries []Entry
	for row := uint64(0); row < maxRow; row++ {
		if rng.Intn(2) == 0 {
			continue
		}
		v := field.Element(rng.Intn(int(p-1)) + 1)
		entries = append(entries, Entry{Row: row, Value: v})
	}

	return entries
}

func TestColumn_Basics(t *testing.T) {
	for _, f := range testFields(t) {
		for _, kind := range allKinds {
			t.Run(kind.String(), func(t *testing.T) {
				entries := []Entry{{Row: 1, Value: 1}, {Row: 3, Value: 1}, {Row: 7, Value: 1}}
				col := newTestColumn(t, kind, f, entries)

				assert.False(t, col.IsEmpty())
				assert.Equal(t, 3, col.Size())
				assert.True(t, col.IsNonZero(3))
				assert.False(t, col.IsNonZero(2))

				pivot, ok := col.Pivot()
				require.True(t, ok)
				assert.Equal(t, uint64(7), pivot)
				assert.Equal(t, field.Element(1), col.PivotValue())

				dense := col.Content(8)
				assert.Equal(t, field.Element(1), dense[1])
				assert.Equal(t, field.Element(0), dense[2])
				assert.Equal(t, field.Element(1), dense[7])

				col.Clear()
				assert.True(t, col.IsEmpty())
				_, ok = col.Pivot()
				assert.False(t, ok)
			})
		}
	}
}

// Iterating any variant yields strictly increasing rows with no zeros.
func TestColumn_OrderAndNoZeros(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, f := range testFields(t) {
		for _, kind := range allKinds {
			for trial := 0; trial < 25; trial++ {
				a := newTestColumn(t, kind, f, randomEntries(rng, f, 40))
				b := newTestColumn(t, kind, f, randomEntries(rng, f, 40))
				require.NoError(t, a.Add(b))

				entries := a.Entries()
				for i, e := range entries {
					assert.NotEqual(t, field.Element(0), e.Value, "kind %s stored a zero", kind)
					if i > 0 {
						assert.Greater(t, e.Row, entries[i-1].Row, "kind %s out of order", kind)
					}
				}
			}
		}
	}
}

// Pivot always equals the largest stored row.
func TestColumn_PivotConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, f := range testFields(t) {
		for _, kind := range allKinds {
			for trial := 0; trial < 25; trial++ {
				a := newTestColumn(t, kind, f, randomEntries(rng, f, 32))
				b := newTestColumn(t, kind, f, randomEntries(rng, f, 32))
				require.NoError(t, a.Add(b))

				entries := a.Entries()
				pivot, ok := a.Pivot()
				if len(entries) == 0 {
					assert.False(t, ok)
					continue
				}

				require.True(t, ok)
				assert.Equal(t, entries[len(entries)-1].Row, pivot)
				assert.Equal(t, entries[len(entries)-1].Value, a.PivotValue())
			}
		}
	}
}

// Dense expansion of c*a + b matches the pointwise field computation.
func TestColumn_MultiplyTargetAndAdd(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	const length = 24

	for _, f := range testFields(t) {
		p := f.Characteristic()

		for _, kind := range allKinds {
			for trial := 0; trial < 25; trial++ {
				ae := randomEntries(rng, f, length)
				be := randomEntries(rng, f, length)
				c := field.Element(rng.Intn(int(p)))

				a := newTestColumn(t, kind, f, ae)
				b := newTestColumn(t, kind, f, be)

				require.NoError(t, a.MultiplyTargetAndAdd(c, b))

				got := a.Content(length)
				wantA := content(ae, length)
				wantB := content(be, length)
				for row := uint64(0); row < length; row++ {
					want := f.MulAdd(wantA[row], c, wantB[row])
					assert.Equal(t, want, got[row], "kind %s p=%d row %d", kind, p, row)
				}
			}
		}
	}
}

func TestColumn_MultiplySourceAndAdd(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	const length = 24

	for _, f := range testFields(t) {
		p := f.Characteristic()

		for _, kind := range allKinds {
			for trial := 0; trial < 25; trial++ {
				ae := randomEntries(rng, f, length)
				be := randomEntries(rng, f, length)
				c := field.Element(rng.Intn(int(p)))

				a := newTestColumn(t, kind, f, ae)
				b := newTestColumn(t, kind, f, be)

				require.NoError(t, a.MultiplySourceAndAdd(b, c))

				got := a.Content(length)
				wantA := content(ae, length)
				wantB := content(be, length)
				for row := uint64(0); row < length; row++ {
					want := f.MulAdd(wantB[row], c, wantA[row])
					assert.Equal(t, want, got[row], "kind %s p=%d row %d", kind, p, row)
				}

				// The source is unchanged.
				assert.Equal(t, content(be, length), b.Content(length))
			}
		}
	}
}

// Binary operations must be safe when source and target are the same
// physical column, as happens under column compression.
func TestColumn_SelfAliasing(t *testing.T) {
	for _, f := range testFields(t) {
		p := f.Characteristic()

		for _, kind := range allKinds {
			entries := []Entry{{Row: 0, Value: 1}, {Row: 4, Value: 1}}
			col := newTestColumn(t, kind, f, entries)

			require.NoError(t, col.Add(col))

			want := f.Add(1, 1)
			got := col.Content(5)
			assert.Equal(t, want, got[0], "kind %s p=%d", kind, p)
			assert.Equal(t, want, got[4], "kind %s p=%d", kind, p)

			col2 := newTestColumn(t, kind, f, entries)
			require.NoError(t, col2.MultiplyTargetAndAdd(f.Normalize(2), col2))

			want2 := f.Normalize(3)
			got2 := col2.Content(5)
			assert.Equal(t, want2, got2[0], "kind %s p=%d", kind, p)
		}
	}
}

func TestColumn_ScaleAndClearRow(t *testing.T) {
	f, err := field.New(5)
	require.NoError(t, err)

	for _, kind := range allKinds {
		col := newTestColumn(t, kind, f, []Entry{{Row: 0, Value: 2}, {Row: 2, Value: 3}})

		require.NoError(t, col.Scale(2))
		assert.Equal(t, []field.Element{4, 0, 1}, col.Content(3))

		col.ClearRow(2)
		assert.Equal(t, []field.Element{4, 0, 0}, col.Content(3))

		require.NoError(t, col.Scale(0))
		assert.True(t, col.IsEmpty())
	}
}

func TestColumn_SetRow(t *testing.T) {
	f, err := field.New(5)
	require.NoError(t, err)

	for _, kind := range allKinds {
		col := newTestColumn(t, kind, f, []Entry{{Row: 1, Value: 2}})

		col.SetRow(3, 4)
		col.SetRow(0, 1)
		col.SetRow(1, 0)

		assert.Equal(t, []field.Element{1, 0, 0, 4}, col.Content(4))

		pivot, ok := col.Pivot()
		require.True(t, ok)
		assert.Equal(t, uint64(3), pivot)
	}
}

func TestColumn_Reorder(t *testing.T) {
	for _, f := range testFields(t) {
		for _, kind := range allKinds {
			col := newTestColumn(t, kind, f, []Entry{{Row: 0, Value: 1}, {Row: 1, Value: 1}, {Row: 4, Value: 1}})

			perm := map[uint64]uint64{0: 4, 1: 1, 4: 0}
			require.NoError(t, col.Reorder(perm))

			entries := col.Entries()
			require.Len(t, entries, 3)
			assert.Equal(t, uint64(0), entries[0].Row)
			assert.Equal(t, uint64(1), entries[1].Row)
			assert.Equal(t, uint64(4), entries[2].Row)

			pivot, ok := col.Pivot()
			require.True(t, ok)
			assert.Equal(t, uint64(4), pivot)
		}
	}
}

func TestColumn_HeapLazyAdds(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	a := newTestColumn(t, KindHeap, f, []Entry{{Row: 0, Value: 1}, {Row: 2, Value: 1}})
	b := newTestColumn(t, KindHeap, f, []Entry{{Row: 2, Value: 1}, {Row: 3, Value: 1}})

	// Several lazy adds before any read.
	require.NoError(t, a.Add(b))
	require.NoError(t, a.Add(b))
	require.NoError(t, a.Add(b))

	// 0,2 + 3*(2,3) over Z/2 = {0, 2+2+2+... } -> rows 0, 3 and row 2 kept.
	assert.Equal(t, []field.Element{1, 0, 0, 1}, a.Content(4))

	pivot, ok := a.Pivot()
	require.True(t, ok)
	assert.Equal(t, uint64(3), pivot)
}

func TestColumn_BitmapBackedForZ2Set(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	col, err := New(KindSet, f, nil, 0, 0, []Entry{{Row: 1, Value: 1}})
	require.NoError(t, err)
	assert.IsType(t, &BitmapColumn{}, col)

	f5, err := field.New(5)
	require.NoError(t, err)

	col5, err := New(KindSet, f5, nil, 0, 0, []Entry{{Row: 1, Value: 2}})
	require.NoError(t, err)
	assert.IsType(t, &SetColumn{}, col5)
}

func TestColumn_RowAccessUnsupportedKinds(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	pool := NewPool(NewRowIndex(RowAccessIntrusive, 0))

	_, err = New(KindHeap, f, pool, 0, 0, nil)
	var unsupported *ErrRowAccessUnsupported
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, KindHeap, unsupported.Kind)

	_, err = New(KindSet, f, pool, 0, 0, nil)
	require.ErrorAs(t, err, &unsupported)

	_, err = New(KindVector, f, pool, 0, 0, nil)
	require.NoError(t, err)
}

func BenchmarkColumn_Add(b *testing.B) {
	f, _ := field.New(2)
	rng := rand.New(rand.NewSource(1))

	for _, kind := range allKinds {
		b.Run(kind.String(), func(b *testing.B) {
			var entries, others []Entry
			for row := uint64(0); row < 512; row++ {
				if rng.Intn(2) == 0 {
					entries = append(entries, Entry{Row: row, Value: 1})
				}
				if rng.Intn(2) == 0 {
					others = append(others, Entry{Row: row, Value: 1})
				}
			}

			target, _ := New(kind, f, nil, 0, 0, entries)
			source, _ := New(kind, f, nil, 1, 0, others)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = target.Add(source)
			}
		})
	}
}
