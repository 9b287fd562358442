package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

func TestCompressed_Dedup(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewCompressed(f, Config{ColumnKind: column.KindVector})

	for i := 0; i < 3; i++ {
		_, err := m.InsertColumn([]column.Entry{{Row: 7, Value: 1}}, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, m.NumColumns())
	assert.Equal(t, 1, m.ClassCount())
	assert.True(t, m.SameClass(0, 2))

	// Same rows, different field values: a distinct class.
	f5, err := field.New(5)
	require.NoError(t, err)

	m5 := NewCompressed(f5, Config{ColumnKind: column.KindVector})
	_, err = m5.InsertColumn([]column.Entry{{Row: 7, Value: 1}}, 1)
	require.NoError(t, err)
	_, err = m5.InsertColumn([]column.Entry{{Row: 7, Value: 2}}, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, m5.ClassCount())
	assert.False(t, m5.SameClass(0, 1))
}

func TestCompressed_AlternatingDuplicates(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewCompressed(f, Config{ColumnKind: column.KindVector})

	// Every other boundary equals the prior one.
	for i := 0; i < 1000; i++ {
		_, err := m.InsertColumn([]column.Entry{{Row: uint64(i / 2), Value: 1}}, 1)
		require.NoError(t, err)
	}

	assert.Equal(t, 1000, m.NumColumns())
	assert.Equal(t, 500, m.ClassCount())

	for i := 0; i < 1000; i += 2 {
		assert.True(t, m.SameClass(i, i+1))
	}
}

func TestCompressed_AddUpdatesClass(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewCompressed(f, Config{ColumnKind: column.KindVector})

	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 1, Value: 1}}, 0)
	require.NoError(t, err)

	require.True(t, m.SameClass(0, 1))
	require.NoError(t, m.AddTo(2, 0))

	// Both members of the class see the update.
	want := []column.Entry{{Row: 0, Value: 1}, {Row: 1, Value: 1}}
	assert.Equal(t, want, m.Column(0).Entries())
	assert.Equal(t, want, m.Column(1).Entries())
	assert.True(t, m.SameClass(0, 1))
}

func TestCompressed_AddMergesClasses(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewCompressed(f, Config{ColumnKind: column.KindVector})

	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}, {Row: 1, Value: 1}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 1, Value: 1}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}}, 0)
	require.NoError(t, err)

	require.Equal(t, 3, m.ClassCount())

	// 0 + 1 = {0}, identical to column 2: the classes merge.
	require.NoError(t, m.AddTo(1, 0))

	assert.Equal(t, 2, m.ClassCount())
	assert.True(t, m.SameClass(0, 2))
	assert.Equal(t, []column.Entry{{Row: 0, Value: 1}}, m.Column(0).Entries())
}

func TestCompressed_SelfAddEmptiesClass(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewCompressed(f, Config{ColumnKind: column.KindVector})

	_, err = m.InsertColumn([]column.Entry{{Row: 3, Value: 1}}, 0)
	require.NoError(t, err)

	require.NoError(t, m.AddTo(0, 0))
	assert.True(t, m.Column(0).IsEmpty())
}
