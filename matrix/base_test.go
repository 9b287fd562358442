package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/topogo/column"
	"github.com/hupe1980/topogo/field"
)

func TestBase_InsertColumn(t *testing.T) {
	f, err := field.New(5)
	require.NoError(t, err)

	m := NewBase(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	idx, err := m.InsertColumn([]column.Entry{{Row: 0, Value: 2}, {Row: 3, Value: 4}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, m.NumColumns())
	assert.Equal(t, 1, m.Dimension(0))

	_, err = m.InsertColumn([]column.Entry{{Row: 1, Value: 0}}, 1)
	assert.ErrorIs(t, err, ErrZeroCoefficient)
}

func TestBase_Arithmetic(t *testing.T) {
	f, err := field.New(5)
	require.NoError(t, err)

	m := NewBase(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}, {Row: 1, Value: 2}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 1, Value: 3}, {Row: 2, Value: 4}}, 0)
	require.NoError(t, err)

	require.NoError(t, m.AddTo(0, 1))
	assert.Equal(t, []field.Element{1, 0, 4}, m.Column(1).Content(3))

	require.NoError(t, m.MultiplySourceAndAdd(1, 0, 2))
	assert.Equal(t, []field.Element{3, 4, 4}, m.Column(1).Content(3))

	require.NoError(t, m.Scale(0, 3))
	assert.Equal(t, []field.Element{3, 1, 0}, m.Column(0).Content(3))

	m.ClearRow(0, 1)
	assert.Equal(t, []field.Element{3, 0, 0}, m.Column(0).Content(3))

	m.ClearColumn(0)
	assert.True(t, m.Column(0).IsEmpty())
}

func TestBase_RowColumns(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	t.Run("without row access", func(t *testing.T) {
		m := NewBase(f, Config{ColumnKind: column.KindVector})
		defer m.Close()

		_, err := m.RowColumns(0)
		assert.ErrorIs(t, err, ErrRowAccessRequired)
	})

	t.Run("with row access", func(t *testing.T) {
		m := NewBase(f, Config{ColumnKind: column.KindVector, RowAccess: column.RowAccessIntrusive})
		defer m.Close()

		_, err := m.InsertColumn([]column.Entry{{Row: 0, Value: 1}, {Row: 2, Value: 1}}, 0)
		require.NoError(t, err)
		_, err = m.InsertColumn([]column.Entry{{Row: 2, Value: 1}}, 0)
		require.NoError(t, err)

		cols, err := m.RowColumns(2)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{0, 1}, cols)

		cols, err = m.RowColumns(1)
		require.NoError(t, err)
		assert.Empty(t, cols)
	})
}

func TestBase_SwapColumns(t *testing.T) {
	f, err := field.New(2)
	require.NoError(t, err)

	m := NewBase(f, Config{ColumnKind: column.KindVector, RowAccess: column.RowAccessIntrusive})
	defer m.Close()

	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}}, 0)
	require.NoError(t, err)
	_, err = m.InsertColumn([]column.Entry{{Row: 1, Value: 1}}, 1)
	require.NoError(t, err)

	m.SwapColumns(0, 1)

	assert.Equal(t, []column.Entry{{Row: 1, Value: 1}}, m.Column(0).Entries())
	assert.Equal(t, []column.Entry{{Row: 0, Value: 1}}, m.Column(1).Entries())
	assert.Equal(t, 1, m.Dimension(0))
	assert.Equal(t, 0, m.Column(0).Index())

	// The row index follows the renumbering.
	cols, err := m.RowColumns(1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, cols)
}

func TestBase_ReorderRows(t *testing.T) {
	f, err := field.New(3)
	require.NoError(t, err)

	m := NewBase(f, Config{ColumnKind: column.KindVector})
	defer m.Close()

	_, err = m.InsertColumn([]column.Entry{{Row: 0, Value: 1}, {Row: 1, Value: 2}}, 0)
	require.NoError(t, err)

	require.NoError(t, m.ReorderRows(map[uint64]uint64{0: 1, 1: 0}))
	assert.Equal(t, []column.Entry{{Row: 0, Value: 2}, {Row: 1, Value: 1}}, m.Column(0).Entries())
}
