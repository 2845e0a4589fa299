package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStore_SetGetUnset(t *testing.T) {
	s := NewCellStore(3, 3)

	require.NoError(t, s.Set(1, 1, "a"))
	v, ok := s.Get(1, 1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = s.Get(1, 2)
	assert.False(t, ok, "never-set cell is unset")

	require.NoError(t, s.Set(1, 2, ""))
	v, ok = s.Get(1, 2)
	assert.True(t, ok, "empty string is a value")
	assert.Equal(t, "", v)

	require.NoError(t, s.Unset(1, 2))
	_, ok = s.Get(1, 2)
	assert.False(t, ok)

	require.NoError(t, s.Set(0, 2, "title"))
	v, _ = s.Get(0, 2)
	assert.Equal(t, "title", v)
}

func TestCellStore_OutOfRange(t *testing.T) {
	s := NewCellStore(2, 2)

	assert.ErrorIs(t, s.Set(3, 1, "x"), ErrOutOfRange)
	assert.ErrorIs(t, s.Set(1, -1, "x"), ErrOutOfRange)
	assert.ErrorIs(t, s.Unset(0, 3), ErrOutOfRange)

	_, ok := s.Get(-1, 0)
	assert.False(t, ok)
	_, ok = s.Get(2, 3)
	assert.False(t, ok)
}

func TestCellStore_InsertColumnsShiftsValues(t *testing.T) {
	s := NewCellStore(2, 2)
	require.NoError(t, s.Set(1, 1, "left"))
	require.NoError(t, s.Set(1, 2, "x"))

	require.NoError(t, s.InsertColumns(2, 3))

	assert.Equal(t, 5, s.Cols())
	v, ok := s.Get(1, 5)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	v, _ = s.Get(1, 1)
	assert.Equal(t, "left", v)
	for c := 2; c <= 4; c++ {
		_, ok := s.Get(1, c)
		assert.False(t, ok, "inserted column %d is unset", c)
	}
}

func TestCellStore_InsertDeleteRoundTrip(t *testing.T) {
	s := NewCellStore(4, 3)
	for r := 1; r <= 4; r++ {
		for c := 1; c <= 3; c++ {
			require.NoError(t, s.Set(r, c, Address{r, c}.String()))
		}
	}

	require.NoError(t, s.InsertRows(2, 2))
	require.NoError(t, s.DeleteRows(2, 2))
	require.NoError(t, s.InsertColumns(3, 4))
	require.NoError(t, s.DeleteColumns(3, 4))

	assert.Equal(t, 4, s.Rows())
	assert.Equal(t, 3, s.Cols())
	for r := 1; r <= 4; r++ {
		for c := 1; c <= 3; c++ {
			v, ok := s.Get(r, c)
			assert.True(t, ok)
			assert.Equal(t, Address{r, c}.String(), v)
		}
	}
}

func TestCellStore_InsertClampsPosition(t *testing.T) {
	s := NewCellStore(2, 1)
	require.NoError(t, s.Set(2, 1, "last"))

	require.NoError(t, s.InsertRows(99, 1))
	assert.Equal(t, 3, s.Rows())
	v, _ := s.Get(2, 1)
	assert.Equal(t, "last", v, "insert past the end appends")

	require.NoError(t, s.InsertRows(-5, 1))
	v, _ = s.Get(3, 1)
	assert.Equal(t, "last", v, "insert before the start inserts at row 1")

	require.NoError(t, s.InsertRows(1, 0))
	assert.Equal(t, 4, s.Rows())
}

func TestCellStore_DeleteClampsCount(t *testing.T) {
	s := NewCellStore(5, 2)
	require.NoError(t, s.Set(1, 1, "keep"))

	require.NoError(t, s.DeleteRows(2, 100))
	assert.Equal(t, 1, s.Rows())
	v, _ := s.Get(1, 1)
	assert.Equal(t, "keep", v)

	assert.ErrorIs(t, s.DeleteRows(2, 1), ErrOutOfRange)
	assert.ErrorIs(t, s.DeleteRows(0, 1), ErrOutOfRange, "the title row can't be deleted")
	assert.ErrorIs(t, s.DeleteColumns(1, 0), ErrOutOfRange)
}

func TestCellStore_Growth(t *testing.T) {
	s := NewCellStore(1, 1)
	assert.Equal(t, 1+1+allocExtra, s.RowCap())
	assert.Equal(t, 1+1+allocExtra, s.ColCap())

	require.NoError(t, s.Set(1, 1, "a"))
	require.NoError(t, s.InsertRows(2, 20))
	require.NoError(t, s.InsertColumns(2, 20))

	assert.Equal(t, 21, s.Rows())
	assert.Equal(t, 21, s.Cols())
	assert.GreaterOrEqual(t, s.RowCap(), 22)
	assert.GreaterOrEqual(t, s.ColCap(), 22)
	v, _ := s.Get(1, 1)
	assert.Equal(t, "a", v)
	require.NoError(t, s.Set(21, 21, "corner"))
}

func TestCellStore_Sparse(t *testing.T) {
	s := NewSparseCellStore(4, 4)
	assert.True(t, s.Sparse())
	assert.Zero(t, s.RowCap())
	assert.Zero(t, s.ColCap())

	assert.ErrorIs(t, s.Set(1, 1, "a"), ErrVirtual)
	_, ok := s.Get(1, 1)
	assert.False(t, ok)

	red := Style{}.WithFg(ColorRed)
	require.NoError(t, s.setStyle(2, 3, red))
	s.setMarked(4, 4, true)
	s.setMarked(1, 2, true)
	assert.Equal(t, 3, s.Records())
	s.setMarked(1, 2, false)
	assert.Equal(t, 2, s.Records(), "empty records are dropped")
	assert.ErrorIs(t, s.setStyle(5, 1, red), ErrOutOfRange)

	require.NoError(t, s.InsertRows(1, 2))
	require.NoError(t, s.InsertColumns(3, 1))
	assert.Equal(t, red, s.style(4, 4))
	assert.True(t, s.marked(6, 5))

	require.NoError(t, s.DeleteRows(4, 1))
	assert.Equal(t, Style{}, s.style(4, 4))
	assert.True(t, s.marked(5, 5))
	assert.Equal(t, 1, s.Records())
	assert.Equal(t, 5, s.Rows())
	assert.Equal(t, 5, s.Cols())
}

func TestCellStore_WithMode(t *testing.T) {
	s := NewCellStore(3, 3)
	require.NoError(t, s.Set(1, 1, "gone"))
	s.setMarked(2, 2, true)
	require.NoError(t, s.setStyle(3, 1, Style{}.WithAlign(AlignRight)))

	sp := s.withMode(true)
	assert.Equal(t, 2, sp.Records())
	assert.True(t, sp.marked(2, 2))
	assert.Equal(t, AlignRight, sp.style(3, 1).Align)

	back := sp.withMode(false)
	assert.False(t, back.Sparse())
	_, ok := back.Get(1, 1)
	assert.False(t, ok, "values don't survive virtual mode")
	assert.True(t, back.marked(2, 2))
}
