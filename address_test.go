package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_ParseAndString(t *testing.T) {
	a, err := ParseAddress(" 3:12 ")
	require.NoError(t, err)
	assert.Equal(t, Address{Row: 3, Col: 12}, a)
	assert.Equal(t, "3:12", a.String())

	for _, bad := range []string{"", "3", "a:1", "1:-2", "-1:0"} {
		_, err := ParseAddress(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, "input %q", bad)
	}
}

func TestPixelRect(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	r, ok := g.PixelRect(1, 1)
	require.True(t, ok)
	assert.Equal(t, Rect{X: 40, Y: 20, W: 100, H: 20}, r)

	r, _ = g.PixelRect(0, 2)
	assert.Equal(t, Rect{X: 140, Y: 0, W: 100, H: 20}, r)

	r, _ = g.PixelRect(2, 0)
	assert.Equal(t, Rect{X: 0, Y: 40, W: 40, H: 20}, r)

	r, _ = g.PixelRect(0, 0)
	assert.Equal(t, Rect{W: 40, H: 20}, r)

	_, ok = g.PixelRect(11, 1)
	assert.False(t, ok)
}

func TestPixelRect_TitlesDontScroll(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	g.SetScrollOffset(150, 30)

	r, _ := g.PixelRect(0, 2)
	assert.Equal(t, 140-150, r.X)
	assert.Equal(t, 0, r.Y, "column titles stay in the title band")

	r, _ = g.PixelRect(3, 0)
	assert.Equal(t, 0, r.X, "row titles stay in the title band")
	assert.Equal(t, 20+40-30, r.Y)
}

func TestCellAt(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	tests := []struct {
		name     string
		x, y     int
		row, col int
		ok       bool
	}{
		{"first data cell", 45, 25, 1, 1, true},
		{"corner", 10, 10, 0, 0, true},
		{"column title", 250, 5, 0, 3, true},
		{"row title", 5, 65, 3, 0, true},
		{"past viewport", 500, 10, 0, 0, false},
		{"negative", -1, 10, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := g.CellAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.row, row)
				assert.Equal(t, tt.col, col)
			}
		})
	}
}

func TestCellAt_PastLastColumn(t *testing.T) {
	g, _ := newTestGrid(2, 2)
	_, _, ok := g.CellAt(300, 25)
	assert.False(t, ok, "right of the last column is no cell")
}
