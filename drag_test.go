package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResize_HoverCursor(t *testing.T) {
	g, p := newTestGrid(3, 3)

	move(g, 139, 10)
	assert.Equal(t, CursorResizeH, g.Cursor())
	move(g, 137, 12)
	move(g, 10, 41)
	assert.Equal(t, CursorResizeV, g.Cursor())
	move(g, 200, 50)
	assert.Equal(t, CursorDefault, g.Cursor())

	assert.Equal(t, []Cursor{CursorResizeH, CursorResizeV, CursorDefault}, p.cursors,
		"the platform only hears about changes")
}

func TestResize_Column(t *testing.T) {
	var got []int
	g, _ := newTestGrid(3, 3, WithCallbacks(Callbacks{
		Resize: func(o Orientation, index, size int) Action {
			got = []int{int(o), index, size}
			return ActionDefault
		},
	}))
	g.SetFocus(2, 2)

	require.True(t, press(g, 140, 10))
	assert.True(t, g.Resizing())
	move(g, 170, 10)
	assert.Equal(t, 130, g.ColumnWidth(1), "the width follows the pointer")
	release(g, 170, 10)

	assert.False(t, g.Resizing())
	assert.Equal(t, 130, g.ColumnWidth(1))
	assert.Equal(t, []int{int(Horizontal), 1, 130}, got)
	assertFocus(t, g, 2, 2)

	r, _ := g.PixelRect(1, 2)
	assert.Equal(t, 170, r.X)
}

func TestResize_Row(t *testing.T) {
	g, _ := newTestGrid(3, 3)

	press(g, 10, 40)
	move(g, 10, 55)
	release(g, 10, 55)
	assert.Equal(t, 35, g.RowHeight(1))
	assert.Equal(t, 20, g.RowHeight(2))
}

func TestResize_Refused(t *testing.T) {
	g, _ := newTestGrid(3, 3, WithCallbacks(Callbacks{
		Resize: func(o Orientation, index, size int) Action { return ActionIgnore },
	}))

	press(g, 140, 10)
	move(g, 190, 10)
	assert.Equal(t, 150, g.ColumnWidth(1))
	release(g, 190, 10)
	assert.Equal(t, 100, g.ColumnWidth(1))
}

func TestResize_MinimumSize(t *testing.T) {
	g, _ := newTestGrid(3, 3)

	press(g, 240, 10)
	move(g, 0, 10)
	release(g, 0, 10)
	assert.Equal(t, 4, g.ColumnWidth(2))
}

func TestResize_Disabled(t *testing.T) {
	g, p := newTestGrid(3, 3, WithResizable(false))

	move(g, 139, 10)
	assert.Empty(t, p.cursors)
	press(g, 140, 10)
	assert.False(t, g.Resizing())
}

func TestResize_ZeroTolerance(t *testing.T) {
	g, _ := newTestGrid(3, 3, WithResizeTolerance(0))

	assert.True(t, nearEdge(139, 140, 0))
	assert.False(t, nearEdge(140, 140, 0))

	move(g, 138, 10)
	assert.Equal(t, CursorDefault, g.Cursor())
	move(g, 139, 10)
	assert.Equal(t, CursorResizeH, g.Cursor())
}

func TestResize_ScrolledColumn(t *testing.T) {
	g, _ := newTestGrid(3, 8)
	g.SetScrollOffset(150, 0)

	// Column 3 ends at content 300, viewport 40+300-150.
	move(g, 190, 10)
	assert.Equal(t, CursorResizeH, g.Cursor())
	press(g, 190, 10)
	move(g, 200, 10)
	release(g, 200, 10)
	assert.Equal(t, 110, g.ColumnWidth(3))
}

func TestResize_FocusLossCancelsDrag(t *testing.T) {
	g, _ := newTestGrid(3, 3)

	press(g, 140, 10)
	g.HandleFocus(false)
	assert.False(t, g.Resizing())
}
