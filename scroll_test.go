package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollToVisible_NoOpForVisibleCell(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	assert.False(t, g.ScrollToVisible(2, 2))
	x, y := g.ScrollOffset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestScrollToVisible_AlignsTrailingEdge(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	width, _ := g.Viewport()

	assert.True(t, g.ScrollToVisible(1, 5))
	r, _ := g.PixelRect(1, 5)
	assert.Equal(t, width, r.X+r.W, "right edge meets the viewport edge")

	x, _ := g.ScrollOffset()
	assert.Equal(t, 100, x)

	// Back to the first column aligns its leading edge.
	assert.True(t, g.ScrollToVisible(1, 1))
	x, _ = g.ScrollOffset()
	assert.Zero(t, x)
}

func TestScrollToVisible_LargeCellAlignsLeadingEdge(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	g.SetColumnWidth(6, 1000)

	g.ScrollToVisible(1, 6)
	r, _ := g.PixelRect(1, 6)
	assert.Equal(t, 40, r.X)
}

func TestScrollToVisible_LargeCellBackwardsAlignsTrailingEdge(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	g.SetColumnWidth(2, 1000)
	width, _ := g.Viewport()

	g.ScrollToVisible(1, 8)
	x, _ := g.ScrollOffset()
	assert.Equal(t, 1300, x)

	assert.True(t, g.ScrollToVisible(1, 2))
	r, _ := g.PixelRect(1, 2)
	assert.Equal(t, width, r.X+r.W, "coming from the right shows the right edge")
	x, _ = g.ScrollOffset()
	assert.Equal(t, 700, x)

	assert.False(t, g.ScrollToVisible(1, 2), "a cell filling the view stays put")
}

func TestSetScrollOffset_Clamps(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	g.SetScrollOffset(10000, 10000)
	x, y := g.ScrollOffset()
	assert.Equal(t, 8*100-400, x)
	assert.Equal(t, 10*20-60, y)

	g.SetScrollOffset(-5, -5)
	x, y = g.ScrollOffset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestOrigin(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	g.SetOrigin(4, 3)
	row, col := g.Origin()
	assert.Equal(t, 4, row)
	assert.Equal(t, 3, col)

	g.ScrollBy(1, -1)
	row, col = g.Origin()
	assert.Equal(t, 5, row)
	assert.Equal(t, 2, col)

	g.ScrollBy(100, 0)
	row, _ = g.Origin()
	assert.Equal(t, 8, row, "the last page starts at row 8")
}

func TestScrollbar(t *testing.T) {
	g, _ := newTestGrid(10, 8)

	pos, size := g.Scrollbar(Vertical)
	assert.InDelta(t, 0, pos, 1e-9)
	assert.InDelta(t, 0.3, size, 1e-9)

	g.SetScrollOffset(200, 0)
	pos, size = g.Scrollbar(Horizontal)
	assert.InDelta(t, 0.25, pos, 1e-9)
	assert.InDelta(t, 0.5, size, 1e-9)

	empty, _ := newTestGrid(0, 0)
	pos, size = empty.Scrollbar(Vertical)
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, 1.0, size)
}

func TestFullyVisibleRows(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	assert.Equal(t, 3, g.FullyVisibleRows())

	g.SetScrollOffset(0, 10)
	assert.Equal(t, 2, g.FullyVisibleRows(), "two partial rows at the edges")
}

func TestHandleWheel(t *testing.T) {
	g, _ := newTestGrid(20, 8)
	g.SetOrigin(10, 1)

	assert.True(t, g.HandleWheel(WheelEvent{DY: 1}))
	row, _ := g.Origin()
	assert.Equal(t, 7, row, "wheel up scrolls three rows back")

	assert.True(t, g.HandleWheel(WheelEvent{DY: -0.1}))
	row, _ = g.Origin()
	assert.Equal(t, 8, row, "a small step still scrolls one row")

	assert.True(t, g.HandleWheel(WheelEvent{DY: -1, Mods: ModShift}))
	_, col := g.Origin()
	assert.Equal(t, 4, col, "shift scrolls columns")
}

func TestScroll_InvalidatesPlatform(t *testing.T) {
	g, p := newTestGrid(10, 8)
	g.Draw(newRecordSurface(440, 80))
	before := p.invalidations

	g.SetScrollOffset(0, 20)
	assert.Equal(t, before+1, p.invalidations)
}
