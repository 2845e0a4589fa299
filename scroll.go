package matrix

// ScrollOffset returns the scroll position in content pixels: the amount
// of data scrolled past on each axis. The title band is not included.
func (g *Grid) ScrollOffset() (x, y int) { return g.scrollX, g.scrollY }

// SetScrollOffset scrolls to a content pixel position. The position is
// clamped so the data never scrolls past its end.
func (g *Grid) SetScrollOffset(x, y int) {
	x = clamp(x, 0, g.maxScroll(Horizontal))
	y = clamp(y, 0, g.maxScroll(Vertical))
	if x == g.scrollX && y == g.scrollY {
		return
	}
	g.scrollX, g.scrollY = x, y
	g.afterScroll()
}

// Origin returns the first (possibly partly) visible data row and column,
// or 0 on an empty axis.
func (g *Grid) Origin() (row, col int) {
	row, _ = g.rows.indexAt(g.scrollY)
	col, _ = g.cols.indexAt(g.scrollX)
	return row, col
}

// SetOrigin scrolls so that row and col are the first visible data row
// and column, as far as the content allows. 0 leaves an axis unchanged.
func (g *Grid) SetOrigin(row, col int) {
	x, y := g.scrollX, g.scrollY
	if col > 0 {
		x = g.cols.offset(clamp(col, 1, g.Cols()))
	}
	if row > 0 {
		y = g.rows.offset(clamp(row, 1, g.Rows()))
	}
	g.SetScrollOffset(x, y)
}

// ScrollToVisible scrolls by the smallest amount that brings a data cell
// fully into view. A cell larger than the data area is aligned to its
// leading edge. 0 on either coordinate leaves that axis alone. Returns
// whether the scroll position changed.
func (g *Grid) ScrollToVisible(row, col int) bool {
	x, y := g.scrollX, g.scrollY
	if col > 0 && g.cols.valid(col) {
		x = scrollFor(g.cols, col, g.scrollX, g.viewW())
	}
	if row > 0 && g.rows.valid(row) {
		y = scrollFor(g.rows, row, g.scrollY, g.viewH())
	}
	if x == g.scrollX && y == g.scrollY {
		return false
	}
	g.SetScrollOffset(x, y)
	return true
}

// scrollFor returns the offset that brings line i into view with the least
// movement. A line larger than the view is aligned on the edge nearest to
// the current offset and left alone when it already fills the view.
func scrollFor(a *Axis, i, scroll, view int) int {
	start := a.offset(i)
	end := start + a.Size(i)
	if end-start >= view {
		switch {
		case start >= scroll:
			return start
		case end <= scroll+view:
			return end - view
		}
		return scroll
	}
	switch {
	case start < scroll:
		return start
	case end > scroll+view:
		return end - view
	}
	return scroll
}

// ScrollBy scrolls by whole lines; positive values move towards the end.
func (g *Grid) ScrollBy(rows, cols int) {
	row, col := g.Origin()
	if rows != 0 && row > 0 {
		row = clamp(row+rows, 1, g.Rows())
	} else {
		row = 0
	}
	if cols != 0 && col > 0 {
		col = clamp(col+cols, 1, g.Cols())
	} else {
		col = 0
	}
	g.SetOrigin(row, col)
}

// Scrollbar returns the thumb position and size of one axis, both as
// fractions of the content extent in [0,1]. An empty axis reports (0, 1).
func (g *Grid) Scrollbar(o Orientation) (pos, size float64) {
	a, scroll, view := g.cols, g.scrollX, g.viewW()
	if o == Vertical {
		a, scroll, view = g.rows, g.scrollY, g.viewH()
	}
	total := a.total()
	if total <= 0 {
		return 0, 1
	}
	return clampf(float64(scroll)/float64(total), 0, 1), clampf(float64(view)/float64(total), 0, 1)
}

// FullyVisibleRows returns how many data rows fit entirely in the data
// area starting at the current origin.
func (g *Grid) FullyVisibleRows() int {
	first, last := g.rows.visible(g.scrollY, g.viewH())
	n := 0
	for r := first; r <= last; r++ {
		if g.rowFullyVisible(r) {
			n++
		}
	}
	return n
}

func (g *Grid) rowFullyVisible(row int) bool {
	start := g.rows.offset(row) - g.scrollY
	return start >= 0 && start+g.rows.Size(row) <= g.viewH()
}

func (g *Grid) maxScroll(o Orientation) int {
	if o == Vertical {
		return max(0, g.rows.total()-g.viewH())
	}
	return max(0, g.cols.total()-g.viewW())
}

func (g *Grid) clampScroll() {
	x := clamp(g.scrollX, 0, g.maxScroll(Horizontal))
	y := clamp(g.scrollY, 0, g.maxScroll(Vertical))
	if x != g.scrollX || y != g.scrollY {
		g.scrollX, g.scrollY = x, y
		g.afterScroll()
	}
}

func (g *Grid) afterScroll() {
	logger.Debug("scroll", "x", g.scrollX, "y", g.scrollY)
	if g.edit != nil && g.visible {
		g.edit.hidden = !g.cellFullyVisible(g.edit.row, g.edit.col)
	}
	g.invalidate()
}

// syncScrollbars reports changed thumb geometry to the platform.
func (g *Grid) syncScrollbars() {
	for _, o := range []Orientation{Horizontal, Vertical} {
		pos, size := g.Scrollbar(o)
		if g.bars[o] == [2]float64{pos, size} {
			continue
		}
		g.bars[o] = [2]float64{pos, size}
		g.platform.SetScrollbar(o, pos, size)
	}
}
