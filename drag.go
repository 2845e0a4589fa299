package matrix

// Cursor is the pointer shape the grid asks the platform to show.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorResizeH        // Over a column boundary
	CursorResizeV        // Over a row boundary
)

func (c Cursor) String() string {
	switch c {
	case CursorResizeH:
		return "resize-h"
	case CursorResizeV:
		return "resize-v"
	}
	return "default"
}

// resizeState tracks an interactive column or row resize.
type resizeState struct {
	active   bool
	orient   Orientation // Horizontal resizes a column, Vertical a row
	index    int
	anchor   int // Pointer coordinate along orient when the drag started
	original int // Size when the drag started
}

// Resizing reports whether a column or row is being dragged.
func (g *Grid) Resizing() bool { return g.resize.active }

// Cursor returns the pointer shape last requested from the platform.
func (g *Grid) Cursor() Cursor { return g.cursor }

// nearEdge reports whether p is within tol of a boundary at edge. A zero
// tolerance accepts only the last pixel before the boundary.
func nearEdge(p, edge, tol int) bool {
	if tol <= 0 {
		return p == edge-1
	}
	return absi(p-edge) <= tol
}

// resizeHit finds a resizable boundary under the pointer: the right edge
// of a data column inside the column-title band, or the bottom edge of a
// data row inside the row-title band.
func (g *Grid) resizeHit(x, y int) (o Orientation, index int, ok bool) {
	if !g.resizable {
		return 0, 0, false
	}
	titleW, titleH := g.cols.Size(0), g.rows.Size(0)

	if y >= 0 && y < titleH && x >= titleW && x < g.width {
		first, last := g.cols.visible(g.scrollX, g.viewW())
		best, bestDist := 0, -1
		for c := first; c <= last; c++ {
			if g.cols.Size(c) == 0 {
				continue
			}
			r, _ := g.PixelRect(0, c)
			edge := r.X + r.W
			if nearEdge(x, edge, g.resizeTolerance) && (bestDist < 0 || absi(x-edge) < bestDist) {
				best, bestDist = c, absi(x-edge)
			}
		}
		if best > 0 {
			return Horizontal, best, true
		}
	}

	if x >= 0 && x < titleW && y >= titleH && y < g.height {
		first, last := g.rows.visible(g.scrollY, g.viewH())
		best, bestDist := 0, -1
		for r := first; r <= last; r++ {
			if g.rows.Size(r) == 0 {
				continue
			}
			rc, _ := g.PixelRect(r, 0)
			edge := rc.Y + rc.H
			if nearEdge(y, edge, g.resizeTolerance) && (bestDist < 0 || absi(y-edge) < bestDist) {
				best, bestDist = r, absi(y-edge)
			}
		}
		if best > 0 {
			return Vertical, best, true
		}
	}
	return 0, 0, false
}

func (g *Grid) axis(o Orientation) *Axis {
	if o == Vertical {
		return g.rows
	}
	return g.cols
}

// resizeStart begins a drag when the press lands on a boundary.
func (g *Grid) resizeStart(x, y int) bool {
	o, index, ok := g.resizeHit(x, y)
	if !ok {
		return false
	}
	anchor := x
	if o == Vertical {
		anchor = y
	}
	g.resize = resizeState{
		active:   true,
		orient:   o,
		index:    index,
		anchor:   anchor,
		original: g.axis(o).Size(index),
	}
	logger.Debug("resize start", "orient", o, "index", index, "size", g.resize.original)
	return true
}

// resizeMove follows the pointer while dragging.
func (g *Grid) resizeMove(x, y int) {
	rs := &g.resize
	p := x
	if rs.orient == Vertical {
		p = y
	}
	size := max(g.minSize, rs.original+p-rs.anchor)
	a := g.axis(rs.orient)
	if a.Size(rs.index) == size {
		return
	}
	a.setSize(rs.index, size)
	g.clampScroll()
	g.invalidate()
}

// resizeEnd finishes the drag and lets the application refuse the size.
func (g *Grid) resizeEnd() {
	rs := g.resize
	g.resize = resizeState{}
	a := g.axis(rs.orient)
	size := a.Size(rs.index)
	if g.cb.Resize != nil && g.cb.Resize(rs.orient, rs.index, size) == ActionIgnore {
		logger.Debug("resize refused", "orient", rs.orient, "index", rs.index, "size", size)
		a.setSize(rs.index, rs.original)
		g.clampScroll()
	} else {
		logger.Debug("resize end", "orient", rs.orient, "index", rs.index, "size", size)
	}
	g.invalidate()
}

// updateCursor re-evaluates the pointer shape for a position.
func (g *Grid) updateCursor(x, y int) {
	want := CursorDefault
	if g.resize.active {
		want = CursorResizeH
		if g.resize.orient == Vertical {
			want = CursorResizeV
		}
	} else if o, _, ok := g.resizeHit(x, y); ok {
		want = CursorResizeH
		if o == Vertical {
			want = CursorResizeV
		}
	}
	if want != g.cursor {
		g.cursor = want
		g.platform.SetCursor(want)
	}
}
