package matrix

import "math"

// wheelRows is how many lines one wheel step scrolls.
const wheelRows = 3

// HandleButton processes a mouse button press or release. Reports whether
// the grid used it.
func (g *Grid) HandleButton(ev ButtonEvent) bool {
	if !g.visible {
		return false
	}
	g.BeginUpdate()
	defer g.EndUpdate()

	if !ev.Pressed {
		return g.release(ev)
	}
	if ev.Button == MouseButtonLeft && g.resizeStart(ev.X, ev.Y) {
		g.updateCursor(ev.X, ev.Y)
		return true
	}
	if g.edit != nil && ev.Button == MouseButtonLeft && g.editClick(ev.X, ev.Y) {
		return true
	}

	row, col, ok := g.CellAt(ev.X, ev.Y)
	if !ok {
		return false
	}
	if g.edit != nil {
		if ev.Button == MouseButtonLeft && row > 0 && col > 0 && !g.leaveForEdit(row, col) {
			return true
		}
		defer func() { g.leaveAsked = false }()
		if !g.commitEdit() {
			return true
		}
	}

	click := CellClick{Row: row, Col: col, X: ev.X, Y: ev.Y, Button: ev.Button, Double: ev.Double, Mods: ev.Mods}
	if g.cb.Click != nil && g.cb.Click(click) == ActionIgnore {
		return true
	}
	if ev.Button != MouseButtonLeft {
		return true
	}

	if row > 0 && col > 0 && !g.moveFocus(row, col) {
		return true
	}
	g.markPress(row, col, ev.Mods)
	if ev.Double && row > 0 && col > 0 {
		g.markRelease()
		g.openEdit("", false)
	}
	return true
}

func (g *Grid) release(ev ButtonEvent) bool {
	used := false
	if ev.Button == MouseButtonLeft {
		if g.resize.active {
			g.resizeEnd()
			g.updateCursor(ev.X, ev.Y)
			return true
		}
		if g.marks.dragging {
			g.markRelease()
			used = true
		}
	}
	if g.cb.Release != nil {
		if row, col, ok := g.CellAt(ev.X, ev.Y); ok {
			g.cb.Release(CellClick{Row: row, Col: col, X: ev.X, Y: ev.Y, Button: ev.Button, Mods: ev.Mods})
			used = true
		}
	}
	return used
}

// HandleMotion processes a pointer move: resize drags, mark drags and
// the hover cursor over title boundaries.
func (g *Grid) HandleMotion(ev MotionEvent) {
	if !g.visible {
		return
	}
	g.BeginUpdate()
	defer g.EndUpdate()

	if g.resize.active {
		g.resizeMove(ev.X, ev.Y)
	} else if g.marks.dragging {
		if row, col, ok := g.dataCellAt(ev.X, ev.Y); ok {
			g.markDrag(row, col)
		}
	}
	g.updateCursor(ev.X, ev.Y)
}

// HandleWheel scrolls by wheelRows lines per step. Shift turns vertical
// steps into horizontal ones.
func (g *Grid) HandleWheel(ev WheelEvent) bool {
	if !g.visible {
		return false
	}
	dy, dx := ev.DY, ev.DX
	if ev.Mods.Has(ModShift) {
		dx, dy = dx+dy, 0
	}
	rows, cols := wheelLines(dy), wheelLines(dx)
	if rows == 0 && cols == 0 {
		return false
	}
	x, y := g.scrollX, g.scrollY
	g.ScrollBy(rows, cols)
	return x != g.scrollX || y != g.scrollY
}

// wheelLines converts a wheel delta (positive towards the top) into lines
// to scroll, never rounding a non-zero delta down to nothing.
func wheelLines(d float64) int {
	if d == 0 {
		return 0
	}
	n := int(math.Round(-d * wheelRows))
	if n == 0 {
		n = int(math.Copysign(1, -d))
	}
	return n
}
