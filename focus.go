package matrix

import "unicode"

// Focus returns the focus cell, or (0, 0) when the grid has no data cells.
func (g *Grid) Focus() (row, col int) { return g.focusRow, g.focusCol }

// SetFocus moves the focus to a data cell, clamping it to the grid. The
// Leave and Enter callbacks run as for interactive moves and either can
// veto it. An open edit session is committed first. Reports whether the
// focus is on the requested (clamped) cell afterwards.
func (g *Grid) SetFocus(row, col int) bool {
	g.BeginUpdate()
	defer g.EndUpdate()
	return g.moveFocus(row, col)
}

// HasFocus reports whether the grid holds the keyboard focus.
func (g *Grid) HasFocus() bool { return g.hasFocus }

// HandleFocus tells the grid it gained or lost the keyboard focus. An open
// edit session stays open.
func (g *Grid) HandleFocus(focused bool) {
	if focused == g.hasFocus {
		return
	}
	g.hasFocus = focused
	if !focused {
		g.resize = resizeState{}
		g.markRelease()
	}
	g.invalidate()
}

// FocusVisible reports whether the focus rectangle is in the visible
// phase of its blink.
func (g *Grid) FocusVisible() bool { return g.focusVisible }

// BlinkFocus toggles the focus rectangle. Call it from the platform's
// blink timer; the grid only repaints when the rectangle is on screen.
func (g *Grid) BlinkFocus() {
	g.focusVisible = !g.focusVisible
	if g.hasFocus && g.focusRow > 0 && g.edit == nil {
		g.invalidate()
	}
}

// resetFocus puts the focus on the first data cell, or nowhere.
func (g *Grid) resetFocus() {
	if g.Rows() == 0 || g.Cols() == 0 {
		g.focusRow, g.focusCol = 0, 0
		return
	}
	g.focusRow, g.focusCol = 1, 1
}

// clampFocus keeps the focus valid after a structural edit. No callbacks
// run: the old cell may no longer exist.
func (g *Grid) clampFocus() {
	if g.Rows() == 0 || g.Cols() == 0 {
		g.focusRow, g.focusCol = 0, 0
		return
	}
	g.focusRow = clamp(g.focusRow, 1, g.Rows())
	g.focusCol = clamp(g.focusCol, 1, g.Cols())
}

// moveFocus is the single path for focus changes.
func (g *Grid) moveFocus(row, col int) bool {
	asked := g.leaveAsked
	g.leaveAsked = false
	if g.Rows() == 0 || g.Cols() == 0 {
		return false
	}
	row, col = clamp(row, 1, g.Rows()), clamp(col, 1, g.Cols())
	if row == g.focusRow && col == g.focusCol {
		g.ScrollToVisible(row, col)
		return true
	}
	// A vetoed leave keeps an open edit open.
	oldRow, oldCol := g.focusRow, g.focusCol
	if oldRow > 0 && !asked && !g.cb.leave(oldRow, oldCol) {
		logger.Debug("focus leave vetoed", "row", oldRow, "col", oldCol)
		return false
	}
	if g.edit != nil && !g.commitEdit() {
		return false
	}
	g.focusRow, g.focusCol = row, col
	if !g.cb.enter(row, col) {
		logger.Debug("focus enter vetoed", "row", row, "col", col)
		g.focusRow, g.focusCol = oldRow, oldCol
		return false
	}
	g.focusVisible = true
	g.ScrollToVisible(row, col)
	g.invalidate()
	return true
}

// leaveForEdit consults Leave before an open edit is committed by a move
// to (row, col); a negative row means the target isn't known yet. The
// answer stands for the moveFocus that follows.
func (g *Grid) leaveForEdit(row, col int) bool {
	if g.focusRow == 0 || (row == g.focusRow && col == g.focusCol) {
		return true
	}
	if !g.cb.leave(g.focusRow, g.focusCol) {
		logger.Debug("focus leave vetoed", "row", g.focusRow, "col", g.focusCol)
		return false
	}
	g.leaveAsked = true
	return true
}

// HandleKey processes a key press. Reports whether the grid consumed it;
// an unconsumed Tab means the focus should leave the grid.
func (g *Grid) HandleKey(ev KeyEvent) bool {
	if !g.visible {
		return false
	}
	if ev.Key != KeyHome {
		g.homeCount = 0
	}
	if ev.Key != KeyEnd {
		g.endCount = 0
	}

	g.BeginUpdate()
	defer g.EndUpdate()

	if g.edit != nil {
		return g.editKey(ev)
	}
	return g.navKey(ev)
}

// navKey handles a key with no edit session open.
func (g *Grid) navKey(ev KeyEvent) bool {
	R, C := g.Rows(), g.Cols()
	if R == 0 || C == 0 || g.focusRow == 0 {
		return false
	}
	row, col := g.focusRow, g.focusCol
	ctrl := ev.Mods.Has(ModCtrl)

	switch ev.Key {
	case KeyLeft:
		return g.navigate(row, col-1, ev.Mods)
	case KeyRight:
		return g.navigate(row, col+1, ev.Mods)
	case KeyUp:
		return g.navigate(row-1, col, ev.Mods)
	case KeyDown:
		if ev.Mods.Has(ModAlt) {
			return g.openList()
		}
		return g.navigate(row+1, col, ev.Mods)
	case KeyPageUp:
		return g.navigate(row-max(g.FullyVisibleRows(), 1), col, ev.Mods)
	case KeyPageDown:
		return g.navigate(row+max(g.FullyVisibleRows(), 1), col, ev.Mods)

	case KeyHome:
		if ctrl {
			return g.navigate(1, 1, ev.Mods)
		}
		g.homeCount++
		if g.homeCount == 1 {
			return g.navigate(row, 1, ev.Mods)
		}
		return g.navigate(1, 1, ev.Mods)
	case KeyEnd:
		if ctrl {
			return g.navigate(R, C, ev.Mods)
		}
		g.endCount++
		if g.endCount == 1 {
			return g.navigate(row, C, ev.Mods)
		}
		return g.navigate(R, C, ev.Mods)

	case KeyTab:
		return g.tab(ev.Mods.Has(ModShift))

	case KeyEnter, KeyF2, KeySpace:
		return g.EditStart()
	case KeyF4:
		return g.openList()
	case KeyBackspace:
		return g.openEdit("", true)
	case KeyDelete:
		return g.deleteValues()

	case KeyA:
		if ctrl {
			g.MarkAll()
			return true
		}
	case KeyChar:
		if ev.Mods&(ModCtrl|ModAlt) != 0 {
			return false
		}
		if ev.Rune == ' ' {
			return g.EditStart()
		}
		if unicode.IsPrint(ev.Rune) {
			return g.openEdit(string(ev.Rune), true)
		}
	}
	return false
}

// navigate moves the focus for a navigation key and updates marks.
func (g *Grid) navigate(row, col int, mods Mods) bool {
	prev := Address{Row: g.focusRow, Col: g.focusCol}
	if g.moveFocus(row, col) {
		g.markKey(prev, mods)
	}
	return true
}

// tab moves to the next or previous cell in row-major order. The first
// and last cells don't wrap: the key is left to the caller.
func (g *Grid) tab(back bool) bool {
	row, col := g.focusRow, g.focusCol
	R, C := g.Rows(), g.Cols()
	if !back {
		switch {
		case col < C:
			col++
		case row < R:
			row, col = row+1, 1
		default:
			return false
		}
	} else {
		switch {
		case col > 1:
			col--
		case row > 1:
			row, col = row-1, C
		default:
			return false
		}
	}
	return g.navigate(row, col, 0)
}
