package matrix

import (
	"fmt"
	"strings"
)

// MarkMode selects what a mark applies to.
type MarkMode uint8

const (
	MarkNone   MarkMode = iota
	MarkCell            // Individual cells
	MarkRow             // Whole rows
	MarkColumn          // Whole columns
)

func (m MarkMode) String() string {
	switch m {
	case MarkCell:
		return "CELL"
	case MarkRow:
		return "ROW"
	case MarkColumn:
		return "COLUMN"
	default:
		return "NONE"
	}
}

// ParseMarkMode parses NONE, CELL, ROW or COLUMN. NO, LIN and COL are
// accepted as well.
func ParseMarkMode(s string) (MarkMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE", "NO":
		return MarkNone, nil
	case "CELL":
		return MarkCell, nil
	case "ROW", "LIN":
		return MarkRow, nil
	case "COLUMN", "COL":
		return MarkColumn, nil
	}
	return MarkNone, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarkArea is the shape a multiple mark can take.
type MarkArea uint8

const (
	MarkContinuous    MarkArea = iota // One rectangle
	MarkDiscontinuous                 // Any set
)

func (a MarkArea) String() string {
	if a == MarkDiscontinuous {
		return "DISCONTINUOUS"
	}
	return "CONTINUOUS"
}

// ParseMarkArea parses CONTINUOUS or DISCONTINUOUS (NOT_CONTINUOUS too).
func ParseMarkArea(s string) (MarkArea, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "CONTINUOUS":
		return MarkContinuous, nil
	case "DISCONTINUOUS", "NOT_CONTINUOUS":
		return MarkDiscontinuous, nil
	}
	return MarkContinuous, fmt.Errorf("%w: area %q", ErrInvalidMode, s)
}

// markState is the selection policy plus the transient drag state. The
// mark bits themselves live on the axes (rows, columns) or the cells.
type markState struct {
	mode     MarkMode
	area     MarkArea
	multiple bool

	anchor    Address
	hasAnchor bool

	dragging bool
	band     markBand
	last     Address
	base     map[Address]bool // Marks kept under a discontinuous drag
}

// markBand records that a CELL mode drag started on a title, so it keeps
// covering whole columns or rows.
type markBand uint8

const (
	bandNone markBand = iota
	bandColumns
	bandRows
)

// MarkMode returns the selection policy.
func (g *Grid) MarkMode() (mode MarkMode, area MarkArea, multiple bool) {
	return g.marks.mode, g.marks.area, g.marks.multiple
}

// SetMarkMode changes the selection policy. Existing marks are cleared.
func (g *Grid) SetMarkMode(mode MarkMode, area MarkArea, multiple bool) {
	m := &g.marks
	if m.mode == mode && m.area == area && m.multiple == multiple {
		return
	}
	g.ClearMarks()
	m.mode, m.area, m.multiple = mode, area, multiple
	m.hasAnchor, m.dragging, m.base = false, false, nil
	g.invalidate()
}

// unit returns the markable unit containing a cell.
func (g *Grid) unit(row, col int) Address {
	switch g.marks.mode {
	case MarkRow:
		return Address{Row: row}
	case MarkColumn:
		return Address{Col: col}
	}
	return Address{Row: row, Col: col}
}

func (g *Grid) unitValid(u Address) bool {
	switch g.marks.mode {
	case MarkRow:
		return u.Row >= 1 && u.Row <= g.Rows()
	case MarkColumn:
		return u.Col >= 1 && u.Col <= g.Cols()
	case MarkCell:
		return u.Row >= 1 && u.Row <= g.Rows() && u.Col >= 1 && u.Col <= g.Cols()
	}
	return false
}

func (g *Grid) unitMarked(u Address) bool {
	switch g.marks.mode {
	case MarkRow:
		return g.rows.marked(u.Row)
	case MarkColumn:
		return g.cols.marked(u.Col)
	case MarkCell:
		return g.cells.marked(u.Row, u.Col)
	}
	return false
}

// setUnit changes one mark bit. CanMark can refuse to set it. Reports
// whether the bit changed.
func (g *Grid) setUnit(u Address, on bool) bool {
	if g.unitMarked(u) == on {
		return false
	}
	if on && !g.cb.canMark(u.Row, u.Col) {
		return false
	}
	switch g.marks.mode {
	case MarkRow:
		g.rows.setMarked(u.Row, on)
	case MarkColumn:
		g.cols.setMarked(u.Col, on)
	case MarkCell:
		g.cells.setMarked(u.Row, u.Col, on)
	default:
		return false
	}
	g.cb.markChanged(u.Row, u.Col, on)
	g.invalidate()
	return true
}

// units calls fn for every markable unit of the current mode.
func (g *Grid) units(fn func(u Address)) {
	switch g.marks.mode {
	case MarkRow:
		for r := 1; r <= g.Rows(); r++ {
			fn(Address{Row: r})
		}
	case MarkColumn:
		for c := 1; c <= g.Cols(); c++ {
			fn(Address{Col: c})
		}
	case MarkCell:
		for r := 1; r <= g.Rows(); r++ {
			for c := 1; c <= g.Cols(); c++ {
				fn(Address{Row: r, Col: c})
			}
		}
	}
}

// IsMarked reports whether a data cell is marked, directly or through its
// row or column.
func (g *Grid) IsMarked(row, col int) bool {
	if row < 1 || row > g.Rows() || col < 1 || col > g.Cols() {
		return false
	}
	return g.unitMarked(g.unit(row, col))
}

func (g *Grid) anyMarked() bool {
	found := false
	g.units(func(u Address) {
		if !found && g.unitMarked(u) {
			found = true
		}
	})
	return found
}

// ClearMarks unmarks everything.
func (g *Grid) ClearMarks() {
	g.Update(func() {
		g.units(func(u Address) { g.setUnit(u, false) })
	})
}

// markRect marks the units inside the rectangle spanned by two corners
// and unmarks every other unit that isn't in keep.
func (g *Grid) markRect(a, b Address, keep map[Address]bool) {
	r0, r1 := min(a.Row, b.Row), max(a.Row, b.Row)
	c0, c1 := min(a.Col, b.Col), max(a.Col, b.Col)
	mode := g.marks.mode
	g.Update(func() {
		g.units(func(u Address) {
			in := (mode == MarkColumn || u.Row >= r0 && u.Row <= r1) &&
				(mode == MarkRow || u.Col >= c0 && u.Col <= c1)
			g.setUnit(u, in || keep[u])
		})
	})
}

func (g *Grid) snapshotMarks() map[Address]bool {
	m := make(map[Address]bool)
	g.units(func(u Address) {
		if g.unitMarked(u) {
			m[u] = true
		}
	})
	return m
}

// Mark marks the unit containing a data cell. With a continuous multiple
// policy the mark spans the rectangle from the mark anchor, keeping the
// marked set a single block; without multiple it replaces the old mark.
// Reports whether the unit is marked afterwards.
func (g *Grid) Mark(row, col int) bool {
	u := g.unit(row, col)
	if !g.unitValid(u) {
		return false
	}
	m := &g.marks
	switch {
	case !m.multiple:
		g.markRect(u, u, nil)
		m.anchor, m.hasAnchor = u, true
	case m.area == MarkContinuous:
		if !m.hasAnchor || !g.unitValid(m.anchor) {
			m.anchor, m.hasAnchor = Address{Row: row, Col: col}, true
		}
		g.markRect(m.anchor, Address{Row: row, Col: col}, nil)
	default:
		g.setUnit(u, true)
	}
	return g.unitMarked(u)
}

// Unmark unmarks the unit containing a data cell. A continuous block
// can't have holes, so unmarking one of its units clears the block.
// Reports whether anything changed.
func (g *Grid) Unmark(row, col int) bool {
	u := g.unit(row, col)
	if !g.unitValid(u) || !g.unitMarked(u) {
		return false
	}
	if g.marks.multiple && g.marks.area == MarkContinuous {
		g.ClearMarks()
		return true
	}
	return g.setUnit(u, false)
}

// MarkAll marks every unit. It needs a multiple policy.
func (g *Grid) MarkAll() {
	if g.marks.mode == MarkNone || !g.marks.multiple {
		return
	}
	g.markRect(Address{Row: 1, Col: 1}, Address{Row: g.Rows(), Col: g.Cols()}, nil)
}

// Marked describes the marked set: "" when nothing is marked, "L"
// followed by one 0/1 per row in ROW mode, "C" followed by one per
// column in COLUMN mode, one per cell in row-major order in CELL mode.
func (g *Grid) Marked() string {
	if !g.anyMarked() {
		return ""
	}
	var b strings.Builder
	switch g.marks.mode {
	case MarkRow:
		b.WriteByte('L')
	case MarkColumn:
		b.WriteByte('C')
	}
	g.units(func(u Address) {
		if g.unitMarked(u) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	})
	return b.String()
}

// SetMarked replaces the marked set from a description in the format
// Marked returns. CanMark still applies to every unit.
func (g *Grid) SetMarked(s string) error {
	if s == "" {
		g.ClearMarks()
		return nil
	}
	var want int
	switch g.marks.mode {
	case MarkRow:
		if s[0] != 'L' {
			return fmt.Errorf("%w: ROW mode needs an L prefix", ErrInvalidMarkString)
		}
		s, want = s[1:], g.Rows()
	case MarkColumn:
		if s[0] != 'C' {
			return fmt.Errorf("%w: COLUMN mode needs a C prefix", ErrInvalidMarkString)
		}
		s, want = s[1:], g.Cols()
	case MarkCell:
		want = g.Rows() * g.Cols()
	default:
		return fmt.Errorf("%w: mark mode is NONE", ErrInvalidMarkString)
	}
	if len(s) != want {
		return fmt.Errorf("%w: got %d flags, want %d", ErrInvalidMarkString, len(s), want)
	}
	if strings.Trim(s, "01") != "" {
		return fmt.Errorf("%w: flags must be 0 or 1", ErrInvalidMarkString)
	}
	i := 0
	g.Update(func() {
		g.units(func(u Address) {
			g.setUnit(u, s[i] == '1')
			i++
		})
	})
	return nil
}

// markTarget returns the corners of the units a press on (row, col)
// selects. Title presses select whole rows or columns in CELL mode.
func (g *Grid) markTarget(row, col int) (a, b Address, ok bool) {
	R, C := g.Rows(), g.Cols()
	if R == 0 || C == 0 {
		return a, b, false
	}
	switch g.marks.mode {
	case MarkRow:
		if row == 0 {
			return a, b, false
		}
		return Address{Row: row}, Address{Row: row}, true
	case MarkColumn:
		if col == 0 {
			return a, b, false
		}
		return Address{Col: col}, Address{Col: col}, true
	case MarkCell:
		switch {
		case row == 0 && col == 0:
			return Address{Row: 1, Col: 1}, Address{Row: R, Col: C}, true
		case row == 0:
			return Address{Row: 1, Col: col}, Address{Row: R, Col: col}, true
		case col == 0:
			return Address{Row: row, Col: 1}, Address{Row: row, Col: C}, true
		}
		return Address{Row: row, Col: col}, Address{Row: row, Col: col}, true
	}
	return a, b, false
}

// markPress starts marking on a button press.
func (g *Grid) markPress(row, col int, mods Mods) {
	a, b, ok := g.markTarget(row, col)
	if !ok {
		return
	}
	m := &g.marks
	m.base = nil

	switch {
	case !m.multiple:
		g.markRect(a, a, nil)
		m.anchor, m.hasAnchor = a, true

	case mods.Has(ModShift) && m.hasAnchor && g.unitValid(g.unit(m.anchor.Row, m.anchor.Col)):
		lo := Address{Row: min(m.anchor.Row, a.Row), Col: min(m.anchor.Col, a.Col)}
		hi := Address{Row: max(m.anchor.Row, b.Row), Col: max(m.anchor.Col, b.Col)}
		if m.area == MarkDiscontinuous {
			m.base = g.snapshotMarks()
		}
		g.markRect(lo, hi, m.base)

	case mods.Has(ModCtrl) && m.area == MarkDiscontinuous:
		all := true
		g.forRect(a, b, func(u Address) {
			if !g.unitMarked(u) {
				all = false
			}
		})
		g.Update(func() {
			g.forRect(a, b, func(u Address) { g.setUnit(u, !all) })
		})
		m.anchor, m.hasAnchor = a, true
		m.base = g.snapshotMarks()

	default:
		g.markRect(a, b, nil)
		m.anchor, m.hasAnchor = a, true
	}
	m.dragging = true
	m.last = g.unit(row, col)
	m.band = bandNone
	if m.mode == MarkCell && m.multiple {
		switch {
		case row == 0 && col > 0:
			m.band = bandColumns
		case col == 0 && row > 0:
			m.band = bandRows
		}
	}
}

// forRect calls fn for the units within two corners.
func (g *Grid) forRect(a, b Address, fn func(u Address)) {
	r0, r1 := min(a.Row, b.Row), max(a.Row, b.Row)
	c0, c1 := min(a.Col, b.Col), max(a.Col, b.Col)
	mode := g.marks.mode
	g.units(func(u Address) {
		if (mode == MarkColumn || u.Row >= r0 && u.Row <= r1) &&
			(mode == MarkRow || u.Col >= c0 && u.Col <= c1) {
			fn(u)
		}
	})
}

// markDrag extends the mark while the button is held. Nothing happens
// until the pointer reaches another unit.
func (g *Grid) markDrag(row, col int) {
	m := &g.marks
	if !m.dragging || m.mode == MarkNone {
		return
	}
	cur := Address{Row: row, Col: col}
	switch m.band {
	case bandColumns:
		cur.Row = g.Rows()
	case bandRows:
		cur.Col = g.Cols()
	}
	u := g.unit(cur.Row, cur.Col)
	if u == m.last {
		return
	}
	m.last = u
	if !m.multiple {
		g.markRect(u, u, nil)
		m.anchor = u
		return
	}
	g.markRect(m.anchor, cur, m.base)
}

func (g *Grid) markRelease() {
	g.marks.dragging = false
	g.marks.band = bandNone
	g.marks.base = nil
}

// markKey updates marks after keyboard navigation from prev to the focus
// cell. Shift extends the block from the anchor; otherwise the focus
// becomes the new anchor.
func (g *Grid) markKey(prev Address, mods Mods) {
	m := &g.marks
	if m.mode == MarkNone {
		return
	}
	cur := Address{Row: g.focusRow, Col: g.focusCol}
	if !mods.Has(ModShift) || !m.multiple {
		m.anchor, m.hasAnchor = cur, true
		return
	}
	if !m.hasAnchor {
		m.anchor, m.hasAnchor = prev, true
	}
	var keep map[Address]bool
	if m.area == MarkDiscontinuous {
		keep = g.snapshotMarks()
	}
	g.markRect(m.anchor, cur, keep)
}
