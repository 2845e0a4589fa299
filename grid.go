package matrix

import (
	"fmt"
	"strings"
)

// Grid is a spreadsheet-like matrix of cells. Row 0 and column 0 are the
// title band; data cells are 1-based.
//
// A Grid is driven by one goroutine: the platform delivers events through
// the Handle methods, and mutations only mark the grid dirty. The platform
// is asked to repaint once per batch and paints through Flush or Draw.
type Grid struct {
	cells      *CellStore
	rows, cols *Axis

	palette  Palette
	cb       Callbacks
	platform Platform

	width, height    int // Viewport, title band included
	scrollX, scrollY int // Content-space pixel offsets

	focusRow, focusCol int // 0 when the grid is empty
	hasFocus           bool
	focusVisible       bool

	marks  markState
	resize resizeState
	edit   *EditSession

	homeCount, endCount int
	leaveAsked          bool // Leave already accepted for the pending move

	readOnly        bool
	resizable       bool
	resizeTolerance int
	minSize         int
	charW, charH    int
	padding         int
	visible         bool

	dirty       bool
	notified    bool
	updateDepth int
	stats       Stats
	cursor      Cursor
	bars        [2][2]float64
}

// Stats counts redraw bookkeeping.
type Stats struct {
	Repaints      int // Draw calls that painted
	Invalidations int // Requests sent to the platform
}

// New creates a grid.
func New(opts ...Option) *Grid {
	o := applyOptions(opts)

	g := &Grid{
		cells:           newCellStore(o.rows, o.cols, o.callbacks.Value != nil),
		rows:            newAxis(o.rows, o.titleHeight, o.rowHeight),
		cols:            newAxis(o.cols, o.titleWidth, o.colWidth),
		palette:         o.palette,
		cb:              o.callbacks,
		platform:        o.platform,
		width:           o.width,
		height:          o.height,
		focusVisible:    true,
		readOnly:        o.readOnly,
		resizable:       o.resizable,
		resizeTolerance: o.resizeTolerance,
		minSize:         o.minSize,
		charW:           o.charW,
		charH:           o.charH,
		padding:         o.padding,
		visible:         !o.hidden,
		bars:            [2][2]float64{{-1, -1}, {-1, -1}},
	}
	if g.platform == nil {
		g.platform = nopPlatform{}
	}
	if g.width == 0 && g.height == 0 {
		g.width = o.titleWidth + o.visCols*o.colWidth
		g.height = o.titleHeight + o.visRows*o.rowHeight
	}
	g.marks.mode, g.marks.area, g.marks.multiple = o.markMode, o.markArea, o.markMultiple
	g.resetFocus()
	g.dirty = true
	return g
}

// Rows returns the number of data rows.
func (g *Grid) Rows() int { return g.rows.Count() }

// Cols returns the number of data columns.
func (g *Grid) Cols() int { return g.cols.Count() }

func newCellStore(rows, cols int, virtual bool) *CellStore {
	if virtual {
		return NewSparseCellStore(rows, cols)
	}
	return NewCellStore(rows, cols)
}

// Store returns the cell storage. Mutating it directly bypasses redraw
// bookkeeping and callbacks. Virtual grids have a sparse store.
func (g *Grid) Store() *CellStore { return g.cells }

// validCell reports whether (row, col) addresses a cell, titles included.
func (g *Grid) validCell(row, col int) bool {
	return g.rows.valid(row) && g.cols.valid(col)
}

// Palette returns the grid colors.
func (g *Grid) Palette() Palette { return g.palette }

// SetPalette replaces the grid colors.
func (g *Grid) SetPalette(p Palette) {
	g.palette = p
	g.invalidate()
}

// SetCallbacks replaces the application callbacks. Setting or clearing
// Value switches the cell storage; stored values are dropped on entering
// virtual mode.
func (g *Grid) SetCallbacks(cb Callbacks) {
	if virtual := cb.Value != nil; virtual != g.cells.Sparse() {
		g.cells = g.cells.withMode(virtual)
		logger.Debug("cell storage switched", "virtual", virtual)
		g.invalidate()
	}
	g.cb = cb
}

// SetPlatform replaces the window services. nil detaches the grid.
func (g *Grid) SetPlatform(p Platform) {
	if p == nil {
		p = nopPlatform{}
	}
	g.platform = p
	g.bars = [2][2]float64{{-1, -1}, {-1, -1}}
	g.notified = false
	if g.dirty {
		g.invalidate()
	}
}

// ReadOnly reports whether editing is disabled.
func (g *Grid) ReadOnly() bool { return g.readOnly }

// SetReadOnly enables or disables editing. Making the grid read-only
// cancels an open edit session.
func (g *Grid) SetReadOnly(ro bool) {
	g.readOnly = ro
	if ro && g.edit != nil {
		g.cancelEdit()
	}
}

// SetResizable enables or disables interactive resizing.
func (g *Grid) SetResizable(r bool) { g.resizable = r }

// Visible reports whether the grid is shown.
func (g *Grid) Visible() bool { return g.visible }

// SetVisible shows or hides the grid. Hiding keeps an open edit session
// pending; showing it again restores the editor when its cell is still
// on screen and commits it otherwise.
func (g *Grid) SetVisible(v bool) {
	if v == g.visible {
		return
	}
	g.visible = v
	if g.edit != nil {
		if !v {
			g.edit.hidden = true
			logger.Debug("edit session hidden", "row", g.edit.row, "col", g.edit.col)
		} else {
			g.restoreEdit()
		}
	}
	g.invalidate()
}

// Viewport returns the viewport size, title band included.
func (g *Grid) Viewport() (width, height int) { return g.width, g.height }

// Resize changes the viewport size.
func (g *Grid) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == g.width && height == g.height {
		return
	}
	g.width, g.height = width, height
	g.clampScroll()
	g.invalidate()
}

// BeginUpdate starts a mutation batch. Batches nest; the platform is asked
// to repaint at most once when the outermost batch ends.
func (g *Grid) BeginUpdate() { g.updateDepth++ }

// EndUpdate ends a mutation batch.
func (g *Grid) EndUpdate() {
	if g.updateDepth == 0 {
		return
	}
	g.updateDepth--
	if g.updateDepth == 0 && g.dirty && !g.notified {
		g.notify()
	}
}

// Update runs fn inside a mutation batch.
func (g *Grid) Update(fn func()) {
	g.BeginUpdate()
	defer g.EndUpdate()
	fn()
}

// Dirty reports whether a repaint is pending.
func (g *Grid) Dirty() bool { return g.dirty }

// Stats returns redraw counters.
func (g *Grid) Stats() Stats { return g.stats }

func (g *Grid) invalidate() {
	g.dirty = true
	if g.updateDepth == 0 && !g.notified {
		g.notify()
	}
}

func (g *Grid) notify() {
	g.notified = true
	g.stats.Invalidations++
	g.platform.Invalidate()
}

// SetRows sets the number of data rows, adding or removing rows at the end.
func (g *Grid) SetRows(n int) {
	n = max(n, 0)
	switch cur := g.Rows(); {
	case n > cur:
		g.InsertRows(cur+1, n-cur)
	case n < cur:
		g.DeleteRows(n+1, cur-n)
	}
}

// SetCols sets the number of data columns, adding or removing at the end.
func (g *Grid) SetCols(n int) {
	n = max(n, 0)
	switch cur := g.Cols(); {
	case n > cur:
		g.InsertColumns(cur+1, n-cur)
	case n < cur:
		g.DeleteColumns(n+1, cur-n)
	}
}

// InsertRows inserts count rows before row at. at is clamped to
// [1, Rows()+1], so Rows()+1 appends.
func (g *Grid) InsertRows(at, count int) {
	if count <= 0 {
		return
	}
	g.closeEditForStructure()
	at = clampInsert(at, g.rows.num)
	if err := g.cells.InsertRows(at, count); err != nil {
		logger.Debug("insert rows ignored", "at", at, "count", count, "err", err)
		return
	}
	g.rows.insert(at, count)
	logger.Debug("rows inserted", "at", at, "count", count, "rows", g.Rows())
	g.afterStructure()
}

// DeleteRows removes count rows starting at row at. count is clamped to
// the rows that exist; an out-of-range at is ignored.
func (g *Grid) DeleteRows(at, count int) {
	at, count, ok := clampDelete(at, count, g.rows.num)
	if !ok {
		logger.Debug("delete rows ignored", "at", at, "rows", g.Rows())
		return
	}
	g.closeEditForStructure()
	if err := g.cells.DeleteRows(at, count); err != nil {
		logger.Debug("delete rows ignored", "at", at, "count", count, "err", err)
		return
	}
	g.rows.remove(at, count)
	logger.Debug("rows deleted", "at", at, "count", count, "rows", g.Rows())
	g.afterStructure()
}

// InsertColumns inserts count columns before column at. at is clamped to
// [1, Cols()+1].
func (g *Grid) InsertColumns(at, count int) {
	if count <= 0 {
		return
	}
	g.closeEditForStructure()
	at = clampInsert(at, g.cols.num)
	if err := g.cells.InsertColumns(at, count); err != nil {
		logger.Debug("insert columns ignored", "at", at, "count", count, "err", err)
		return
	}
	g.cols.insert(at, count)
	logger.Debug("columns inserted", "at", at, "count", count, "cols", g.Cols())
	g.afterStructure()
}

// DeleteColumns removes count columns starting at column at.
func (g *Grid) DeleteColumns(at, count int) {
	at, count, ok := clampDelete(at, count, g.cols.num)
	if !ok {
		logger.Debug("delete columns ignored", "at", at, "cols", g.Cols())
		return
	}
	g.closeEditForStructure()
	if err := g.cells.DeleteColumns(at, count); err != nil {
		logger.Debug("delete columns ignored", "at", at, "count", count, "err", err)
		return
	}
	g.cols.remove(at, count)
	logger.Debug("columns deleted", "at", at, "count", count, "cols", g.Cols())
	g.afterStructure()
}

func (g *Grid) afterStructure() {
	g.marks.hasAnchor = false
	g.marks.dragging = false
	g.resize = resizeState{}
	g.clampFocus()
	g.clampScroll()
	g.invalidate()
}

// Value returns the value of a cell, title cells included. ok is false for
// unset cells and out-of-range addresses. In virtual mode the value comes
// from the Value callback.
func (g *Grid) Value(row, col int) (string, bool) {
	if !g.validCell(row, col) {
		return "", false
	}
	if g.cb.Value != nil {
		return g.cb.Value(row, col)
	}
	return g.cells.Get(row, col)
}

// SetValue stores a value. In virtual mode it is forwarded to ValueEdit.
// Out-of-range addresses are ignored.
func (g *Grid) SetValue(row, col int, value string) {
	if g.cb.Value != nil {
		if !g.validCell(row, col) {
			logger.Debug("set value ignored", "row", row, "col", col)
			return
		}
		if g.cb.ValueEdit != nil {
			g.cb.ValueEdit(row, col, value)
		}
		g.invalidate()
		return
	}
	if err := g.cells.Set(row, col, value); err != nil {
		logger.Debug("set value ignored", "err", err)
		return
	}
	g.invalidate()
}

// UnsetValue clears a cell back to the unset state.
func (g *Grid) UnsetValue(row, col int) {
	if err := g.cells.Unset(row, col); err != nil {
		logger.Debug("unset value ignored", "err", err)
		return
	}
	g.invalidate()
}

// ClearMode selects the cells ClearValues empties.
type ClearMode uint8

const (
	ClearAll    ClearMode = iota // Every data cell
	ClearMarked                  // Marked cells only
)

// ClearValues unsets data cells. Title cells are kept. Virtual grids hold
// no values, so there is nothing to clear.
func (g *Grid) ClearValues(mode ClearMode) {
	if g.cells.Sparse() {
		logger.Debug("clear values ignored", "err", ErrVirtual)
		return
	}
	g.Update(func() {
		for r := 1; r <= g.Rows(); r++ {
			for c := 1; c <= g.Cols(); c++ {
				if mode == ClearMarked && !g.IsMarked(r, c) {
					continue
				}
				g.UnsetValue(r, c)
			}
		}
	})
}

// clearCell empties a cell through the interactive value path: the
// same vetoes and notifications as a committed edit apply.
func (g *Grid) clearCell(row, col int) bool {
	old, had := g.Value(row, col)
	if !had || old == "" {
		return false
	}
	return g.storeEdited(row, col, "", old, had)
}

// storeEdited writes an interactively edited value.
func (g *Grid) storeEdited(row, col int, text, old string, had bool) bool {
	if g.cb.Validate != nil && g.cb.Validate(row, col, text) == ActionIgnore {
		logger.Debug("value refused", "row", row, "col", col)
		return false
	}
	if g.cb.Value != nil {
		if g.cb.ValueEdit != nil && g.cb.ValueEdit(row, col, text) == ActionIgnore {
			logger.Debug("value refused by consumer", "row", row, "col", col)
			return false
		}
	} else if err := g.cells.Set(row, col, text); err != nil {
		logger.Debug("store edit failed", "err", err)
		return false
	}
	g.invalidate()
	if (!had || old != text) && g.cb.ValueChanged != nil {
		g.cb.ValueChanged(row, col)
	}
	return true
}

// deleteValues implements the Delete key: marked cells when any are
// marked, otherwise the focus cell.
func (g *Grid) deleteValues() bool {
	if g.readOnly || g.focusRow == 0 {
		return false
	}
	if !g.anyMarked() {
		if g.cb.Edition != nil && g.cb.Edition(g.focusRow, g.focusCol) == ActionIgnore {
			return true
		}
		g.clearCell(g.focusRow, g.focusCol)
		return true
	}
	g.Update(func() {
		for r := 1; r <= g.Rows(); r++ {
			for c := 1; c <= g.Cols(); c++ {
				if !g.IsMarked(r, c) {
					continue
				}
				if g.cb.Edition != nil && g.cb.Edition(r, c) == ActionIgnore {
					continue
				}
				g.clearCell(r, c)
			}
		}
	})
	return true
}

// ColumnTitles returns the column title values.
func (g *Grid) ColumnTitles() []string {
	titles := make([]string, g.Cols())
	for c := range titles {
		titles[c], _ = g.Value(0, c+1)
	}
	return titles
}

// SetColumnTitles stores titles in row 0 starting at column 1. Extra
// titles are ignored.
func (g *Grid) SetColumnTitles(titles ...string) {
	g.Update(func() {
		for i, t := range titles {
			if i+1 > g.Cols() {
				break
			}
			g.SetValue(0, i+1, t)
		}
	})
}

// ColumnWidth returns the pixel width of a column; column 0 is the title
// band.
func (g *Grid) ColumnWidth(col int) int { return g.cols.Size(col) }

// RowHeight returns the pixel height of a row; row 0 is the title band.
func (g *Grid) RowHeight(row int) int { return g.rows.Size(row) }

// SetColumnWidth sets a column width in pixels. 0 hides the column.
func (g *Grid) SetColumnWidth(col, px int) {
	if !g.cols.setSize(col, px) {
		logger.Debug("column width ignored", "col", col, "px", px)
		return
	}
	g.clampScroll()
	g.invalidate()
}

// SetRowHeight sets a row height in pixels. 0 hides the row.
func (g *Grid) SetRowHeight(row, px int) {
	if !g.rows.setSize(row, px) {
		logger.Debug("row height ignored", "row", row, "px", px)
		return
	}
	g.clampScroll()
	g.invalidate()
}

// ColumnWidthChars returns a column width in characters.
func (g *Grid) ColumnWidthChars(col int) int { return g.cols.Size(col) / g.charW }

// RowHeightLines returns a row height in text lines.
func (g *Grid) RowHeightLines(row int) int { return g.rows.Size(row) / g.charH }

// SetColumnWidthChars sets a column width in characters.
func (g *Grid) SetColumnWidthChars(col, chars int) {
	if chars < 0 {
		return
	}
	g.SetColumnWidth(col, chars*g.charW+2*g.padding)
}

// SetRowHeightLines sets a row height in text lines.
func (g *Grid) SetRowHeightLines(row, lines int) {
	if lines < 0 {
		return
	}
	g.SetRowHeight(row, lines*g.charH+2*g.padding)
}

// CellStyle returns the overrides stored on a single cell.
func (g *Grid) CellStyle(row, col int) Style { return g.cells.style(row, col) }

// SetCellStyle replaces the overrides of a single cell.
func (g *Grid) SetCellStyle(row, col int, st Style) {
	if err := g.cells.setStyle(row, col, st); err != nil {
		logger.Debug("cell style ignored", "err", err)
		return
	}
	g.invalidate()
}

// RowStyle returns the overrides stored on a row.
func (g *Grid) RowStyle(row int) Style {
	if !g.rows.valid(row) {
		return Style{}
	}
	return g.rows.styles[row]
}

// SetRowStyle replaces the overrides of a row.
func (g *Grid) SetRowStyle(row int, st Style) {
	if !g.rows.valid(row) {
		logger.Debug("row style ignored", "row", row)
		return
	}
	g.rows.styles[row] = st
	g.invalidate()
}

// ColumnStyle returns the overrides stored on a column.
func (g *Grid) ColumnStyle(col int) Style {
	if !g.cols.valid(col) {
		return Style{}
	}
	return g.cols.styles[col]
}

// SetColumnStyle replaces the overrides of a column.
func (g *Grid) SetColumnStyle(col int, st Style) {
	if !g.cols.valid(col) {
		logger.Debug("column style ignored", "col", col)
		return
	}
	g.cols.styles[col] = st
	g.invalidate()
}

// EffectiveStyle resolves the style a cell is painted with. Data cells
// take cell overrides first, then the column, then the row, then the
// palette. Title cells take their own overrides, then the title line,
// then the palette title colors.
func (g *Grid) EffectiveStyle(row, col int) Style {
	if !g.validCell(row, col) {
		return g.palette.baseStyle()
	}
	cell := g.cells.style(row, col)
	if row == 0 || col == 0 {
		st := g.palette.titleStyle()
		if col == 0 {
			st = g.cols.styles[0].Over(st)
		}
		if row == 0 {
			st = g.rows.styles[0].Over(st)
		}
		return cell.Over(st)
	}
	return cell.Over(g.cols.styles[col].Over(g.rows.styles[row].Over(g.palette.baseStyle())))
}

// SetAttribute applies a named style override addressed the way
// "BGCOLOR2:3", "FGCOLOR*:3" or "ALIGNMENT3" address them: a bare
// number is a column for ALIGNMENT and a row otherwise, "L:C" is a
// cell, and "*" stands for "every row". value "" clears the field.
func (g *Grid) SetAttribute(name, value string) error {
	upper := strings.ToUpper(name)
	var field string
	for _, f := range []string{"BGCOLOR", "FGCOLOR", "FONT", "ALIGNMENT"} {
		if strings.HasPrefix(upper, f) {
			field = f
			break
		}
	}
	if field == "" {
		return fmt.Errorf("attribute %q: %w", name, ErrInvalidAddress)
	}
	addr := upper[len(field):]

	apply := func(st Style) (Style, error) {
		switch field {
		case "BGCOLOR", "FGCOLOR":
			if value == "" {
				return st.clear(field), nil
			}
			c, err := ParseColor(value)
			if err != nil {
				return st, err
			}
			if field == "BGCOLOR" {
				return st.WithBg(c), nil
			}
			return st.WithFg(c), nil
		case "FONT":
			if value == "" {
				return st.clear(field), nil
			}
			return st.WithFont(value), nil
		default:
			if value == "" {
				return st.clear(field), nil
			}
			a, err := ParseAlignment(value)
			if err != nil {
				return st, err
			}
			return st.WithAlign(a), nil
		}
	}

	row, col, kind, err := parseStyleAddress(addr, field == "ALIGNMENT")
	if err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	switch kind {
	case styleOnCell:
		st, err := apply(g.CellStyle(row, col))
		if err != nil {
			return err
		}
		if !g.validCell(row, col) {
			return fmt.Errorf("attribute %q: %w", name, ErrOutOfRange)
		}
		g.SetCellStyle(row, col, st)
	case styleOnRow:
		if !g.rows.valid(row) {
			return fmt.Errorf("attribute %q: %w", name, ErrOutOfRange)
		}
		st, err := apply(g.RowStyle(row))
		if err != nil {
			return err
		}
		g.SetRowStyle(row, st)
	case styleOnColumn:
		if !g.cols.valid(col) {
			return fmt.Errorf("attribute %q: %w", name, ErrOutOfRange)
		}
		st, err := apply(g.ColumnStyle(col))
		if err != nil {
			return err
		}
		g.SetColumnStyle(col, st)
	}
	return nil
}
