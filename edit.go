package matrix

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// EditorKind is the kind of overlay editor a session uses.
type EditorKind uint8

const (
	EditorText EditorKind = iota // Single-line text
	EditorList                   // Drop-down list of items
)

func (k EditorKind) String() string {
	if k == EditorList {
		return "list"
	}
	return "text"
}

// EditSession is the state of an overlay editor bound to a cell. It is
// owned by the Grid; the exported methods only read it.
type EditSession struct {
	kind     EditorKind
	row, col int

	// hidden is set while the overlay can't be shown: the grid is
	// invisible or the cell is scrolled out of view. The session stays
	// open.
	hidden bool

	line *lineEditor

	items    []string
	selected int
	expanded bool
	original string
}

// Kind returns the editor kind.
func (s *EditSession) Kind() EditorKind { return s.kind }

// Cell returns the cell the session is bound to.
func (s *EditSession) Cell() (row, col int) { return s.row, s.col }

// Hidden reports whether the overlay is currently unmapped.
func (s *EditSession) Hidden() bool { return s.hidden }

// Text returns the uncommitted value.
func (s *EditSession) Text() string {
	if s.kind == EditorList {
		if s.selected >= 0 && s.selected < len(s.items) {
			return s.items[s.selected]
		}
		return s.original
	}
	return s.line.String()
}

// Items returns the list editor items.
func (s *EditSession) Items() []string { return s.items }

// Selected returns the index of the chosen list item, -1 for none.
func (s *EditSession) Selected() int { return s.selected }

// Expanded reports whether the list editor shows its items.
func (s *EditSession) Expanded() bool { return s.expanded }

// Caret returns the text editor caret position in runes.
func (s *EditSession) Caret() int {
	if s.line == nil {
		return 0
	}
	return s.line.cursor
}

// Selection returns the selected rune range of the text editor, or
// (-1, -1).
func (s *EditSession) Selection() (start, end int) {
	if s.line == nil {
		return -1, -1
	}
	return s.line.selection()
}

// Editing reports whether an edit session is open.
func (g *Grid) Editing() bool { return g.edit != nil }

// Editor returns the open edit session, or nil.
func (g *Grid) Editor() *EditSession { return g.edit }

// EditValue returns the live, uncommitted value of the open session.
func (g *Grid) EditValue() (string, bool) {
	if g.edit == nil {
		return "", false
	}
	return g.edit.Text(), true
}

// EditStart opens an editor on the focus cell holding its current value.
// It fails on read-only grids, when the Edition callback refuses, and
// when no cell has the focus.
func (g *Grid) EditStart() bool {
	g.BeginUpdate()
	defer g.EndUpdate()
	return g.openEdit("", false)
}

// EditEnd closes the open session. With commit the text is validated and
// stored; a refused commit leaves the session open and returns false.
func (g *Grid) EditEnd(commit bool) bool {
	if g.edit == nil {
		return true
	}
	g.BeginUpdate()
	defer g.EndUpdate()
	if commit {
		return g.commitEdit()
	}
	g.cancelEdit()
	return true
}

// EditorRect returns where the overlay editor is shown. ok is false when
// no session is open or it is hidden.
func (g *Grid) EditorRect() (Rect, bool) {
	if g.edit == nil || g.edit.hidden || !g.visible {
		return Rect{}, false
	}
	return g.PixelRect(g.edit.row, g.edit.col)
}

// listRect is the area of the expanded item list, below the cell.
func (g *Grid) listRect() (Rect, bool) {
	r, ok := g.EditorRect()
	if !ok || g.edit.kind != EditorList || !g.edit.expanded {
		return Rect{}, false
	}
	return Rect{X: r.X, Y: r.Y + r.H, W: r.W, H: len(g.edit.items) * r.H}, true
}

// openEdit opens a session on the focus cell. With replace the editor
// starts from text instead of the cell value.
func (g *Grid) openEdit(text string, replace bool) bool {
	if g.edit != nil {
		return true
	}
	row, col := g.focusRow, g.focusCol
	if row == 0 || g.readOnly || !g.visible {
		return false
	}
	if g.cb.Edition != nil && g.cb.Edition(row, col) == ActionIgnore {
		logger.Debug("edition refused", "row", row, "col", col)
		return false
	}
	g.ScrollToVisible(row, col)

	value, _ := g.Value(row, col)
	s := &EditSession{row: row, col: col, original: value, selected: -1}
	if g.cb.Drop != nil {
		if items, ok := g.cb.Drop(row, col); ok {
			s.kind = EditorList
			s.items = items
			for i, it := range items {
				if it == value {
					s.selected = i
					break
				}
			}
			if s.selected < 0 && len(items) > 0 {
				s.selected = 0
			}
			if replace && text != "" {
				s.typeAhead([]rune(text)[0])
			}
		}
	}
	if s.kind == EditorText {
		if replace {
			s.line = newLineEditor(text)
		} else {
			s.line = newLineEditor(value)
		}
	}
	s.hidden = !g.cellFullyVisible(row, col)
	g.edit = s
	logger.Debug("edit session opened", "row", row, "col", col, "kind", s.kind)
	g.invalidate()
	return true
}

// openList opens the list editor expanded (Alt+Down, F4).
func (g *Grid) openList() bool {
	if !g.openEdit("", false) {
		return false
	}
	if g.edit.kind == EditorList {
		g.edit.expanded = true
		g.invalidate()
	}
	return true
}

// commitEdit validates and stores the session text. On refusal the
// session stays open with its text.
func (g *Grid) commitEdit() bool {
	s := g.edit
	if s == nil {
		return true
	}
	old, had := g.Value(s.row, s.col)
	g.edit = nil
	if !g.storeEdited(s.row, s.col, s.Text(), old, had) {
		g.edit = s
		logger.Debug("edit commit refused", "row", s.row, "col", s.col)
		return false
	}
	logger.Debug("edit session committed", "row", s.row, "col", s.col)
	return true
}

func (g *Grid) cancelEdit() {
	if g.edit == nil {
		return
	}
	logger.Debug("edit session canceled", "row", g.edit.row, "col", g.edit.col)
	g.edit = nil
	g.invalidate()
}

// restoreEdit runs when the grid becomes visible again with a pending
// session: the overlay comes back if its cell is on screen, otherwise
// the session is committed, or dropped if the commit is refused.
func (g *Grid) restoreEdit() {
	s := g.edit
	if g.cellFullyVisible(s.row, s.col) {
		s.hidden = false
		logger.Debug("edit session restored", "row", s.row, "col", s.col)
		return
	}
	if !g.commitEdit() {
		g.cancelEdit()
	}
}

// closeEditForStructure ends the session before rows or columns move.
func (g *Grid) closeEditForStructure() {
	if g.edit != nil && !g.commitEdit() {
		g.cancelEdit()
	}
}

// commitAndNavigate commits the session and then handles a navigation
// key as if no session had been open. A vetoed leave or a refused commit
// swallows the key.
func (g *Grid) commitAndNavigate(ev KeyEvent) bool {
	if !g.leaveForEdit(-1, -1) {
		return true
	}
	defer func() { g.leaveAsked = false }()
	if !g.commitEdit() {
		return true
	}
	return g.navKey(ev)
}

// editKey offers a key to the open session.
func (g *Grid) editKey(ev KeyEvent) bool {
	s := g.edit
	if s.kind == EditorList {
		return g.listKey(ev)
	}

	shift := ev.Mods.Has(ModShift)
	switch ev.Key {
	case KeyEscape:
		g.cancelEdit()
		return true
	case KeyEnter:
		g.commitEdit()
		return true
	case KeyUp, KeyDown, KeyPageUp, KeyPageDown, KeyTab:
		return g.commitAndNavigate(ev)
	case KeyLeft, KeyHome:
		if !shift && s.line.atStart() {
			return g.commitAndNavigate(ev)
		}
	case KeyRight, KeyEnd:
		if !shift && s.line.atEnd() {
			return g.commitAndNavigate(ev)
		}
	}
	if s.line.handleKey(ev) {
		g.invalidate()
		return true
	}
	return false
}

func (g *Grid) listKey(ev KeyEvent) bool {
	s := g.edit
	if s.expanded {
		switch ev.Key {
		case KeyUp:
			s.selected = max(s.selected-1, 0)
		case KeyDown:
			s.selected = min(s.selected+1, len(s.items)-1)
		case KeyPageUp, KeyHome:
			s.selected = min(0, len(s.items)-1)
		case KeyPageDown, KeyEnd:
			s.selected = len(s.items) - 1
		case KeyEnter:
			s.expanded = false
			g.commitEdit()
		case KeyEscape, KeyF4:
			s.expanded = false
		case KeyChar:
			s.typeAhead(ev.Rune)
		}
		g.invalidate()
		return true
	}

	switch ev.Key {
	case KeyEscape:
		g.cancelEdit()
		return true
	case KeyEnter:
		g.commitEdit()
		return true
	case KeyF4:
		s.expanded = true
		g.invalidate()
		return true
	case KeyDown:
		if ev.Mods.Has(ModAlt) {
			s.expanded = true
			g.invalidate()
			return true
		}
		return g.commitAndNavigate(ev)
	case KeyUp, KeyLeft, KeyRight, KeyPageUp, KeyPageDown, KeyHome, KeyEnd, KeyTab:
		return g.commitAndNavigate(ev)
	case KeyChar:
		s.typeAhead(ev.Rune)
		g.invalidate()
		return true
	}
	return false
}

// typeAhead selects the next item starting with r, wrapping around.
func (s *EditSession) typeAhead(r rune) {
	n := len(s.items)
	if n == 0 {
		return
	}
	r = unicode.ToLower(r)
	for i := 1; i <= n; i++ {
		j := (s.selected + i + n) % n
		first, _ := utf8.DecodeRuneInString(s.items[j])
		if first != utf8.RuneError && unicode.ToLower(first) == r {
			s.selected = j
			return
		}
	}
}

// editClick handles a press inside the overlay. Reports whether the
// press belonged to the editor.
func (g *Grid) editClick(x, y int) bool {
	s := g.edit
	if lr, ok := g.listRect(); ok && lr.Contains(Point{X: x, Y: y}) {
		cellH := lr.H / max(len(s.items), 1)
		s.selected = clamp((y-lr.Y)/max(cellH, 1), 0, len(s.items)-1)
		s.expanded = false
		g.commitEdit()
		return true
	}
	r, ok := g.EditorRect()
	if !ok || !r.Contains(Point{X: x, Y: y}) {
		return false
	}
	if s.kind == EditorList {
		s.expanded = !s.expanded
	} else {
		s.line.move(caretAt(s.line.runes, x-r.X-g.padding, g.charW), false)
	}
	g.invalidate()
	return true
}

// caretAt maps a pixel offset into text to a rune position, using the
// character cell width for each terminal column a rune occupies.
func caretAt(runes []rune, px, charW int) int {
	w := 0
	for i, r := range runes {
		rw := runewidth.RuneWidth(r) * charW
		if px < w+rw/2 {
			return i
		}
		w += rw
	}
	return len(runes)
}
