package matrix

// lineEditor is the single-line text buffer behind the text editor: a
// caret, a selection and an undo history. Positions count runes.
type lineEditor struct {
	runes  []rune
	cursor int

	// selStart is the anchor, selEnd follows the caret. -1 means no
	// selection.
	selStart, selEnd int

	undo      []string
	undoIndex int
}

const maxUndoSize = 50

func newLineEditor(text string) *lineEditor {
	e := &lineEditor{runes: []rune(text), selStart: -1, selEnd: -1}
	e.cursor = len(e.runes)
	return e
}

func (e *lineEditor) String() string { return string(e.runes) }

func (e *lineEditor) hasSelection() bool {
	return e.selStart >= 0 && e.selStart != e.selEnd
}

// selection returns the selected range with start <= end, or (-1, -1).
func (e *lineEditor) selection() (start, end int) {
	if !e.hasSelection() {
		return -1, -1
	}
	return min(e.selStart, e.selEnd), max(e.selStart, e.selEnd)
}

func (e *lineEditor) clearSelection() {
	e.selStart, e.selEnd = -1, -1
}

func (e *lineEditor) selectAll() {
	e.selStart, e.selEnd = 0, len(e.runes)
	e.cursor = len(e.runes)
}

// atStart and atEnd report a caret resting on a boundary with nothing
// selected: the only states in which Left/Home and Right/End leave the
// editor.
func (e *lineEditor) atStart() bool { return e.cursor == 0 && !e.hasSelection() }
func (e *lineEditor) atEnd() bool   { return e.cursor == len(e.runes) && !e.hasSelection() }

// pushUndo saves the text before a change.
func (e *lineEditor) pushUndo() {
	text := e.String()
	if e.undoIndex < len(e.undo) {
		e.undo = e.undo[:e.undoIndex]
	}
	if len(e.undo) > 0 && e.undo[len(e.undo)-1] == text {
		return
	}
	e.undo = append(e.undo, text)
	e.undoIndex = len(e.undo)
	if len(e.undo) > maxUndoSize {
		e.undo = e.undo[1:]
		e.undoIndex--
	}
}

func (e *lineEditor) undoStep() bool {
	// Keep the current text so redo can come back to it.
	if e.undoIndex == len(e.undo) && len(e.undo) > 0 && e.undo[len(e.undo)-1] != e.String() {
		e.undo = append(e.undo, e.String())
	}
	if e.undoIndex == 0 {
		return false
	}
	e.undoIndex--
	e.reset(e.undo[e.undoIndex])
	return true
}

func (e *lineEditor) redoStep() bool {
	if e.undoIndex >= len(e.undo)-1 {
		return false
	}
	e.undoIndex++
	e.reset(e.undo[e.undoIndex])
	return true
}

func (e *lineEditor) reset(text string) {
	e.runes = []rune(text)
	e.cursor = len(e.runes)
	e.clearSelection()
}

func (e *lineEditor) deleteSelection() bool {
	if !e.hasSelection() {
		return false
	}
	start, end := e.selection()
	e.pushUndo()
	e.runes = append(e.runes[:start], e.runes[end:]...)
	e.cursor = start
	e.clearSelection()
	return true
}

func (e *lineEditor) insert(s string) {
	if !e.deleteSelection() {
		e.pushUndo()
	}
	in := []rune(s)
	e.runes = append(e.runes[:e.cursor], append(in, e.runes[e.cursor:]...)...)
	e.cursor += len(in)
}

// move places the caret, extending the selection when shift is held.
func (e *lineEditor) move(pos int, shift bool) {
	pos = clamp(pos, 0, len(e.runes))
	if shift {
		if e.selStart < 0 {
			e.selStart = e.cursor
		}
		e.selEnd = pos
	} else {
		e.clearSelection()
	}
	e.cursor = pos
}

// handleKey applies an editing key. Reports whether the key was used.
func (e *lineEditor) handleKey(ev KeyEvent) bool {
	shift, ctrl := ev.Mods.Has(ModShift), ev.Mods.Has(ModCtrl)
	switch ev.Key {
	case KeyChar:
		if ctrl || ev.Mods.Has(ModAlt) {
			return false
		}
		e.insert(string(ev.Rune))
	case KeySpace:
		e.insert(" ")
	case KeyBackspace:
		if e.deleteSelection() {
			return true
		}
		if e.cursor > 0 {
			e.pushUndo()
			e.runes = append(e.runes[:e.cursor-1], e.runes[e.cursor:]...)
			e.cursor--
		}
	case KeyDelete:
		if e.deleteSelection() {
			return true
		}
		if e.cursor < len(e.runes) {
			e.pushUndo()
			e.runes = append(e.runes[:e.cursor], e.runes[e.cursor+1:]...)
		}
	case KeyLeft:
		pos := e.cursor - 1
		if ctrl {
			pos = wordLeft(e.runes, e.cursor)
		}
		e.move(pos, shift)
	case KeyRight:
		pos := e.cursor + 1
		if ctrl {
			pos = wordRight(e.runes, e.cursor)
		}
		e.move(pos, shift)
	case KeyHome:
		e.move(0, shift)
	case KeyEnd:
		e.move(len(e.runes), shift)
	case KeyA:
		if !ctrl {
			return false
		}
		e.selectAll()
	case KeyZ:
		if !ctrl {
			return false
		}
		if shift {
			e.redoStep()
		} else {
			e.undoStep()
		}
	default:
		return false
	}
	return true
}

func wordLeft(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	pos--
	for pos > 0 && isWhitespace(runes[pos]) {
		pos--
	}
	for pos > 0 && !isWhitespace(runes[pos-1]) {
		pos--
	}
	return pos
}

func wordRight(runes []rune, pos int) int {
	n := len(runes)
	for pos < n && !isWhitespace(runes[pos]) {
		pos++
	}
	for pos < n && isWhitespace(runes[pos]) {
		pos++
	}
	return pos
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
