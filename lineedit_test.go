package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineEditor_InsertAndDelete(t *testing.T) {
	e := newLineEditor("hllo")
	e.move(1, false)
	e.handleKey(char('e'))
	assert.Equal(t, "hello", e.String())
	assert.Equal(t, 2, e.cursor)

	e.handleKey(key(KeyBackspace))
	assert.Equal(t, "hllo", e.String())
	e.handleKey(key(KeyDelete))
	assert.Equal(t, "hlo", e.String())

	e.move(0, false)
	e.handleKey(key(KeyBackspace))
	assert.Equal(t, "hlo", e.String(), "nothing before the caret")
}

func TestLineEditor_Selection(t *testing.T) {
	e := newLineEditor("hello world")
	e.handleKey(key(KeyHome))
	e.handleKey(key(KeyRight, ModShift, ModCtrl))

	start, end := e.selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 6, end)

	e.handleKey(char('X'))
	assert.Equal(t, "Xworld", e.String())
	assert.False(t, e.hasSelection())

	e.handleKey(key(KeyA, ModCtrl))
	assert.True(t, e.hasSelection())
	e.handleKey(key(KeyDelete))
	assert.Equal(t, "", e.String())
}

func TestLineEditor_WordMoves(t *testing.T) {
	runes := []rune("one  two three")
	assert.Equal(t, 5, wordRight(runes, 0))
	assert.Equal(t, 9, wordRight(runes, 5))
	assert.Equal(t, 14, wordRight(runes, 9))

	assert.Equal(t, 9, wordLeft(runes, 14))
	assert.Equal(t, 5, wordLeft(runes, 9))
	assert.Equal(t, 0, wordLeft(runes, 5))
	assert.Equal(t, 0, wordLeft(runes, 0))
}

func TestLineEditor_UndoRedo(t *testing.T) {
	e := newLineEditor("a")
	e.handleKey(char('b'))
	e.handleKey(char('c'))
	assert.Equal(t, "abc", e.String())

	e.handleKey(key(KeyZ, ModCtrl))
	assert.Equal(t, "ab", e.String())
	e.handleKey(key(KeyZ, ModCtrl))
	assert.Equal(t, "a", e.String())
	assert.False(t, e.undoStep(), "history exhausted")

	e.handleKey(key(KeyZ, ModCtrl, ModShift))
	assert.Equal(t, "ab", e.String())
	e.handleKey(key(KeyZ, ModCtrl, ModShift))
	assert.Equal(t, "abc", e.String())
	assert.False(t, e.redoStep())

	e.handleKey(key(KeyZ, ModCtrl))
	e.handleKey(char('x'))
	assert.Equal(t, "abx", e.String())
	assert.False(t, e.redoStep(), "typing drops the redo branch")
}

func TestLineEditor_UnhandledKeys(t *testing.T) {
	e := newLineEditor("a")
	assert.False(t, e.handleKey(key(KeyA)))
	assert.False(t, e.handleKey(KeyEvent{Key: KeyChar, Rune: 'q', Mods: ModCtrl}))
	assert.False(t, e.handleKey(key(KeyF2)))
	assert.Equal(t, "a", e.String())
}

func TestCaretAt(t *testing.T) {
	runes := []rune("ab世")
	assert.Equal(t, 0, caretAt(runes, 0, 7))
	assert.Equal(t, 1, caretAt(runes, 4, 7))
	assert.Equal(t, 2, caretAt(runes, 14, 7))
	assert.Equal(t, 2, caretAt(runes, 20, 7))
	assert.Equal(t, 3, caretAt(runes, 21, 7))
	assert.Equal(t, 3, caretAt(runes, 100, 7))
}
