package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/matrix"
)

func newTestBuffer(w, h int) *Buffer {
	return NewBuffer(w, h, matrix.ColorBlack, matrix.ColorWhite)
}

func TestBuffer_Text(t *testing.T) {
	b := newTestBuffer(5, 2)
	assert.Equal(t, "     \n     ", b.String())

	b.Text(1, 0, "ab", "", matrix.ColorRed)
	b.Text(3, 1, "xyz", "", matrix.ColorRed)
	assert.Equal(t, " ab  \n   xy", b.String())
	assert.Equal(t, matrix.ColorRed, b.Cells[0][1].Fg)
	assert.Equal(t, matrix.ColorWhite, b.Cells[0][1].Bg, "text keeps the background")
}

func TestBuffer_WideRunes(t *testing.T) {
	b := newTestBuffer(5, 1)

	b.Text(0, 0, "世x", "", matrix.ColorBlack)
	assert.Equal(t, '世', b.Cells[0][0].Ch)
	assert.Equal(t, rune(0), b.Cells[0][1].Ch)
	assert.Equal(t, 'x', b.Cells[0][2].Ch)
	assert.Equal(t, "世x  ", b.String())

	b.Text(1, 0, "a", "", matrix.ColorBlack)
	assert.Equal(t, " ax  ", b.String(), "overwriting half a wide rune blanks the rest")

	b.Text(4, 0, "世", "", matrix.ColorBlack)
	assert.Equal(t, " ax  ", b.String(), "no room for the second half")

	w, h := b.MeasureText("世a", "")
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
}

func TestBuffer_Clip(t *testing.T) {
	b := newTestBuffer(6, 2)

	b.PushClip(matrix.Rect{X: 1, W: 3, H: 1})
	b.Text(0, 0, "abcdef", "", matrix.ColorBlack)
	b.FillRect(matrix.Rect{W: 6, H: 2}, matrix.ColorRed)
	b.PushClip(matrix.Rect{X: 2, W: 10, H: 10})
	b.Text(0, 1, "zzzz", "", matrix.ColorBlack)
	b.Text(1, 0, "..", "", matrix.ColorBlack)
	b.PopClip()
	b.PopClip()
	b.PopClip()

	assert.Equal(t, "  .   \n      ", b.String(), "nested clips intersect")
	assert.Equal(t, matrix.ColorWhite, b.Cells[0][0].Bg)
	assert.Equal(t, matrix.ColorRed, b.Cells[0][1].Bg)
	assert.Equal(t, matrix.ColorWhite, b.Cells[1][1].Bg)

	b.Text(0, 0, "ok", "", matrix.ColorBlack)
	assert.True(t, strings.HasPrefix(b.String(), "ok"))
}

func TestBuffer_Lines(t *testing.T) {
	b := newTestBuffer(5, 3)

	b.Line(0, 1, 4, 1, matrix.ColorGray)
	b.Line(2, 0, 2, 2, matrix.ColorGray)
	b.Line(4, 0, 4, 1, matrix.ColorGray)

	assert.Equal(t, "  │ │\n──┼─┼\n  │  ", b.String())
	assert.Equal(t, matrix.ColorGray, b.Cells[1][0].Fg)
}

func TestBuffer_Caret(t *testing.T) {
	b := newTestBuffer(3, 1)
	b.Text(0, 0, "abc", "", matrix.ColorBlack)

	b.Line(1, 0, 1, 0, matrix.ColorBlue)
	c := b.Cells[0][1]
	assert.Equal(t, 'b', c.Ch)
	assert.Equal(t, matrix.ColorWhite, c.Fg)
	assert.Equal(t, matrix.ColorBlue, c.Bg)
}

func TestBuffer_StrokeRect(t *testing.T) {
	b := newTestBuffer(4, 4)
	b.Text(0, 0, "abcd", "", matrix.ColorBlack)

	b.StrokeRect(matrix.Rect{W: 3, H: 3}, matrix.ColorRed)
	assert.Equal(t, matrix.ColorRed, b.Cells[0][0].Bg)
	assert.Equal(t, matrix.ColorRed, b.Cells[2][2].Bg)
	assert.Equal(t, matrix.ColorRed, b.Cells[1][0].Bg)
	assert.Equal(t, matrix.ColorWhite, b.Cells[1][1].Bg, "inside is untouched")
	assert.Equal(t, matrix.ColorWhite, b.Cells[0][3].Bg)
	assert.Equal(t, 'a', b.Cells[0][0].Ch, "characters stay")

	b.StrokeRect(matrix.Rect{X: 3, Y: 3, W: 1, H: 1}, matrix.ColorBlue)
	assert.Equal(t, matrix.ColorBlue, b.Cells[3][3].Bg)
}

func TestBuffer_ResizeAndFill(t *testing.T) {
	b := newTestBuffer(2, 2)
	b.PushClip(matrix.Rect{W: 1, H: 1})
	b.Resize(3, 1, matrix.ColorBlack, matrix.ColorRed)

	w, h := b.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
	require.Len(t, b.Cells, 1)
	assert.Equal(t, matrix.ColorRed, b.Cells[0][2].Bg)

	b.Text(0, 0, "abc", "", matrix.ColorBlack)
	assert.Equal(t, "abc", b.String(), "filling drops the clip stack")
	assert.False(t, b.InBounds(3, 0))
}

func TestRenderer(t *testing.T) {
	b := newTestBuffer(4, 2)
	b.Text(0, 0, "ab", "", matrix.ColorRed)
	b.Text(0, 1, "世", "", matrix.ColorBlack)

	r := NewRenderer()
	out := r.Render(b)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "ab")
	assert.Contains(t, out, "世")
	assert.Len(t, r.styles, 2, "one style per color pair")

	r.Render(b)
	assert.Len(t, r.styles, 2)

	assert.Equal(t, "", r.Render(newTestBuffer(0, 0)))
}
