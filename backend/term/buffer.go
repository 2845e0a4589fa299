// Package term displays a matrix.Grid in a terminal. One surface pixel is
// one character cell; the grid is painted into a Buffer which renders to
// a styled string for Bubble Tea.
package term

import (
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/matrix"
)

// Cell is one character cell. A wide rune occupies its cell and the next,
// which holds Ch == 0.
type Cell struct {
	Ch rune
	Fg matrix.Color
	Bg matrix.Color
}

// Buffer is a 2D grid of colored cells. It implements matrix.Surface.
type Buffer struct {
	W, H  int
	Cells [][]Cell // [row][col]

	clips []matrix.Rect
}

// NewBuffer creates a Buffer of the given size filled with spaces.
func NewBuffer(w, h int, fg, bg matrix.Color) *Buffer {
	b := &Buffer{}
	b.Resize(w, h, fg, bg)
	return b
}

// Resize reallocates the buffer and fills it with spaces.
func (b *Buffer) Resize(w, h int, fg, bg matrix.Color) {
	w, h = max(w, 0), max(h, 0)
	b.W, b.H = w, h
	b.Cells = make([][]Cell, h)
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(fg, bg)
}

// Fill resets every cell to a space and drops the clip stack.
func (b *Buffer) Fill(fg, bg matrix.Color) {
	for y := range b.Cells {
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Fg: fg, Bg: bg}
		}
	}
	b.clips = b.clips[:0]
}

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// visible reports whether (x, y) is in bounds and inside the clip.
func (b *Buffer) visible(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	if n := len(b.clips); n > 0 {
		return b.clips[n-1].Contains(matrix.Point{X: x, Y: y})
	}
	return true
}

func (b *Buffer) cell(x, y int) *Cell {
	if !b.visible(x, y) {
		return nil
	}
	return &b.Cells[y][x]
}

// setRune writes ch with fg at (x, y), keeping the background. Writing
// over half of a wide rune blanks the other half.
func (b *Buffer) setRune(x, y int, ch rune, fg matrix.Color) {
	c := b.cell(x, y)
	if c == nil {
		return
	}
	if c.Ch == 0 && x > 0 {
		b.Cells[y][x-1].Ch = ' '
	}
	if x+1 < b.W && b.Cells[y][x+1].Ch == 0 {
		b.Cells[y][x+1].Ch = ' '
	}
	c.Ch, c.Fg = ch, fg
}

func (b *Buffer) Size() (w, h int) {
	return b.W, b.H
}

func (b *Buffer) FillRect(r matrix.Rect, c matrix.Color) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cell := b.cell(x, y); cell != nil {
				cell.Ch, cell.Bg = ' ', c
			}
		}
	}
}

// StrokeRect colors the background of the rectangle's border cells. The
// characters stay, so a one-line focus frame highlights the text it
// surrounds.
func (b *Buffer) StrokeRect(r matrix.Rect, c matrix.Color) {
	if r.Empty() {
		return
	}
	for x := r.X; x < r.X+r.W; x++ {
		b.paintBg(x, r.Y, c)
		b.paintBg(x, r.Y+r.H-1, c)
	}
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		b.paintBg(r.X, y, c)
		b.paintBg(r.X+r.W-1, y, c)
	}
}

func (b *Buffer) paintBg(x, y int, c matrix.Color) {
	if cell := b.cell(x, y); cell != nil {
		cell.Bg = c
	}
}

// Line draws box-drawing lines. Crossing lines join. A line of a single
// cell is a caret: the cell is shown in reverse.
func (b *Buffer) Line(x1, y1, x2, y2 int, c matrix.Color) {
	switch {
	case x1 == x2 && y1 == y2:
		if cell := b.cell(x1, y1); cell != nil {
			cell.Fg, cell.Bg = cell.Bg, c
		}
	case x1 == x2:
		for y := min(y1, y2); y <= max(y1, y2); y++ {
			b.joinLine(x1, y, '│', c)
		}
	case y1 == y2:
		for x := min(x1, x2); x <= max(x1, x2); x++ {
			b.joinLine(x, y1, '─', c)
		}
	}
}

func (b *Buffer) joinLine(x, y int, ch rune, c matrix.Color) {
	cell := b.cell(x, y)
	if cell == nil {
		return
	}
	switch {
	case ch == '│' && cell.Ch == '─', ch == '─' && cell.Ch == '│', cell.Ch == '┼':
		ch = '┼'
	}
	b.setRune(x, y, ch, c)
}

func (b *Buffer) Text(x, y int, s string, _ string, c matrix.Color) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		switch {
		case w == 2 && !b.visible(x, y):
			b.setRune(x+1, y, ' ', c)
		case w == 2 && !b.visible(x+1, y):
			// Half a wide rune can't be shown.
			b.setRune(x, y, ' ', c)
		default:
			b.setRune(x, y, r, c)
			if w == 2 {
				if x+2 < b.W && b.Cells[y][x+2].Ch == 0 {
					b.Cells[y][x+2].Ch = ' '
				}
				next := &b.Cells[y][x+1]
				next.Ch, next.Fg = 0, c
			}
		}
		x += w
	}
}

// Image draws nothing; terminals show no pictures.
func (b *Buffer) Image(string, matrix.Rect) {}

// PushClip narrows the clip to r intersected with the current clip.
func (b *Buffer) PushClip(r matrix.Rect) {
	if n := len(b.clips); n > 0 {
		r = r.Intersect(b.clips[n-1])
	}
	b.clips = append(b.clips, r)
}

func (b *Buffer) PopClip() {
	if n := len(b.clips); n > 0 {
		b.clips = b.clips[:n-1]
	}
}

func (b *Buffer) MeasureText(s string, _ string) (w, h int) {
	return runewidth.StringWidth(s), 1
}

var _ matrix.Surface = (*Buffer)(nil)
