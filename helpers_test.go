package matrix

import (
	"fmt"
	"strings"
)

// fakePlatform records what the grid asks of the window system.
type fakePlatform struct {
	invalidations int
	cursors       []Cursor
	bars          map[Orientation][2]float64
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{bars: make(map[Orientation][2]float64)}
}

func (p *fakePlatform) Invalidate()        { p.invalidations++ }
func (p *fakePlatform) SetCursor(c Cursor) { p.cursors = append(p.cursors, c) }
func (p *fakePlatform) SetScrollbar(o Orientation, pos, size float64) {
	p.bars[o] = [2]float64{pos, size}
}

// recordSurface logs every drawing call as a line of text.
type recordSurface struct {
	w, h  int
	ops   []string
	clips []Rect
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{w: w, h: h}
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }

func (s *recordSurface) FillRect(r Rect, c Color) {
	s.ops = append(s.ops, fmt.Sprintf("fill %d,%d %dx%d %s", r.X, r.Y, r.W, r.H, c.Hex()))
}

func (s *recordSurface) StrokeRect(r Rect, c Color) {
	s.ops = append(s.ops, fmt.Sprintf("stroke %d,%d %dx%d %s", r.X, r.Y, r.W, r.H, c.Hex()))
}

func (s *recordSurface) Line(x1, y1, x2, y2 int, c Color) {
	s.ops = append(s.ops, fmt.Sprintf("line %d,%d %d,%d", x1, y1, x2, y2))
}

func (s *recordSurface) Text(x, y int, text string, font string, c Color) {
	s.ops = append(s.ops, fmt.Sprintf("text %d,%d %q", x, y, text))
}

func (s *recordSurface) Image(name string, r Rect) {
	s.ops = append(s.ops, fmt.Sprintf("image %s %d,%d", name, r.X, r.Y))
}

func (s *recordSurface) PushClip(r Rect) { s.clips = append(s.clips, r) }

func (s *recordSurface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

// MeasureText uses a 7x13 monospace cell.
func (s *recordSurface) MeasureText(text string, font string) (int, int) {
	return 7 * len([]rune(text)), 13
}

// texts returns the strings drawn with Text.
func (s *recordSurface) texts() []string {
	var out []string
	for _, op := range s.ops {
		if strings.HasPrefix(op, "text ") {
			out = append(out, op[strings.Index(op, "\"")+1:len(op)-1])
		}
	}
	return out
}

func (s *recordSurface) count(prefix string) int {
	n := 0
	for _, op := range s.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

// newTestGrid returns a grid with 100x20 data cells, 40x20 titles and a
// fake platform. Without WithViewport it shows 4 columns and 3 rows.
func newTestGrid(rows, cols int, opts ...Option) (*Grid, *fakePlatform) {
	p := newFakePlatform()
	base := []Option{
		WithSize(rows, cols),
		WithColumnWidth(100),
		WithRowHeight(20),
		WithTitleSize(40, 20),
		WithPlatform(p),
	}
	g := New(append(base, opts...)...)
	g.HandleFocus(true)
	return g, p
}

func key(k Key, mods ...Mods) KeyEvent {
	var m Mods
	for _, mm := range mods {
		m |= mm
	}
	return KeyEvent{Key: k, Mods: m}
}

func char(r rune) KeyEvent {
	return KeyEvent{Key: KeyChar, Rune: r}
}

func typeText(g *Grid, s string) {
	for _, r := range s {
		g.HandleKey(char(r))
	}
}

// cellCenter returns the viewport position of the middle of a cell.
func cellCenter(g *Grid, row, col int) (int, int) {
	r, _ := g.PixelRect(row, col)
	return r.X + r.W/2, r.Y + r.H/2
}

func press(g *Grid, x, y int, mods ...Mods) bool {
	var m Mods
	for _, mm := range mods {
		m |= mm
	}
	return g.HandleButton(ButtonEvent{X: x, Y: y, Button: MouseButtonLeft, Pressed: true, Mods: m})
}

func release(g *Grid, x, y int) bool {
	return g.HandleButton(ButtonEvent{X: x, Y: y, Button: MouseButtonLeft})
}

func move(g *Grid, x, y int) {
	g.HandleMotion(MotionEvent{X: x, Y: y})
}

func clickCell(g *Grid, row, col int, mods ...Mods) {
	x, y := cellCenter(g, row, col)
	press(g, x, y, mods...)
	release(g, x, y)
}
