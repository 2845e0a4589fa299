package matrix

import "strings"

// Surface is the drawing service a platform provides. Coordinates are
// pixels relative to the grid's top-left corner.
type Surface interface {
	Size() (w, h int)
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color)
	Line(x1, y1, x2, y2 int, c Color)
	Text(x, y int, s string, font string, c Color)
	Image(name string, r Rect)
	PushClip(r Rect)
	PopClip()
	MeasureText(s string, font string) (w, h int)
}

// Platform is the window service a platform provides.
type Platform interface {
	// Invalidate asks for a repaint. The platform then calls Flush or
	// Draw from its paint handler.
	Invalidate()
	SetCursor(c Cursor)
	SetScrollbar(o Orientation, pos, size float64)
}

type nopPlatform struct{}

func (nopPlatform) Invalidate()                                {}
func (nopPlatform) SetCursor(Cursor)                           {}
func (nopPlatform) SetScrollbar(Orientation, float64, float64) {}

// Flush paints if a repaint is pending. Reports whether it painted.
func (g *Grid) Flush(s Surface) bool {
	if !g.dirty {
		return false
	}
	return g.Draw(s)
}

// Draw paints the grid. Without a usable surface (nil, zero-sized) or
// while the grid is hidden nothing is drawn and Draw returns false.
func (g *Grid) Draw(s Surface) bool {
	g.dirty, g.notified = false, false
	g.syncScrollbars()
	if s == nil || !g.visible {
		return false
	}
	sw, sh := s.Size()
	if sw <= 0 || sh <= 0 {
		return false
	}
	g.stats.Repaints++

	view := Rect{W: min(g.width, sw), H: min(g.height, sh)}
	s.PushClip(view)
	defer s.PopClip()
	s.FillRect(view, g.palette.Background)

	titleW, titleH := g.cols.Size(0), g.rows.Size(0)
	r0, r1 := g.rows.visible(g.scrollY, g.viewH())
	c0, c1 := g.cols.visible(g.scrollX, g.viewW())

	content := g.contentRect()
	s.PushClip(content)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			g.drawCell(s, r, c)
		}
	}
	g.drawFocus(s)
	s.PopClip()

	if titleH > 0 {
		s.PushClip(Rect{X: titleW, W: g.viewW(), H: titleH})
		for c := c0; c <= c1; c++ {
			g.drawCell(s, 0, c)
		}
		s.PopClip()
	}
	if titleW > 0 {
		s.PushClip(Rect{Y: titleH, W: titleW, H: g.viewH()})
		for r := r0; r <= r1; r++ {
			g.drawCell(s, r, 0)
		}
		s.PopClip()
	}
	if titleW > 0 && titleH > 0 {
		g.drawCell(s, 0, 0)
	}

	g.drawEditor(s)
	return true
}

func (g *Grid) drawCell(s Surface, row, col int) {
	r, ok := g.PixelRect(row, col)
	if !ok || r.Empty() {
		return
	}
	if g.cb.DrawCell != nil && g.cb.DrawCell(s, row, col, r) {
		return
	}

	st := g.EffectiveStyle(row, col)
	bg := st.Bg
	if g.IsMarked(row, col) {
		bg = bg.Blend(g.palette.MarkColor, g.palette.MarkBlend)
	}
	s.FillRect(r, bg)

	right, bottom := r.X+r.W-1, r.Y+r.H-1
	s.Line(right, r.Y, right, bottom, g.palette.GridLineColor)
	s.Line(r.X, bottom, right, bottom, g.palette.GridLineColor)

	inner := Rect{X: r.X, Y: r.Y, W: r.W - 1, H: r.H - 1}.Inset(g.padding)
	if inner.Empty() {
		return
	}
	if g.cb.Image != nil {
		if name := g.cb.Image(row, col); name != "" {
			s.Image(name, inner)
		}
	}
	value, ok := g.Value(row, col)
	if !ok || value == "" {
		return
	}
	g.drawText(s, inner, firstLine(value), st)
}

// drawText paints one line of text aligned inside r and clipped to it.
func (g *Grid) drawText(s Surface, r Rect, text string, st Style) {
	tw, th := s.MeasureText(text, st.Font)
	x := r.X
	switch st.Align {
	case AlignCenter:
		x = r.X + (r.W-tw)/2
	case AlignRight:
		x = r.X + r.W - tw
	}
	// Text wider than the cell keeps its start visible.
	x = max(x, r.X)
	y := r.Y + (r.H-th)/2
	s.PushClip(r)
	s.Text(x, y, text, st.Font, st.Fg)
	s.PopClip()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSuffix(line, "\r")
}

func (g *Grid) drawFocus(s Surface) {
	if !g.hasFocus || !g.focusVisible || g.focusRow == 0 {
		return
	}
	if g.edit != nil && !g.edit.hidden {
		return
	}
	r, ok := g.PixelRect(g.focusRow, g.focusCol)
	if !ok || r.Empty() {
		return
	}
	s.StrokeRect(Rect{X: r.X, Y: r.Y, W: r.W - 1, H: r.H - 1}, g.palette.FocusColor)
}

func (g *Grid) drawEditor(s Surface) {
	r, ok := g.EditorRect()
	if !ok || r.Empty() {
		return
	}
	e := g.edit
	p := g.palette
	st := g.EffectiveStyle(e.row, e.col)

	s.PushClip(g.contentRect())
	s.FillRect(r, p.EditorBackground)
	s.StrokeRect(r, p.EditorBorder)
	inner := r.Inset(g.padding)

	if e.kind == EditorText {
		line := e.line
		text := line.String()
		prefixW := func(n int) int {
			w, _ := s.MeasureText(string(line.runes[:n]), st.Font)
			return w
		}
		_, th := s.MeasureText(text, st.Font)
		y := inner.Y + (inner.H-th)/2
		s.PushClip(inner)
		if start, end := line.selection(); start >= 0 {
			x0, x1 := inner.X+prefixW(start), inner.X+prefixW(end)
			s.FillRect(Rect{X: x0, Y: y, W: x1 - x0, H: th}, p.MarkColor.Blend(p.EditorBackground, 0.5))
		}
		s.Text(inner.X, y, text, st.Font, p.EditorForeground)
		cx := inner.X + prefixW(line.cursor)
		s.Line(cx, y, cx, y+th-1, p.EditorForeground)
		s.PopClip()
		s.PopClip()
		return
	}

	text := e.Text()
	s.PushClip(inner)
	_, th := s.MeasureText(text, st.Font)
	s.Text(inner.X, inner.Y+(inner.H-th)/2, text, st.Font, p.EditorForeground)
	s.PopClip()
	s.PopClip()

	lr, ok := g.listRect()
	if !ok {
		return
	}
	s.FillRect(lr, p.EditorBackground)
	s.StrokeRect(lr, p.EditorBorder)
	for i, it := range e.items {
		ir := Rect{X: lr.X, Y: lr.Y + i*r.H, W: lr.W, H: r.H}
		if i == e.selected {
			s.FillRect(ir, p.MarkColor.Blend(p.EditorBackground, 1-p.MarkBlend))
		}
		g.drawText(s, ir.Inset(g.padding), it, Style{}.WithFg(p.EditorForeground).WithFont(st.Font))
	}
}
