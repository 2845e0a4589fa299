package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a logical cell coordinate. Row 0 and column 0 are titles.
type Address struct {
	Row, Col int
}

// String formats the address as "L:C".
func (a Address) String() string {
	return strconv.Itoa(a.Row) + ":" + strconv.Itoa(a.Col)
}

// ParseAddress parses "L:C".
func ParseAddress(s string) (Address, error) {
	l, c, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(l))
	if err != nil || row < 0 {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil || col < 0 {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address{Row: row, Col: col}, nil
}

type styleTarget uint8

const (
	styleOnCell styleTarget = iota
	styleOnRow
	styleOnColumn
)

// parseStyleAddress parses the suffix of a style attribute name: "L:C",
// "*:C" (column), "L:*" (row) or a bare number, which is a column when
// bareIsColumn and a row otherwise.
func parseStyleAddress(s string, bareIsColumn bool) (row, col int, t styleTarget, err error) {
	num := func(v string) (int, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		return n, nil
	}

	l, c, ok := strings.Cut(s, ":")
	if !ok {
		n, err := num(s)
		if err != nil {
			return 0, 0, 0, err
		}
		if bareIsColumn {
			return 0, n, styleOnColumn, nil
		}
		return n, 0, styleOnRow, nil
	}
	switch {
	case l == "*" && c == "*":
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	case l == "*":
		col, err = num(c)
		return 0, col, styleOnColumn, err
	case c == "*":
		row, err = num(l)
		return row, 0, styleOnRow, err
	}
	if row, err = num(l); err != nil {
		return 0, 0, 0, err
	}
	if col, err = num(c); err != nil {
		return 0, 0, 0, err
	}
	return row, col, styleOnCell, nil
}

// viewW and viewH are the size of the scrolling data area.
func (g *Grid) viewW() int { return max(0, g.width-g.cols.Size(0)) }
func (g *Grid) viewH() int { return max(0, g.height-g.rows.Size(0)) }

// contentRect is the data area in viewport coordinates.
func (g *Grid) contentRect() Rect {
	return Rect{X: g.cols.Size(0), Y: g.rows.Size(0), W: g.viewW(), H: g.viewH()}
}

// PixelRect returns the rectangle of a cell in viewport coordinates,
// title band included. Title cells don't scroll along their fixed axis.
// The rectangle may lie partly or wholly outside the viewport; ok is
// false only for out-of-range addresses.
func (g *Grid) PixelRect(row, col int) (Rect, bool) {
	if !g.rows.valid(row) || !g.cols.valid(col) {
		return Rect{}, false
	}
	r := Rect{W: g.cols.Size(col), H: g.rows.Size(row)}
	if col > 0 {
		r.X = g.cols.Size(0) + g.cols.offset(col) - g.scrollX
	}
	if row > 0 {
		r.Y = g.rows.Size(0) + g.rows.offset(row) - g.scrollY
	}
	return r, true
}

// CellAt maps a viewport position to a cell. Points in the title band map
// to row 0 or column 0. ok is false outside the viewport or past the last
// row or column.
func (g *Grid) CellAt(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, 0, false
	}
	row, ok = lineAt(g.rows, y, g.scrollY)
	if !ok {
		return 0, 0, false
	}
	col, ok = lineAt(g.cols, x, g.scrollX)
	if !ok {
		return 0, 0, false
	}
	return row, col, true
}

func lineAt(a *Axis, p, scroll int) (int, bool) {
	title := a.Size(0)
	if p < title {
		return 0, true
	}
	return a.indexAt(p - title + scroll)
}

// dataCellAt maps a position to the nearest visible data cell, clamping
// points outside the data area to its edges. Used while dragging.
func (g *Grid) dataCellAt(x, y int) (row, col int, ok bool) {
	if g.Rows() == 0 || g.Cols() == 0 {
		return 0, 0, false
	}
	near := func(a *Axis, p, view, scroll int) int {
		p = clamp(p-a.Size(0), 0, max(view-1, 0)) + scroll
		if i, ok := a.indexAt(p); ok {
			return i
		}
		return a.Count()
	}
	return near(g.rows, y, g.viewH(), g.scrollY), near(g.cols, x, g.viewW(), g.scrollX), true
}

// cellFullyVisible reports whether a data cell lies entirely inside the
// data area.
func (g *Grid) cellFullyVisible(row, col int) bool {
	if row < 1 || col < 1 {
		return false
	}
	r, ok := g.PixelRect(row, col)
	return ok && r.Inside(g.contentRect())
}
