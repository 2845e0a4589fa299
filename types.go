package matrix

// Point is a position in pixels relative to the grid's top-left corner.
type Point struct {
	X, Y int
}

// Rect represents a rectangle with position and size in pixels.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Inside returns true if r lies completely within other.
func (r Rect) Inside(other Rect) bool {
	return r.X >= other.X && r.Y >= other.Y &&
		r.X+r.W <= other.X+other.W && r.Y+r.H <= other.Y+other.H
}

// Intersect returns the overlapping part of two rectangles.
// The result has zero size when they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.X+r.W, other.X+other.W)
	y1 := min(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks the rectangle by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.W = max(0, r.W-2*n)
	r.H = max(0, r.H-2*n)
	return r
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Color is an RGBA color packed as 0xAABBGGRR, the layout the OpenGL
// backend uploads as normalized unsigned bytes.
type Color uint32

// Color constants
const (
	ColorWhite       Color = 0xFFFFFFFF
	ColorBlack       Color = 0xFF000000
	ColorRed         Color = 0xFF0000FF
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFFFF0000
	ColorYellow      Color = 0xFF00FFFF
	ColorCyan        Color = 0xFFFFFF00
	ColorGray        Color = 0xFF808080
	ColorDarkGray    Color = 0xFF404040
	ColorLightGray   Color = 0xFFC0C0C0
	ColorTransparent Color = 0x00000000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// RGBA extracts the color components.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// Opaque reports whether the color has any alpha at all.
func (c Color) Opaque() bool {
	return c&0xFF000000 != 0
}

// clamp clamps an int to [lo, hi]. hi wins when the range is empty.
func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// clampf clamps a float64 value to a range.
func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absi(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
