package opengl

import (
	"github.com/go-theft-auto/matrix"
)

// Canvas records a grid paint into a DrawList. It implements
// matrix.Surface; the renderer then submits the list to the GPU.
type Canvas struct {
	dl     *DrawList
	atlas  *GlyphAtlas
	font   uint32
	images map[string]uint32
	width  int
	height int
	clips  []matrix.Rect
}

// NewCanvas returns a canvas drawing text from atlas, uploaded as the
// texture fontTex.
func NewCanvas(atlas *GlyphAtlas, fontTex uint32) *Canvas {
	return &Canvas{
		atlas:  atlas,
		font:   fontTex,
		images: make(map[string]uint32),
	}
}

// Begin starts recording into dl for a surface of the given size.
func (c *Canvas) Begin(dl *DrawList, width, height int) {
	c.dl = dl
	c.width, c.height = width, height
	c.clips = c.clips[:0]
}

// SetImage binds an image name, as returned by the Image callback, to
// an RGBA texture.
func (c *Canvas) SetImage(name string, tex uint32) {
	if tex == 0 {
		delete(c.images, name)
		return
	}
	c.images[name] = tex
}

func (c *Canvas) Size() (w, h int) {
	return c.width, c.height
}

func (c *Canvas) FillRect(r matrix.Rect, col matrix.Color) {
	if r.Empty() {
		return
	}
	c.dl.SetTexture(0)
	c.dl.AddRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), uint32(col))
}

func (c *Canvas) StrokeRect(r matrix.Rect, col matrix.Color) {
	if r.Empty() {
		return
	}
	c.dl.SetTexture(0)
	c.dl.AddRectOutline(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), uint32(col), 1)
}

// Line draws a one pixel line. Axis-aligned lines become rectangles so
// they land on pixel centers.
func (c *Canvas) Line(x1, y1, x2, y2 int, col matrix.Color) {
	c.dl.SetTexture(0)
	switch {
	case y1 == y2:
		x0 := min(x1, x2)
		c.dl.AddRect(float32(x0), float32(y1), float32(abs(x2-x1)+1), 1, uint32(col))
	case x1 == x2:
		y0 := min(y1, y2)
		c.dl.AddRect(float32(x1), float32(y0), 1, float32(abs(y2-y1)+1), uint32(col))
	default:
		c.dl.AddLine(float32(x1)+0.5, float32(y1)+0.5, float32(x2)+0.5, float32(y2)+0.5, uint32(col), 1)
	}
}

func (c *Canvas) Text(x, y int, s string, _ string, col matrix.Color) {
	if s == "" {
		return
	}
	c.dl.SetTexture(c.font)
	cw, ch := float32(c.atlas.CellW), float32(c.atlas.CellH)
	px := float32(x)
	for _, r := range s {
		if r != ' ' {
			u0, v0, u1, v1 := c.atlas.UV(r)
			c.dl.AddQuad(px, float32(y), px+cw, float32(y)+ch, u0, v0, u1, v1, uint32(col))
		}
		px += float32(c.atlas.Advance(r))
	}
}

// Image draws a registered texture stretched over r. Unknown names draw
// nothing.
func (c *Canvas) Image(name string, r matrix.Rect) {
	tex, ok := c.images[name]
	if !ok || r.Empty() {
		return
	}
	c.dl.SetTexture(tex)
	c.dl.AddQuad(float32(r.X), float32(r.Y), float32(r.X+r.W), float32(r.Y+r.H), 0, 0, 1, 1, uint32(matrix.ColorWhite))
}

// PushClip narrows the clip region to r intersected with the current one.
func (c *Canvas) PushClip(r matrix.Rect) {
	if n := len(c.clips); n > 0 {
		r = r.Intersect(c.clips[n-1])
	}
	c.clips = append(c.clips, r)
	c.dl.PushClipRect(float32(r.X), float32(r.Y), float32(r.X+r.W), float32(r.Y+r.H))
}

func (c *Canvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
		c.dl.PopClipRect()
	}
}

func (c *Canvas) MeasureText(s string, _ string) (w, h int) {
	return c.atlas.Measure(s)
}

var _ matrix.Surface = (*Canvas)(nil)
