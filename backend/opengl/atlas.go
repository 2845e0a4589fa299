package opengl

import (
	"image"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII, laid out 16 glyphs per atlas row.
const (
	atlasCols  = 16
	atlasFirst = ' '
	atlasLast  = '~'
)

// GlyphAtlas is an alpha-only glyph sheet rasterized from
// basicfont.Face7x13. Every glyph occupies one CellW x CellH cell.
type GlyphAtlas struct {
	Pix    []byte
	Width  int
	Height int
	CellW  int
	CellH  int
}

// NewGlyphAtlas rasterizes the printable ASCII range.
func NewGlyphAtlas() *GlyphAtlas {
	face := basicfont.Face7x13
	cellW, cellH := face.Advance, face.Height
	rows := (atlasLast-atlasFirst)/atlasCols + 1

	img := image.NewAlpha(image.Rect(0, 0, atlasCols*cellW, rows*cellH))
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for r := rune(atlasFirst); r <= atlasLast; r++ {
		i := int(r - atlasFirst)
		d.Dot = fixed.P((i%atlasCols)*cellW, (i/atlasCols)*cellH+face.Ascent)
		d.DrawString(string(r))
	}

	return &GlyphAtlas{
		Pix:    img.Pix,
		Width:  img.Rect.Dx(),
		Height: img.Rect.Dy(),
		CellW:  cellW,
		CellH:  cellH,
	}
}

// UV returns the texture coordinates of r's cell. Runes outside the
// atlas map to '?'.
func (a *GlyphAtlas) UV(r rune) (u0, v0, u1, v1 float32) {
	if r < atlasFirst || r > atlasLast {
		r = '?'
	}
	i := int(r - atlasFirst)
	x := float32((i % atlasCols) * a.CellW)
	y := float32((i / atlasCols) * a.CellH)
	w, h := float32(a.Width), float32(a.Height)
	return x / w, y / h, (x + float32(a.CellW)) / w, (y + float32(a.CellH)) / h
}

// Advance is the horizontal space r takes. East Asian wide runes take two
// cells so text measured here lines up with MeasureText.
func (a *GlyphAtlas) Advance(r rune) int {
	return max(runewidth.RuneWidth(r), 1) * a.CellW
}

// Measure returns the pixel size of a single line of text.
func (a *GlyphAtlas) Measure(s string) (w, h int) {
	for _, r := range s {
		w += a.Advance(r)
	}
	return w, a.CellH
}
