package matrix

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Align is the horizontal alignment of cell text.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "ACENTER"
	case AlignRight:
		return "ARIGHT"
	default:
		return "ALEFT"
	}
}

// ParseAlignment parses ALEFT, ACENTER or ARIGHT (case-insensitive; the
// leading A is optional).
func ParseAlignment(s string) (Align, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "A")
	switch v {
	case "LEFT":
		return AlignLeft, nil
	case "CENTER":
		return AlignCenter, nil
	case "RIGHT":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("%w: %q", ErrInvalidAlignment, s)
}

type styleField uint8

const (
	styleFg styleField = 1 << iota
	styleBg
	styleFont
	styleAlign
)

// Style is a sparse set of visual overrides. Only fields set through the
// With* methods take part in override resolution, so a Style can sit at
// any level of the cell > column > row > grid chain without masking the
// levels below it.
type Style struct {
	Fg    Color
	Bg    Color
	Font  string
	Align Align

	set styleField
}

// WithFg returns a copy with the foreground color set.
func (s Style) WithFg(c Color) Style {
	s.Fg = c
	s.set |= styleFg
	return s
}

// WithBg returns a copy with the background color set.
func (s Style) WithBg(c Color) Style {
	s.Bg = c
	s.set |= styleBg
	return s
}

// WithFont returns a copy with the font set. An empty name clears it.
func (s Style) WithFont(font string) Style {
	s.Font = font
	if font == "" {
		s.set &^= styleFont
	} else {
		s.set |= styleFont
	}
	return s
}

// WithAlign returns a copy with the alignment set.
func (s Style) WithAlign(a Align) Style {
	s.Align = a
	s.set |= styleAlign
	return s
}

func (s Style) HasFg() bool    { return s.set&styleFg != 0 }
func (s Style) HasBg() bool    { return s.set&styleBg != 0 }
func (s Style) HasFont() bool  { return s.set&styleFont != 0 }
func (s Style) HasAlign() bool { return s.set&styleAlign != 0 }

// IsZero reports whether no field is set.
func (s Style) IsZero() bool { return s.set == 0 }

// Over layers s on top of base: every field set in s wins.
func (s Style) Over(base Style) Style {
	if s.HasFg() {
		base = base.WithFg(s.Fg)
	}
	if s.HasBg() {
		base = base.WithBg(s.Bg)
	}
	if s.HasFont() {
		base = base.WithFont(s.Font)
	}
	if s.HasAlign() {
		base = base.WithAlign(s.Align)
	}
	return base
}

// ParseColor parses "R G B", "R G B A" (0-255 each) or "#RRGGBB".
func ParseColor(s string) (Color, error) {
	v := strings.TrimSpace(s)
	if strings.HasPrefix(v, "#") {
		c, err := colorful.Hex(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		r, g, b := c.RGB255()
		return RGBA(r, g, b, 255), nil
	}

	fields := strings.Fields(v)
	if len(fields) != 3 && len(fields) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var comp [4]uint8
	comp[3] = 255
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		comp[i] = uint8(n)
	}
	return RGBA(comp[0], comp[1], comp[2], comp[3]), nil
}

// String formats the color as "R G B", the form ParseColor accepts.
func (c Color) String() string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

func (c Color) colorful() colorful.Color {
	r, g, b, _ := c.RGBA()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Blend mixes c towards other by t in [0,1]. Alpha is taken from c.
func (c Color) Blend(other Color, t float64) Color {
	m := c.colorful().BlendRgb(other.colorful(), clampf(t, 0, 1)).Clamped()
	r, g, b := m.RGB255()
	_, _, _, a := c.RGBA()
	return RGBA(r, g, b, a)
}

// Palette holds the grid-wide colors that aren't per-cell overrides.
type Palette struct {
	Foreground      Color
	Background      Color
	TitleForeground Color
	TitleBackground Color
	GridLineColor   Color

	// Marked cells are drawn with their background blended towards
	// MarkColor by MarkBlend.
	MarkColor Color
	MarkBlend float64

	FocusColor Color

	EditorForeground Color
	EditorBackground Color
	EditorBorder     Color

	Font  string
	Align Align
}

// DefaultPalette returns a light palette with sensible defaults.
func DefaultPalette() Palette {
	return Palette{
		Foreground:       ColorBlack,
		Background:       ColorWhite,
		TitleForeground:  ColorBlack,
		TitleBackground:  RGBA(220, 220, 220, 255),
		GridLineColor:    RGBA(160, 160, 160, 255),
		MarkColor:        RGBA(50, 100, 150, 255),
		MarkBlend:        0.4,
		FocusColor:       ColorBlack,
		EditorForeground: ColorBlack,
		EditorBackground: ColorWhite,
		EditorBorder:     RGBA(50, 100, 150, 255),
		Align:            AlignLeft,
	}
}

// DarkPalette returns a dark theme with cyan/yellow accents.
func DarkPalette() Palette {
	return Palette{
		Foreground:       ColorWhite,
		Background:       RGBA(20, 20, 20, 255),
		TitleForeground:  RGBA(255, 200, 0, 255),
		TitleBackground:  RGBA(0, 60, 90, 255),
		GridLineColor:    RGBA(80, 80, 80, 255),
		MarkColor:        RGBA(0, 150, 200, 255),
		MarkBlend:        0.5,
		FocusColor:       ColorCyan,
		EditorForeground: ColorWhite,
		EditorBackground: RGBA(40, 40, 50, 255),
		EditorBorder:     ColorCyan,
		Align:            AlignLeft,
	}
}

// baseStyle is the bottom of the override chain.
func (p Palette) baseStyle() Style {
	return Style{}.WithFg(p.Foreground).WithBg(p.Background).WithFont(p.Font).WithAlign(p.Align)
}

// titleStyle is the bottom of the chain for title cells.
func (p Palette) titleStyle() Style {
	return Style{}.WithFg(p.TitleForeground).WithBg(p.TitleBackground).WithFont(p.Font).WithAlign(AlignCenter)
}

// clear drops the override an attribute name refers to.
func (s Style) clear(attr string) Style {
	switch attr {
	case "FGCOLOR":
		s.Fg, s.set = 0, s.set&^styleFg
	case "BGCOLOR":
		s.Bg, s.set = 0, s.set&^styleBg
	case "FONT":
		s.Font, s.set = "", s.set&^styleFont
	case "ALIGNMENT":
		s.Align, s.set = AlignLeft, s.set&^styleAlign
	}
	return s
}
