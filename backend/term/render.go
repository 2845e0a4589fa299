package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-theft-auto/matrix"
)

type colorPair struct {
	fg, bg matrix.Color
}

// Renderer turns a Buffer into a styled string. It caches one lipgloss
// style per color pair.
type Renderer struct {
	styles map[colorPair]lipgloss.Style
}

// NewRenderer returns an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[colorPair]lipgloss.Style)}
}

func (r *Renderer) style(p colorPair) lipgloss.Style {
	if st, ok := r.styles[p]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg.Hex())).
		Background(lipgloss.Color(p.bg.Hex()))
	r.styles[p] = st
	return st
}

// Render converts the buffer into a styled string. Consecutive cells with
// the same colors are rendered as one run. Rows are joined with "\n"; an
// empty buffer renders as "".
func (r *Renderer) Render(b *Buffer) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}

	lines := make([]string, b.H)
	var run []rune
	for y := 0; y < b.H; y++ {
		var sb strings.Builder
		row := b.Cells[y]
		cur := colorPair{row[0].Fg, row[0].Bg}
		run = run[:0]

		for x := 0; x < b.W; x++ {
			c := row[x]
			p := colorPair{c.Fg, c.Bg}
			if p != cur && len(run) > 0 {
				sb.WriteString(r.style(cur).Render(string(run)))
				run = run[:0]
			}
			cur = p
			// Continuation cells are covered by the wide rune before them.
			if c.Ch != 0 {
				run = append(run, c.Ch)
			}
		}
		if len(run) > 0 {
			sb.WriteString(r.style(cur).Render(string(run)))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// String renders the buffer's characters without styling, one line per
// row. Useful for tests and logs.
func (b *Buffer) String() string {
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		var sb strings.Builder
		for _, c := range row {
			if c.Ch != 0 {
				sb.WriteRune(c.Ch)
			}
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
