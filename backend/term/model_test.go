package term

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/matrix"
)

// newTestModel shows a 10x3 grid with 6-cell columns, 2-line rows and a
// 3x2 title band in a 30x10 terminal.
func newTestModel(t *testing.T) (*Model, *matrix.Grid) {
	t.Helper()
	opts := append(Options(),
		matrix.WithSize(10, 3),
		matrix.WithColumnWidth(6),
		matrix.WithRowHeight(2),
		matrix.WithTitleSize(3, 2),
	)
	g := matrix.New(opts...)
	m := NewModel(g)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	return m, g
}

func mouseAt(x, y int, b tea.MouseButton, a tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: a}
}

func focusOf(g *matrix.Grid) [2]int {
	r, c := g.Focus()
	return [2]int{r, c}
}

func TestModel_Resize(t *testing.T) {
	m, g := newTestModel(t)
	assert.Same(t, g, m.Grid())

	w, h := g.Viewport()
	assert.Equal(t, 29, w, "one column is kept for the scrollbar")
	assert.Equal(t, 9, h)
	assert.NotNil(t, m.Init())
}

func TestModel_View(t *testing.T) {
	m, g := newTestModel(t)
	g.SetValue(1, 1, "abc")
	g.SetColumnTitles("A")

	out := m.View()
	assert.NotEmpty(t, out)
	lines := strings.Split(m.buf.String(), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "abc", string([]rune(lines[2])[3:6]))
	assert.Contains(t, lines[0], "A")
	assert.Equal(t, '│', []rune(lines[2])[8], "column separator")
	assert.Equal(t, '─', []rune(lines[3])[4], "row separator")

	pal := g.Palette()
	assert.Equal(t, pal.GridLineColor, m.buf.Cells[0][29].Bg, "scrollbar thumb")
	assert.Equal(t, pal.TitleBackground, m.buf.Cells[5][29].Bg, "scrollbar track")

	repaints := g.Stats().Repaints
	assert.Equal(t, out, m.View())
	assert.Equal(t, repaints, g.Stats().Repaints, "clean views are cached")
}

func TestModel_Keys(t *testing.T) {
	m, g := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, [2]int{2, 1}, focusOf(g))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	text, ok := g.EditValue()
	require.True(t, ok)
	assert.Equal(t, "hi", text)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v, _ := g.Value(2, 1)
	assert.Equal(t, "hi", v)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_DoubleClick(t *testing.T) {
	m, g := newTestModel(t)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }

	m.Update(mouseAt(10, 4, tea.MouseButtonLeft, tea.MouseActionPress))
	m.Update(mouseAt(10, 4, tea.MouseButtonNone, tea.MouseActionRelease))
	assert.Equal(t, [2]int{2, 2}, focusOf(g))
	assert.False(t, g.Editing())

	now = now.Add(100 * time.Millisecond)
	m.Update(mouseAt(10, 4, tea.MouseButtonLeft, tea.MouseActionPress))
	m.Update(mouseAt(10, 4, tea.MouseButtonNone, tea.MouseActionRelease))
	assert.True(t, g.Editing())
	g.EditEnd(false)

	now = now.Add(100 * time.Millisecond)
	m.Update(mouseAt(10, 4, tea.MouseButtonLeft, tea.MouseActionPress))
	assert.False(t, g.Editing(), "a third press starts a new click")

	now = now.Add(time.Second)
	m.Update(mouseAt(10, 4, tea.MouseButtonNone, tea.MouseActionRelease))
	m.Update(mouseAt(10, 4, tea.MouseButtonLeft, tea.MouseActionPress))
	assert.False(t, g.Editing(), "too slow")
}

func TestModel_ResizeColumn(t *testing.T) {
	m, g := newTestModel(t)

	m.Update(mouseAt(8, 0, tea.MouseButtonLeft, tea.MouseActionPress))
	m.Update(mouseAt(11, 0, tea.MouseButtonNone, tea.MouseActionMotion))
	m.Update(mouseAt(11, 0, tea.MouseButtonNone, tea.MouseActionRelease))
	assert.Equal(t, 9, g.ColumnWidth(1))
}

func TestModel_Wheel(t *testing.T) {
	m, g := newTestModel(t)

	m.Update(mouseAt(10, 4, tea.MouseButtonWheelDown, tea.MouseActionPress))
	row, _ := g.Origin()
	assert.Equal(t, 4, row)

	m.Update(mouseAt(10, 4, tea.MouseButtonWheelUp, tea.MouseActionPress))
	row, _ = g.Origin()
	assert.Equal(t, 1, row)
}

func TestModel_FocusAndBlink(t *testing.T) {
	m, g := newTestModel(t)
	assert.True(t, g.HasFocus())

	_, cmd := m.Update(blinkMsg{})
	assert.NotNil(t, cmd)
	assert.False(t, g.FocusVisible())

	m.Update(tea.BlurMsg{})
	assert.False(t, g.HasFocus())
	m.Update(tea.FocusMsg{})
	assert.True(t, g.HasFocus())
}

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []matrix.KeyEvent
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []matrix.KeyEvent{{Key: matrix.KeyChar, Rune: ' '}}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true},
			[]matrix.KeyEvent{{Key: matrix.KeyChar, Rune: 'x', Mods: matrix.ModAlt}}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, []matrix.KeyEvent{{Key: matrix.KeyTab, Mods: matrix.ModShift}}},
		{"redo", tea.KeyMsg{Type: tea.KeyCtrlY}, []matrix.KeyEvent{{Key: matrix.KeyZ, Mods: matrix.ModCtrl | matrix.ModShift}}},
		{"select all", tea.KeyMsg{Type: tea.KeyCtrlA}, []matrix.KeyEvent{{Key: matrix.KeyA, Mods: matrix.ModCtrl}}},
		{"ctrl end", tea.KeyMsg{Type: tea.KeyCtrlEnd}, []matrix.KeyEvent{{Key: matrix.KeyEnd, Mods: matrix.ModCtrl}}},
		{"alt down", tea.KeyMsg{Type: tea.KeyDown, Alt: true}, []matrix.KeyEvent{{Key: matrix.KeyDown, Mods: matrix.ModAlt}}},
		{"unmapped", tea.KeyMsg{Type: tea.KeyF12}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyEvents(tt.msg))
		})
	}
}
