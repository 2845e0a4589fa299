package matrix

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	g := New()
	assert.Zero(t, g.Rows())
	assert.Zero(t, g.Cols())
	assert.True(t, g.Visible())
	assert.True(t, g.Dirty())

	w, h := g.Viewport()
	assert.Equal(t, 40+4*80, w)
	assert.Equal(t, 20+3*20, h)

	g = New(WithSize(2, 2), WithViewport(300, 200), WithHidden())
	w, h = g.Viewport()
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
	assert.False(t, g.Visible())
}

func TestGrid_Values(t *testing.T) {
	g, _ := newTestGrid(3, 3)

	g.SetValue(1, 1, "a")
	g.SetValue(0, 2, "title")
	g.SetValue(5, 5, "ignored")

	assert.Equal(t, "a", value(g, 1, 1))
	assert.Equal(t, "title", value(g, 0, 2))
	_, ok := g.Value(5, 5)
	assert.False(t, ok)

	g.SetValue(1, 2, "")
	v, ok := g.Value(1, 2)
	assert.True(t, ok, "the empty string is a value")
	assert.Equal(t, "", v)

	g.UnsetValue(1, 2)
	_, ok = g.Value(1, 2)
	assert.False(t, ok)
}

func TestGrid_InsertDeleteRows(t *testing.T) {
	g, _ := newTestGrid(3, 2)
	g.SetValue(1, 1, "r1")
	g.SetValue(3, 1, "r3")
	g.SetRowHeight(3, 33)

	g.InsertRows(2, 2)
	assert.Equal(t, 5, g.Rows())
	assert.Equal(t, "r1", value(g, 1, 1))
	assert.Equal(t, "r3", value(g, 5, 1))
	assert.Equal(t, 33, g.RowHeight(5), "sizes move with their rows")
	assert.Equal(t, 20, g.RowHeight(2))
	_, ok := g.Value(2, 1)
	assert.False(t, ok)

	g.DeleteRows(2, 2)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, "r3", value(g, 3, 1))

	g.InsertRows(99, 1)
	assert.Equal(t, 4, g.Rows(), "positions past the end append")
	g.DeleteRows(9, 1)
	assert.Equal(t, 4, g.Rows(), "out of range deletes are ignored")
	g.DeleteRows(0, 1)
	assert.Equal(t, 4, g.Rows(), "the title row can't be deleted")
}

func TestGrid_InsertDeleteColumns(t *testing.T) {
	g, _ := newTestGrid(2, 3)
	g.SetColumnTitles("A", "B", "C")
	g.SetColumnStyle(2, Style{}.WithBg(ColorRed))

	g.InsertColumns(1, 1)
	assert.Equal(t, []string{"", "A", "B", "C"}, g.ColumnTitles())
	assert.Equal(t, ColorRed, g.ColumnStyle(3).Bg)

	g.DeleteColumns(2, 99)
	assert.Equal(t, 1, g.Cols())
	assert.Equal(t, []string{""}, g.ColumnTitles())
}

func TestGrid_SetRowsCols(t *testing.T) {
	g, _ := newTestGrid(2, 2)
	g.SetValue(2, 2, "x")

	g.SetRows(4)
	g.SetCols(5)
	assert.Equal(t, 4, g.Rows())
	assert.Equal(t, 5, g.Cols())
	assert.Equal(t, "x", value(g, 2, 2))

	g.SetRows(1)
	_, ok := g.Value(2, 2)
	assert.False(t, ok)
	g.SetRows(-1)
	assert.Zero(t, g.Rows())
}

func TestGrid_StructuralChangeClampsScroll(t *testing.T) {
	g, _ := newTestGrid(10, 8)
	g.SetScrollOffset(400, 140)

	g.DeleteRows(5, 5)
	_, y := g.ScrollOffset()
	assert.Equal(t, 5*20-60, y)

	g.DeleteColumns(1, 6)
	x, _ := g.ScrollOffset()
	assert.Equal(t, 0, x)
}

func TestGrid_NaturalSizes(t *testing.T) {
	g, _ := newTestGrid(2, 2)

	g.SetColumnWidthChars(1, 10)
	assert.Equal(t, 10*7+2*2, g.ColumnWidth(1))
	assert.Equal(t, 10, g.ColumnWidthChars(1))

	g.SetRowHeightLines(2, 2)
	assert.Equal(t, 2*13+2*2, g.RowHeight(2))
	assert.Equal(t, 2, g.RowHeightLines(2))

	g.SetColumnWidth(9, 50)
	g.SetColumnWidthChars(1, -1)
	assert.Equal(t, 74, g.ColumnWidth(1))
}

func TestGrid_ClearValues(t *testing.T) {
	g, _ := newTestGrid(2, 2, WithMarkMode(MarkRow, MarkContinuous, false))
	g.SetColumnTitles("A", "B")
	for r := 1; r <= 2; r++ {
		for c := 1; c <= 2; c++ {
			g.SetValue(r, c, "v")
		}
	}

	g.Mark(2, 1)
	g.ClearValues(ClearMarked)
	assert.Equal(t, "v", value(g, 1, 1))
	_, ok := g.Value(2, 2)
	assert.False(t, ok)

	g.ClearValues(ClearAll)
	_, ok = g.Value(1, 1)
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B"}, g.ColumnTitles(), "titles survive")
}

func TestGrid_HiddenIgnoresInput(t *testing.T) {
	g, _ := newTestGrid(3, 3, WithHidden())

	assert.False(t, g.HandleKey(key(KeyDown)))
	assert.False(t, g.HandleButton(ButtonEvent{X: 50, Y: 30, Pressed: true}))
	assert.False(t, g.HandleWheel(WheelEvent{DY: -1}))
	assertFocus(t, g, 1, 1)
}

func TestGrid_ClickAndRelease(t *testing.T) {
	var clicks, releases []CellClick
	g, _ := newTestGrid(3, 3, WithCallbacks(Callbacks{
		Click: func(c CellClick) Action {
			clicks = append(clicks, c)
			if c.Button == MouseButtonRight {
				return ActionIgnore
			}
			return ActionDefault
		},
		Release: func(c CellClick) { releases = append(releases, c) },
	}))

	x, y := cellCenter(g, 2, 3)
	g.HandleButton(ButtonEvent{X: x, Y: y, Button: MouseButtonRight, Pressed: true})
	assertFocus(t, g, 1, 1)

	clickCell(g, 2, 3)
	assertFocus(t, g, 2, 3)
	require.Len(t, clicks, 2)
	assert.Equal(t, 2, clicks[1].Row)
	assert.Equal(t, 3, clicks[1].Col)
	require.Len(t, releases, 1)

	assert.False(t, press(g, 1000, 10), "outside the viewport")
}

func TestSetLogger(t *testing.T) {
	old := logger
	defer SetLogger(old)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	SetLogger(nil)

	g, _ := newTestGrid(2, 2)
	g.InsertRows(1, 1)
	assert.Contains(t, buf.String(), "rows inserted")
}

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	assert.Equal(t, slog.LevelDebug, logLevel.Level())
	SetVerbose(false)
	assert.Equal(t, slog.LevelInfo, logLevel.Level())
}

func TestVirtualGrid_StoresNoCells(t *testing.T) {
	g := New(WithSize(20000, 50), WithMarkMode(MarkCell, MarkDiscontinuous, true), WithCallbacks(Callbacks{
		Value: func(row, col int) (string, bool) { return fmt.Sprintf("%d:%d", row, col), true },
	}))

	s := g.Store()
	assert.True(t, s.Sparse())
	assert.Zero(t, s.RowCap())
	assert.Zero(t, s.ColCap())
	assert.Zero(t, s.Records())

	assert.Equal(t, 20000, g.Rows())
	assert.Equal(t, "20000:50", value(g, 20000, 50))
	_, ok := g.Value(20001, 1)
	assert.False(t, ok)

	assert.True(t, g.Mark(19999, 7))
	assert.True(t, g.IsMarked(19999, 7))
	g.SetCellStyle(3, 3, Style{}.WithBg(ColorRed))
	assert.Equal(t, ColorRed, g.EffectiveStyle(3, 3).Bg)
	assert.Equal(t, 2, s.Records())

	g.InsertRows(1, 1)
	assert.True(t, g.IsMarked(20000, 7))
	assert.Equal(t, ColorRed, g.CellStyle(4, 3).Bg)
}

func TestSetCallbacks_SwitchesStorage(t *testing.T) {
	g, _ := newTestGrid(3, 3, WithMarkMode(MarkCell, MarkDiscontinuous, true))
	g.SetValue(1, 1, "stored")
	g.Mark(2, 2)

	g.SetCallbacks(Callbacks{Value: func(row, col int) (string, bool) { return "v", true }})
	assert.True(t, g.Store().Sparse())
	assert.Equal(t, "v", value(g, 1, 1))
	assert.True(t, g.IsMarked(2, 2))

	g.SetCallbacks(Callbacks{})
	assert.False(t, g.Store().Sparse())
	_, ok := g.Value(1, 1)
	assert.False(t, ok)
	assert.True(t, g.IsMarked(2, 2))
}
