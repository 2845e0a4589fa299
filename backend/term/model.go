package term

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/matrix"
)

const (
	blinkInterval   = 500 * time.Millisecond
	doubleClickTime = 400 * time.Millisecond
)

// Options returns the grid options that fit a character-cell surface:
// one pixel per cell, no padding and two lines per row so rows get a
// separator line.
func Options() []matrix.Option {
	return []matrix.Option{
		matrix.WithCharSize(1, 1),
		matrix.WithCellPadding(0),
		matrix.WithMinSize(1),
		matrix.WithResizeTolerance(0),
	}
}

// DefaultConfig is matrix.DefaultConfig with sizes in character cells.
func DefaultConfig() matrix.Config {
	cfg := matrix.DefaultConfig()
	cfg.ColumnWidth = 12
	cfg.RowHeight = 2
	cfg.TitleWidth = 5
	cfg.TitleHeight = 2
	return cfg
}

type blinkMsg struct{}

// Model is a Bubble Tea model showing one grid. It is also the grid's
// matrix.Platform. Ctrl+C and Ctrl+Q quit.
type Model struct {
	grid     *matrix.Grid
	buf      *Buffer
	renderer *Renderer
	view     string
	bars     [2][2]float64
	width    int
	height   int
	stale    bool

	pressed    matrix.MouseButton
	down       bool
	lastClick  time.Time
	lastButton matrix.MouseButton
	lastX      int
	lastY      int

	now func() time.Time
}

// NewModel attaches grid to a new model.
func NewModel(grid *matrix.Grid) *Model {
	m := &Model{
		grid:     grid,
		buf:      &Buffer{},
		renderer: NewRenderer(),
		bars:     [2][2]float64{{0, 1}, {0, 1}},
		stale:    true,
		now:      time.Now,
	}
	grid.SetPlatform(m)
	grid.HandleFocus(true)
	return m
}

// Grid returns the grid the model shows.
func (m *Model) Grid() *matrix.Grid { return m.grid }

// Invalidate implements matrix.Platform. Bubble Tea calls View after
// every update, so only the flag is needed.
func (m *Model) Invalidate() { m.stale = true }

// SetCursor implements matrix.Platform. Terminals keep their pointer.
func (m *Model) SetCursor(matrix.Cursor) {}

// SetScrollbar implements matrix.Platform.
func (m *Model) SetScrollbar(o matrix.Orientation, pos, size float64) {
	m.bars[o] = [2]float64{pos, size}
}

func blink() tea.Cmd {
	return tea.Tick(blinkInterval, func(time.Time) tea.Msg { return blinkMsg{} })
}

func (m *Model) Init() tea.Cmd {
	return blink()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// The last column and row hold the scrollbars.
		m.grid.Resize(max(0, msg.Width-1), max(0, msg.Height-1))
		m.stale = true
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlQ:
			return m, tea.Quit
		}
		for _, ev := range keyEvents(msg) {
			m.grid.HandleKey(ev)
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.FocusMsg:
		m.grid.HandleFocus(true)
	case tea.BlurMsg:
		m.grid.HandleFocus(false)
	case blinkMsg:
		m.grid.BlinkFocus()
		return m, blink()
	}
	return m, nil
}

func (m *Model) View() string {
	if !m.stale && !m.grid.Dirty() {
		return m.view
	}
	m.stale = false

	pal := m.grid.Palette()
	if m.buf.W != m.width || m.buf.H != m.height {
		m.buf.Resize(m.width, m.height, pal.Foreground, pal.Background)
	} else {
		m.buf.Fill(pal.Foreground, pal.Background)
	}
	m.grid.Draw(m.buf)
	m.drawScrollbars(pal)
	m.view = m.renderer.Render(m.buf)
	return m.view
}

func (m *Model) drawScrollbars(pal matrix.Palette) {
	gw, gh := m.grid.Viewport()
	track, thumb := pal.TitleBackground, pal.GridLineColor

	m.buf.FillRect(matrix.Rect{X: gw, Y: 0, W: 1, H: gh}, track)
	if pos, size := m.bars[matrix.Vertical][0], m.bars[matrix.Vertical][1]; size < 1 {
		y := int(pos * float64(gh))
		h := max(int(size*float64(gh)), 1)
		m.buf.FillRect(matrix.Rect{X: gw, Y: y, W: 1, H: h}, thumb)
	}

	m.buf.FillRect(matrix.Rect{X: 0, Y: gh, W: gw, H: 1}, track)
	if pos, size := m.bars[matrix.Horizontal][0], m.bars[matrix.Horizontal][1]; size < 1 {
		x := int(pos * float64(gw))
		w := max(int(size*float64(gw)), 1)
		m.buf.FillRect(matrix.Rect{X: x, Y: gh, W: w, H: 1}, thumb)
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	var mods matrix.Mods
	if msg.Shift {
		mods |= matrix.ModShift
	}
	if msg.Ctrl {
		mods |= matrix.ModCtrl
	}
	if msg.Alt {
		mods |= matrix.ModAlt
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.grid.HandleWheel(matrix.WheelEvent{X: msg.X, Y: msg.Y, DY: 1, Mods: mods})
		return
	case tea.MouseButtonWheelDown:
		m.grid.HandleWheel(matrix.WheelEvent{X: msg.X, Y: msg.Y, DY: -1, Mods: mods})
		return
	case tea.MouseButtonWheelLeft:
		m.grid.HandleWheel(matrix.WheelEvent{X: msg.X, Y: msg.Y, DX: 1, Mods: mods})
		return
	case tea.MouseButtonWheelRight:
		m.grid.HandleWheel(matrix.WheelEvent{X: msg.X, Y: msg.Y, DX: -1, Mods: mods})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		b, ok := mouseButton(msg.Button)
		if !ok {
			return
		}
		now := m.now()
		double := !m.down && b == m.lastButton && now.Sub(m.lastClick) <= doubleClickTime &&
			msg.X == m.lastX && msg.Y == m.lastY
		if double {
			m.lastClick = time.Time{}
		} else {
			m.lastClick = now
		}
		m.lastButton, m.lastX, m.lastY = b, msg.X, msg.Y
		m.pressed, m.down = b, true
		m.grid.HandleButton(matrix.ButtonEvent{X: msg.X, Y: msg.Y, Button: b, Pressed: true, Double: double, Mods: mods})
	case tea.MouseActionRelease:
		// Some terminals don't report which button was released.
		b, ok := mouseButton(msg.Button)
		if !ok {
			b = m.pressed
		}
		m.down = false
		m.grid.HandleButton(matrix.ButtonEvent{X: msg.X, Y: msg.Y, Button: b, Mods: mods})
	case tea.MouseActionMotion:
		m.grid.HandleMotion(matrix.MotionEvent{X: msg.X, Y: msg.Y, Mods: mods})
	}
}

func mouseButton(b tea.MouseButton) (matrix.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return matrix.MouseButtonLeft, true
	case tea.MouseButtonRight:
		return matrix.MouseButtonRight, true
	case tea.MouseButtonMiddle:
		return matrix.MouseButtonMiddle, true
	}
	return 0, false
}

// keyEvents translates a key message. Space and typed runes arrive as
// matrix.KeyChar.
func keyEvents(msg tea.KeyMsg) []matrix.KeyEvent {
	var mods matrix.Mods
	if msg.Alt {
		mods |= matrix.ModAlt
	}
	ev := func(k matrix.Key, extra matrix.Mods) []matrix.KeyEvent {
		return []matrix.KeyEvent{{Key: k, Mods: mods | extra}}
	}

	switch msg.Type {
	case tea.KeyRunes:
		evs := make([]matrix.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, matrix.KeyEvent{Key: matrix.KeyChar, Rune: r, Mods: mods})
		}
		return evs
	case tea.KeySpace:
		return []matrix.KeyEvent{{Key: matrix.KeyChar, Rune: ' ', Mods: mods}}

	case tea.KeyTab:
		return ev(matrix.KeyTab, 0)
	case tea.KeyShiftTab:
		return ev(matrix.KeyTab, matrix.ModShift)
	case tea.KeyEnter:
		return ev(matrix.KeyEnter, 0)
	case tea.KeyEsc:
		return ev(matrix.KeyEscape, 0)
	case tea.KeyBackspace:
		return ev(matrix.KeyBackspace, 0)
	case tea.KeyDelete:
		return ev(matrix.KeyDelete, 0)
	case tea.KeyF2:
		return ev(matrix.KeyF2, 0)
	case tea.KeyF4:
		return ev(matrix.KeyF4, 0)
	case tea.KeyCtrlA:
		return ev(matrix.KeyA, matrix.ModCtrl)
	case tea.KeyCtrlZ:
		return ev(matrix.KeyZ, matrix.ModCtrl)
	case tea.KeyCtrlY:
		return ev(matrix.KeyZ, matrix.ModCtrl|matrix.ModShift)

	case tea.KeyUp:
		return ev(matrix.KeyUp, 0)
	case tea.KeyDown:
		return ev(matrix.KeyDown, 0)
	case tea.KeyLeft:
		return ev(matrix.KeyLeft, 0)
	case tea.KeyRight:
		return ev(matrix.KeyRight, 0)
	case tea.KeyShiftUp:
		return ev(matrix.KeyUp, matrix.ModShift)
	case tea.KeyShiftDown:
		return ev(matrix.KeyDown, matrix.ModShift)
	case tea.KeyShiftLeft:
		return ev(matrix.KeyLeft, matrix.ModShift)
	case tea.KeyShiftRight:
		return ev(matrix.KeyRight, matrix.ModShift)
	case tea.KeyCtrlLeft:
		return ev(matrix.KeyLeft, matrix.ModCtrl)
	case tea.KeyCtrlRight:
		return ev(matrix.KeyRight, matrix.ModCtrl)
	case tea.KeyCtrlShiftLeft:
		return ev(matrix.KeyLeft, matrix.ModCtrl|matrix.ModShift)
	case tea.KeyCtrlShiftRight:
		return ev(matrix.KeyRight, matrix.ModCtrl|matrix.ModShift)

	case tea.KeyPgUp:
		return ev(matrix.KeyPageUp, 0)
	case tea.KeyPgDown:
		return ev(matrix.KeyPageDown, 0)
	case tea.KeyHome:
		return ev(matrix.KeyHome, 0)
	case tea.KeyEnd:
		return ev(matrix.KeyEnd, 0)
	case tea.KeyShiftHome:
		return ev(matrix.KeyHome, matrix.ModShift)
	case tea.KeyShiftEnd:
		return ev(matrix.KeyEnd, matrix.ModShift)
	case tea.KeyCtrlHome:
		return ev(matrix.KeyHome, matrix.ModCtrl)
	case tea.KeyCtrlEnd:
		return ev(matrix.KeyEnd, matrix.ModCtrl)
	case tea.KeyCtrlShiftHome:
		return ev(matrix.KeyHome, matrix.ModCtrl|matrix.ModShift)
	case tea.KeyCtrlShiftEnd:
		return ev(matrix.KeyEnd, matrix.ModCtrl|matrix.ModShift)
	}
	return nil
}

var _ matrix.Platform = (*Model)(nil)
