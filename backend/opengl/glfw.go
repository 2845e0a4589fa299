// Package opengl displays a matrix.Grid in a GLFW window and renders it
// with OpenGL 4.1.
package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/matrix"
)

const (
	doubleClickTime = 0.4 // seconds between presses
	doubleClickDist = 4   // pixels the pointer may travel

	// ScrollbarSize is the thickness of the scrollbars drawn along the
	// right and bottom edges.
	ScrollbarSize = 10
)

// InputAdapter collects GLFW input into a matrix.InputState.
type InputAdapter struct {
	window *glfw.Window
	input  *matrix.InputState
	scale  float64

	lastClick  float64
	lastButton matrix.MouseButton
	lastX      int
	lastY      int
}

// NewInputAdapter creates an adapter and installs its callbacks on window.
func NewInputAdapter(window *glfw.Window) *InputAdapter {
	adapter := &InputAdapter{
		window:    window,
		input:     matrix.NewInputState(),
		scale:     1,
		lastClick: -1,
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetCharCallback(adapter.charCallback)
	window.SetMouseButtonCallback(adapter.mouseButtonCallback)
	window.SetScrollCallback(adapter.scrollCallback)
	window.SetCursorPosCallback(adapter.cursorPosCallback)

	return adapter
}

// Input returns the input collected since the last Feed.
func (a *InputAdapter) Input() *matrix.InputState {
	return a.input
}

// SetScale sets the ratio of framebuffer pixels to window coordinates.
func (a *InputAdapter) SetScale(scale float64) {
	if scale > 0 {
		a.scale = scale
	}
}

// Feed hands the collected input to g and starts a new frame.
func (a *InputAdapter) Feed(g *matrix.Grid) {
	a.input.ModCtrl = a.window.GetKey(glfw.KeyLeftControl) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightControl) == glfw.Press
	a.input.ModShift = a.window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightShift) == glfw.Press
	a.input.ModAlt = a.window.GetKey(glfw.KeyLeftAlt) == glfw.Press ||
		a.window.GetKey(glfw.KeyRightAlt) == glfw.Press

	g.Feed(a.input)
	a.input.Reset()
}

func (a *InputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	k := glfwKeyToMatrixKey(key)
	if k == matrix.KeyNone {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Repeat:
		a.input.RepeatKey(k)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *InputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.AddInputChar(char)
}

func (a *InputAdapter) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	b := glfwMouseButtonToMatrix(button)
	if b < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
		now := glfw.GetTime()
		x, y := a.input.MouseX, a.input.MouseY
		if b == a.lastButton && now-a.lastClick <= doubleClickTime &&
			abs(x-a.lastX) <= doubleClickDist && abs(y-a.lastY) <= doubleClickDist {
			a.input.SetMouseDoubleClick(b)
			a.lastClick = -1
		} else {
			a.lastClick = now
		}
		a.lastButton, a.lastX, a.lastY = b, x, y
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *InputAdapter) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	a.input.SetMouseWheel(float32(xoff), float32(yoff))
}

func (a *InputAdapter) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(int(xpos*a.scale), int(ypos*a.scale))
}

// Window shows one grid in a GLFW window. It is the grid's
// matrix.Platform.
type Window struct {
	win      *glfw.Window
	grid     *matrix.Grid
	input    *InputAdapter
	renderer *Renderer
	canvas   *Canvas
	cursors  map[matrix.Cursor]*glfw.Cursor
	bars     [2][2]float64
	width    int
	height   int
	dirty    bool
}

// NewWindow attaches grid to win. The window's GL context must be current.
func NewWindow(win *glfw.Window, grid *matrix.Grid) (*Window, error) {
	fbw, fbh := win.GetFramebufferSize()
	renderer, err := NewRenderer(fbw, fbh)
	if err != nil {
		return nil, err
	}

	w := &Window{
		win:      win,
		grid:     grid,
		input:    NewInputAdapter(win),
		renderer: renderer,
		canvas:   renderer.NewCanvas(),
		cursors:  make(map[matrix.Cursor]*glfw.Cursor),
		bars:     [2][2]float64{{0, 1}, {0, 1}},
		dirty:    true,
	}

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.layout(width, height)
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.grid.HandleFocus(focused)
	})
	win.SetRefreshCallback(func(_ *glfw.Window) {
		w.dirty = true
	})

	grid.SetPlatform(w)
	w.layout(fbw, fbh)
	grid.HandleFocus(win.GetAttrib(glfw.Focused) == glfw.True)
	return w, nil
}

// Renderer returns the renderer, for uploading cell images.
func (w *Window) Renderer() *Renderer { return w.renderer }

// Canvas returns the surface the grid paints on.
func (w *Window) Canvas() *Canvas { return w.canvas }

func (w *Window) layout(width, height int) {
	w.width, w.height = width, height
	if ww, _ := w.win.GetSize(); ww > 0 {
		w.input.SetScale(float64(width) / float64(ww))
	}
	w.renderer.Resize(width, height)
	w.grid.Resize(max(0, width-ScrollbarSize), max(0, height-ScrollbarSize))
	w.dirty = true
}

// Invalidate implements matrix.Platform.
func (w *Window) Invalidate() {
	w.dirty = true
	glfw.PostEmptyEvent()
}

// SetCursor implements matrix.Platform.
func (w *Window) SetCursor(c matrix.Cursor) {
	w.win.SetCursor(w.cursor(c))
}

// SetScrollbar implements matrix.Platform. The bars are painted with the
// grid, so no extra repaint is requested.
func (w *Window) SetScrollbar(o matrix.Orientation, pos, size float64) {
	w.bars[o] = [2]float64{pos, size}
}

func (w *Window) cursor(c matrix.Cursor) *glfw.Cursor {
	if c == matrix.CursorDefault {
		return nil
	}
	if cur, ok := w.cursors[c]; ok {
		return cur
	}
	shape := glfw.HResizeCursor
	if c == matrix.CursorResizeV {
		shape = glfw.VResizeCursor
	}
	cur := glfw.CreateStandardCursor(shape)
	w.cursors[c] = cur
	return cur
}

// Frame feeds pending input to the grid and repaints when needed. It
// returns true when a new frame was presented.
func (w *Window) Frame() bool {
	w.input.Feed(w.grid)
	if !w.dirty && !w.grid.Dirty() {
		return false
	}
	w.paint()
	w.win.SwapBuffers()
	return true
}

func (w *Window) paint() {
	w.dirty = false

	r, g, b, _ := w.grid.Palette().Background.RGBA()
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
	gl.ClearColor(float32(r)/255, float32(g)/255, float32(b)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := AcquireDrawList()
	defer ReleaseDrawList(dl)

	w.canvas.Begin(dl, w.width, w.height)
	w.grid.Draw(w.canvas)
	w.drawScrollbars()
	w.renderer.Render(dl)
}

func (w *Window) drawScrollbars() {
	pal := w.grid.Palette()
	gw, gh := w.grid.Viewport()

	track := matrix.Rect{X: gw, Y: 0, W: ScrollbarSize, H: gh}
	w.canvas.FillRect(track, pal.TitleBackground)
	if pos, size := w.bars[matrix.Vertical][0], w.bars[matrix.Vertical][1]; size < 1 {
		y := int(pos * float64(gh))
		h := max(int(size*float64(gh)), ScrollbarSize)
		w.canvas.FillRect(matrix.Rect{X: gw + 2, Y: y, W: ScrollbarSize - 4, H: h}, pal.GridLineColor)
	}

	track = matrix.Rect{X: 0, Y: gh, W: gw, H: ScrollbarSize}
	w.canvas.FillRect(track, pal.TitleBackground)
	if pos, size := w.bars[matrix.Horizontal][0], w.bars[matrix.Horizontal][1]; size < 1 {
		x := int(pos * float64(gw))
		width := max(int(size*float64(gw)), ScrollbarSize)
		w.canvas.FillRect(matrix.Rect{X: x, Y: gh + 2, W: width, H: ScrollbarSize - 4}, pal.GridLineColor)
	}
}

// Delete releases GL resources and cursors.
func (w *Window) Delete() {
	for _, cur := range w.cursors {
		cur.Destroy()
	}
	w.renderer.Delete()
}

var _ matrix.Platform = (*Window)(nil)

// glfwKeyToMatrixKey maps GLFW keys to grid keys. Space is left to the
// char callback.
func glfwKeyToMatrixKey(key glfw.Key) matrix.Key {
	switch key {
	case glfw.KeyTab:
		return matrix.KeyTab
	case glfw.KeyLeft:
		return matrix.KeyLeft
	case glfw.KeyRight:
		return matrix.KeyRight
	case glfw.KeyUp:
		return matrix.KeyUp
	case glfw.KeyDown:
		return matrix.KeyDown
	case glfw.KeyPageUp:
		return matrix.KeyPageUp
	case glfw.KeyPageDown:
		return matrix.KeyPageDown
	case glfw.KeyHome:
		return matrix.KeyHome
	case glfw.KeyEnd:
		return matrix.KeyEnd
	case glfw.KeyDelete:
		return matrix.KeyDelete
	case glfw.KeyBackspace:
		return matrix.KeyBackspace
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return matrix.KeyEnter
	case glfw.KeyEscape:
		return matrix.KeyEscape
	case glfw.KeyA:
		return matrix.KeyA
	case glfw.KeyZ:
		return matrix.KeyZ
	case glfw.KeyF2:
		return matrix.KeyF2
	case glfw.KeyF4:
		return matrix.KeyF4
	default:
		return matrix.KeyNone
	}
}

// glfwMouseButtonToMatrix maps GLFW mouse buttons to grid buttons.
func glfwMouseButtonToMatrix(button glfw.MouseButton) matrix.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return matrix.MouseButtonLeft
	case glfw.MouseButtonRight:
		return matrix.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return matrix.MouseButtonMiddle
	default:
		return -1
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
