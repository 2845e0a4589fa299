package matrix

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key. Printable input arrives as KeyChar with
// the character in KeyEvent.Rune.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyZ
	KeyF2
	KeyF4
	KeyChar
	KeyCount
)

// Mods is a bit set of keyboard modifiers held during an event.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
)

// Has reports whether all bits of m2 are set.
func (m Mods) Has(m2 Mods) bool { return m&m2 == m2 }

// KeyEvent is a single key press delivered by the platform.
type KeyEvent struct {
	Key  Key
	Rune rune // Only meaningful for KeyChar
	Mods Mods
}

// ButtonEvent is a mouse button press or release.
type ButtonEvent struct {
	X, Y    int
	Button  MouseButton
	Pressed bool
	Double  bool // Second press of a double click
	Mods    Mods
}

// MotionEvent is a pointer move.
type MotionEvent struct {
	X, Y int
	Mods Mods
}

// WheelEvent is a scroll-wheel step. Positive DY scrolls towards the top.
type WheelEvent struct {
	X, Y   int
	DX, DY float64
	Mods   Mods
}

// Key repeat timing constants
const (
	KeyRepeatDelay    float32 = 0.4  // Initial delay before repeat starts (seconds)
	KeyRepeatInterval float32 = 0.03 // Repeat interval once repeating (seconds)
)

// InputState holds polled input for one frame. Backends that poll rather
// than deliver events fill it in and hand it to Grid.Feed, which turns it
// into discrete events.
type InputState struct {
	MouseX, MouseY int

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool // True on the frame button was pressed
	mouseUp      [MouseButtonCount]bool // True on the frame button was released
	mouseDouble  [MouseButtonCount]bool // True when the press completes a double click

	MouseWheelX float32
	MouseWheelY float32

	keyDown     [KeyCount]bool
	keyPressed  [KeyCount]bool
	keyHoldTime [KeyCount]float32

	// Text input (Unicode characters typed this frame)
	InputChars []rune

	ModCtrl  bool
	ModShift bool
	ModAlt   bool

	lastMouseX, lastMouseY int
	mouseMoved             bool
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{
		InputChars: make([]rune, 0, 16),
	}
}

// Reset clears per-frame input state.
// Call this at the start of each frame before collecting input.
func (s *InputState) Reset() {
	for i := range s.mouseClicked {
		s.mouseClicked[i] = false
		s.mouseUp[i] = false
		s.mouseDouble[i] = false
	}
	for i := range s.keyPressed {
		s.keyPressed[i] = false
	}
	s.InputChars = s.InputChars[:0]
	s.MouseWheelX = 0
	s.MouseWheelY = 0
	s.mouseMoved = false
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y int) {
	if x != s.MouseX || y != s.MouseY {
		s.mouseMoved = true
	}
	s.MouseX = x
	s.MouseY = y
}

// SetMouseButton sets mouse button state.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}

	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down

	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetMouseDoubleClick flags the current press of button as a double click.
func (s *InputState) SetMouseDoubleClick(button MouseButton) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	s.mouseDouble[button] = true
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}

	wasDown := s.keyDown[key]
	s.keyDown[key] = down

	if down && !wasDown {
		s.keyPressed[key] = true
	}
	s.keyHoldTime[key] = 0
}

// RepeatKey records an auto-repeat reported by the platform. The key
// fires again this frame without waiting for the hold timer.
func (s *InputState) RepeatKey(key Key) {
	if key < 0 || key >= KeyCount || !s.keyDown[key] {
		return
	}
	s.keyPressed[key] = true
}

// UpdateKeyRepeat updates key hold times for repeat detection.
// Call this once per frame with the frame's delta time.
func (s *InputState) UpdateKeyRepeat(dt float32) {
	for key := Key(0); key < KeyCount; key++ {
		if s.keyDown[key] {
			s.keyHoldTime[key] += dt
		}
	}
}

// SetMouseWheel sets the mouse wheel delta.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX = x
	s.MouseWheelY = y
}

// AddInputChar adds a typed character.
func (s *InputState) AddInputChar(ch rune) {
	s.InputChars = append(s.InputChars, ch)
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if a mouse button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// MouseReleased returns true if a mouse button was just released.
func (s *InputState) MouseReleased(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseUp[button]
}

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyRepeated returns true on the initial press, then after KeyRepeatDelay,
// then every KeyRepeatInterval while the key is held.
func (s *InputState) KeyRepeated(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	if s.keyPressed[key] {
		return true
	}
	if !s.keyDown[key] {
		return false
	}

	holdTime := s.keyHoldTime[key]
	if holdTime < KeyRepeatDelay {
		return false
	}

	// Approximate: assumes ~60fps for the previous frame.
	timeSinceDelay := holdTime - KeyRepeatDelay
	repeatCount := int(timeSinceDelay / KeyRepeatInterval)
	prevRepeatCount := int((timeSinceDelay - 0.016) / KeyRepeatInterval)
	return repeatCount > prevRepeatCount
}

// Mods returns the modifier set currently held.
func (s *InputState) Mods() Mods {
	var m Mods
	if s.ModShift {
		m |= ModShift
	}
	if s.ModCtrl {
		m |= ModCtrl
	}
	if s.ModAlt {
		m |= ModAlt
	}
	return m
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	switch k {
	case KeyNone:
		return "--"
	case KeyTab:
		return "Tab"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyPageUp:
		return "PgUp"
	case KeyPageDown:
		return "PgDn"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyDelete:
		return "Del"
	case KeyBackspace:
		return "Backspace"
	case KeySpace:
		return "Space"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Esc"
	case KeyA:
		return "A"
	case KeyZ:
		return "Z"
	case KeyF2:
		return "F2"
	case KeyF4:
		return "F4"
	case KeyChar:
		return "Char"
	}
	return "?"
}

// Feed converts one frame of polled input into discrete grid events.
// Key presses are delivered before typed characters, and button presses
// before motion so a click lands on the cell under the pointer.
func (g *Grid) Feed(in *InputState) {
	if in == nil {
		return
	}
	mods := in.Mods()

	g.BeginUpdate()
	defer g.EndUpdate()

	for b := MouseButton(0); b < MouseButtonCount; b++ {
		if in.MouseClicked(b) {
			g.HandleButton(ButtonEvent{X: in.MouseX, Y: in.MouseY, Button: b, Pressed: true, Double: in.mouseDouble[b], Mods: mods})
		}
	}
	if in.mouseMoved || in.MouseX != in.lastMouseX || in.MouseY != in.lastMouseY {
		g.HandleMotion(MotionEvent{X: in.MouseX, Y: in.MouseY, Mods: mods})
		in.lastMouseX, in.lastMouseY = in.MouseX, in.MouseY
	}
	for b := MouseButton(0); b < MouseButtonCount; b++ {
		if in.MouseReleased(b) {
			g.HandleButton(ButtonEvent{X: in.MouseX, Y: in.MouseY, Button: b, Mods: mods})
		}
	}
	if in.MouseWheelX != 0 || in.MouseWheelY != 0 {
		g.HandleWheel(WheelEvent{X: in.MouseX, Y: in.MouseY, DX: float64(in.MouseWheelX), DY: float64(in.MouseWheelY), Mods: mods})
	}

	for key := KeyTab; key < KeyChar; key++ {
		// Space also arrives as a typed character.
		if key == KeySpace {
			continue
		}
		if in.KeyRepeated(key) {
			g.HandleKey(KeyEvent{Key: key, Mods: mods})
		}
	}
	for _, r := range in.InputChars {
		g.HandleKey(KeyEvent{Key: KeyChar, Rune: r, Mods: mods})
	}
}
