package matrix

// Action is the answer an application callback gives to a proposed state
// transition.
type Action int

const (
	ActionDefault Action = iota // Proceed
	ActionIgnore                // Veto; the transition is abandoned
)

func (a Action) String() string {
	if a == ActionIgnore {
		return "ignore"
	}
	return "default"
}

// CellClick describes a mouse press or release on a cell. Row or Col is 0
// when the pointer is over the title band.
type CellClick struct {
	Row, Col int
	X, Y     int
	Button   MouseButton
	Double   bool
	Mods     Mods
}

// Callbacks connects a Grid to the embedding application. Every field is
// optional.
type Callbacks struct {
	// Value, when set, switches the grid to virtual mode: values are
	// pulled from the application and never stored in the grid.
	Value func(row, col int) (string, bool)
	// ValueEdit receives committed edits in virtual mode.
	ValueEdit func(row, col int, value string) Action
	// ValueChanged is called after an interactive edit changed a value.
	ValueChanged func(row, col int)
	// Validate may refuse the text of an edit session before it is
	// committed. The session then stays open.
	Validate func(row, col int, text string) Action

	// Leave is called before the focus leaves a cell, Enter after it
	// arrived on the new one. Either may veto the move.
	Leave func(row, col int) Action
	Enter func(row, col int) Action

	// CanMark is consulted before a cell, row or column is marked. A
	// false result keeps the unit unmarked. For rows col is 0, for
	// columns row is 0.
	CanMark     func(row, col int) bool
	MarkChanged func(row, col int, marked bool)

	Click   func(c CellClick) Action // ActionIgnore skips default handling
	Release func(c CellClick)

	// Resize accepts or refuses an interactive resize when the drag ends.
	Resize func(o Orientation, index, size int) Action

	// Drop returns the items of a list editor for the cell. ok false
	// selects the text editor.
	Drop func(row, col int) (items []string, ok bool)
	// Edition may refuse to open an editor on a cell.
	Edition func(row, col int) Action

	// Image names an image to draw in the cell, "" for none.
	Image func(row, col int) string
	// DrawCell lets the application paint a cell. Returning true skips
	// the default painting.
	DrawCell func(s Surface, row, col int, r Rect) bool
}

func (cb *Callbacks) leave(row, col int) bool {
	return cb.Leave == nil || cb.Leave(row, col) != ActionIgnore
}

func (cb *Callbacks) enter(row, col int) bool {
	return cb.Enter == nil || cb.Enter(row, col) != ActionIgnore
}

func (cb *Callbacks) canMark(row, col int) bool {
	return cb.CanMark == nil || cb.CanMark(row, col)
}

func (cb *Callbacks) markChanged(row, col int, on bool) {
	if cb.MarkChanged != nil {
		cb.MarkChanged(row, col, on)
	}
}
