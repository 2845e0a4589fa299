/*
Package matrix implements a spreadsheet-like grid control: a virtualized
two-dimensional cell store with title bands, pixel scrolling, marking, an
in-place editor and interactive column/row resizing.

# Overview

A Grid is retained-mode. The application sets values, styles and
callbacks; the platform feeds discrete input events (HandleKey,
HandleButton, HandleMotion, HandleWheel) or a polled InputState (Feed),
and paints through a Surface when the grid asks for it. The package draws
nothing on its own and owns no window: backend/opengl and backend/term
provide the Surface and Platform for GLFW and terminal programs.

Row 0 holds the column titles and column 0 the row titles. Data cells are
addressed 1-based:

	g := matrix.New(
	    matrix.WithSize(100, 6),
	    matrix.WithMarkMode(matrix.MarkCell, matrix.MarkContinuous, true),
	    matrix.WithPlatform(win),
	)
	g.SetColumnTitles("Name", "Qty", "Price")
	g.SetValue(1, 1, "bolts")

	// In the paint handler
	g.Flush(surface)

# Redraw

Mutations only mark the grid dirty. The platform's Invalidate is called
once per mutation batch; every Handle method is a batch, and BeginUpdate /
EndUpdate group programmatic changes:

	g.Update(func() {
	    for i := 1; i <= 1000; i++ {
	        g.SetValue(i, 1, strconv.Itoa(i))
	    }
	})

# Keyboard Reference

Navigation (no editor open):

	Arrows           Move the focus one cell
	Shift+Arrows     Move and extend the mark block
	PgUp / PgDn      Move by the number of fully visible rows
	Home             Start of the row; pressed again, first cell of the grid
	End              End of the row; pressed again, last cell of the grid
	Ctrl+Home / End  First / last cell of the grid
	Tab / Shift+Tab  Next / previous cell, row by row; unhandled at the ends
	Ctrl+A           Mark everything (multiple mark modes only)
	Delete           Clear the marked cells, or the focus cell

Editing:

	Enter, F2, Space Open the editor on the focus cell
	Printable key    Open the editor with that character as the text
	Backspace        Open the editor empty
	Alt+Down, F4     Open and expand the list editor
	Enter            Commit and stay on the cell
	Escape           Discard the edit
	Up / Down / Tab  Commit and move
	Left / Right     Move the caret; commit and move at the text boundary
	Home / End       Move the caret; commit and move at the text boundary
	Ctrl+Z           Undo (Ctrl+Shift+Z redo)

# Mouse Reference

	Click            Focus the cell, start marking
	Shift+Click      Extend the mark block from the anchor
	Ctrl+Click       Toggle a mark (discontinuous area)
	Drag             Mark the block from the anchor
	Double click     Open the editor
	Title boundary   Drag to resize the column or row
	Wheel            Scroll three rows; with Shift, three columns
*/
package matrix
