package matrix

import "errors"

var (
	// ErrOutOfRange is returned when a row or column index is outside the grid.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrInvalidColor is returned by ParseColor for malformed color strings.
	ErrInvalidColor = errors.New("matrix: invalid color")

	// ErrInvalidAlignment is returned by ParseAlignment.
	ErrInvalidAlignment = errors.New("matrix: invalid alignment")

	// ErrInvalidAddress is returned by ParseAddress.
	ErrInvalidAddress = errors.New("matrix: invalid cell address")

	// ErrInvalidMarkString is returned by SetMarked when the description
	// doesn't match the mark mode or the grid size.
	ErrInvalidMarkString = errors.New("matrix: invalid marked description")

	// ErrVirtual is returned when storing a value in a store whose values
	// come from a callback.
	ErrVirtual = errors.New("matrix: values come from a callback")

	// ErrInvalidMode is returned when parsing an unknown mark mode or area.
	ErrInvalidMode = errors.New("matrix: invalid mark mode")
)
