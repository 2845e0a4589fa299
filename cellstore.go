package matrix

import "fmt"

type cellFlags uint8

const (
	cellSet cellFlags = 1 << iota // value is present (distinguishes "" from unset)
	cellMarked
)

// cell is one cell record. Values are owned by the record and dropped with it.
type cell struct {
	value string
	style Style
	flags cellFlags
}

// CellStore owns the two-dimensional array of cell records. Row 0 holds the
// column titles and column 0 the row titles.
//
// Rows are separate slices so that inserting or deleting rows only moves
// row headers, never the cells of unaffected rows. Both dimensions keep
// spare capacity; the logical counts are tracked apart from it.
//
// Out-of-range access never touches memory: Get reports "no value" and the
// mutators return ErrOutOfRange.
//
// A sparse store, used by virtual grids, holds no values and no arrays:
// only the cells carrying a style or a mark have a record.
type CellStore struct {
	rows    [][]cell
	sparse  map[Address]cell
	numRows int // logical, title row included
	numCols int // logical, title column included
	colCap  int
}

// NewCellStore creates a store for rows x cols data cells plus titles.
func NewCellStore(rows, cols int) *CellStore {
	rows, cols = max(rows, 0), max(cols, 0)
	s := &CellStore{
		numRows: rows + 1,
		numCols: cols + 1,
		colCap:  cols + 1 + allocExtra,
	}
	s.rows = make([][]cell, rows+1+allocExtra)
	for i := 0; i < s.numRows; i++ {
		s.rows[i] = make([]cell, s.colCap)
	}
	return s
}

// NewSparseCellStore creates a store for rows x cols data cells whose
// values live outside the grid.
func NewSparseCellStore(rows, cols int) *CellStore {
	rows, cols = max(rows, 0), max(cols, 0)
	return &CellStore{
		sparse:  make(map[Address]cell),
		numRows: rows + 1,
		numCols: cols + 1,
	}
}

// Sparse reports whether the store keeps records only for styled or
// marked cells.
func (s *CellStore) Sparse() bool { return s.sparse != nil }

// Records returns the number of cell records allocated.
func (s *CellStore) Records() int {
	if s.sparse != nil {
		return len(s.sparse)
	}
	n := 0
	for _, row := range s.rows {
		n += len(row)
	}
	return n
}

// Rows returns the number of data rows.
func (s *CellStore) Rows() int { return s.numRows - 1 }

// Cols returns the number of data columns.
func (s *CellStore) Cols() int { return s.numCols - 1 }

// RowCap returns the allocated row capacity, title row included.
func (s *CellStore) RowCap() int { return len(s.rows) }

// ColCap returns the allocated column capacity, title column included.
func (s *CellStore) ColCap() int { return s.colCap }

func (s *CellStore) valid(row, col int) bool {
	return row >= 0 && row < s.numRows && col >= 0 && col < s.numCols
}

func (s *CellStore) at(row, col int) *cell {
	if !s.valid(row, col) || s.sparse != nil {
		return nil
	}
	return &s.rows[row][col]
}

// record returns a copy of a cell's record in either mode.
func (s *CellStore) record(row, col int) cell {
	if s.sparse != nil {
		return s.sparse[Address{Row: row, Col: col}]
	}
	if c := s.at(row, col); c != nil {
		return *c
	}
	return cell{}
}

// put replaces a cell's record. Sparse stores drop empty records.
func (s *CellStore) put(row, col int, c cell) error {
	if !s.valid(row, col) {
		return ErrOutOfRange
	}
	if s.sparse == nil {
		s.rows[row][col] = c
		return nil
	}
	a := Address{Row: row, Col: col}
	if c == (cell{}) {
		delete(s.sparse, a)
	} else {
		s.sparse[a] = c
	}
	return nil
}

// Get returns the value at (row, col). ok is false when the cell is unset
// or the address is out of range.
func (s *CellStore) Get(row, col int) (value string, ok bool) {
	c := s.at(row, col)
	if c == nil || c.flags&cellSet == 0 {
		return "", false
	}
	return c.value, true
}

// Set stores value at (row, col). The empty string is a value, distinct
// from unset.
func (s *CellStore) Set(row, col int, value string) error {
	if s.sparse != nil {
		return fmt.Errorf("set %d:%d: %w", row, col, ErrVirtual)
	}
	c := s.at(row, col)
	if c == nil {
		return fmt.Errorf("set %d:%d: %w", row, col, ErrOutOfRange)
	}
	c.value = value
	c.flags |= cellSet
	return nil
}

// Unset clears the value at (row, col) back to the unset state.
func (s *CellStore) Unset(row, col int) error {
	if s.sparse != nil {
		return fmt.Errorf("unset %d:%d: %w", row, col, ErrVirtual)
	}
	c := s.at(row, col)
	if c == nil {
		return fmt.Errorf("unset %d:%d: %w", row, col, ErrOutOfRange)
	}
	c.value = ""
	c.flags &^= cellSet
	return nil
}

func (s *CellStore) style(row, col int) Style {
	return s.record(row, col).style
}

func (s *CellStore) setStyle(row, col int, st Style) error {
	c := s.record(row, col)
	c.style = st
	if err := s.put(row, col, c); err != nil {
		return fmt.Errorf("style %d:%d: %w", row, col, err)
	}
	return nil
}

func (s *CellStore) marked(row, col int) bool {
	return s.record(row, col).flags&cellMarked != 0
}

func (s *CellStore) setMarked(row, col int, on bool) {
	c := s.record(row, col)
	if on {
		c.flags |= cellMarked
	} else {
		c.flags &^= cellMarked
	}
	_ = s.put(row, col, c)
}

// withMode copies the store into the dense or sparse layout. Styles and
// marks carry over; values don't, since a virtual grid stores none.
func (s *CellStore) withMode(sparse bool) *CellStore {
	var n *CellStore
	if sparse {
		n = NewSparseCellStore(s.Rows(), s.Cols())
	} else {
		n = NewCellStore(s.Rows(), s.Cols())
	}
	keep := func(row, col int, c cell) {
		c.value, c.flags = "", c.flags&cellMarked
		_ = n.put(row, col, c)
	}
	if s.sparse != nil {
		for a, c := range s.sparse {
			keep(a.Row, a.Col, c)
		}
		return n
	}
	for row := 0; row < s.numRows; row++ {
		for col := 0; col < s.numCols; col++ {
			keep(row, col, s.rows[row][col])
		}
	}
	return n
}

// remap moves sparse records. Records for which f reports false are
// dropped.
func (s *CellStore) remap(f func(a Address) (Address, bool)) {
	m := make(map[Address]cell, len(s.sparse))
	for a, c := range s.sparse {
		if b, ok := f(a); ok {
			m[b] = c
		}
	}
	s.sparse = m
}

// clampInsert normalizes an insert position for a dimension with num
// logical lines: new lines go before at, and at == num appends.
func clampInsert(at, num int) int {
	return clamp(at, 1, num)
}

// clampDelete normalizes a delete range. ok is false when nothing remains
// to delete.
func clampDelete(at, count, num int) (int, int, bool) {
	if at < 1 || at >= num || count <= 0 {
		return at, 0, false
	}
	count = min(count, num-at)
	return at, count, true
}

// InsertRows inserts count unset rows before row at. at is clamped to
// [1, Rows()+1]; count <= 0 is a no-op.
func (s *CellStore) InsertRows(at, count int) error {
	if count <= 0 {
		return nil
	}
	at = clampInsert(at, s.numRows)
	need := s.numRows + count
	if s.sparse != nil {
		s.remap(func(a Address) (Address, bool) {
			if a.Row >= at {
				a.Row += count
			}
			return a, true
		})
		s.numRows = need
		return nil
	}
	if c := growCap(len(s.rows), need); c != len(s.rows) {
		logger.Debug("cellstore grow rows", "from", len(s.rows), "to", c)
		rows := make([][]cell, c)
		copy(rows, s.rows[:s.numRows])
		s.rows = rows
	}
	copy(s.rows[at+count:need], s.rows[at:s.numRows])
	for i := at; i < at+count; i++ {
		s.rows[i] = make([]cell, s.colCap)
	}
	s.numRows = need
	return nil
}

// DeleteRows removes count rows starting at row at, releasing their cells.
// count is clamped to the rows that exist.
func (s *CellStore) DeleteRows(at, count int) error {
	at, count, ok := clampDelete(at, count, s.numRows)
	if !ok {
		return fmt.Errorf("delete rows %d+%d: %w", at, count, ErrOutOfRange)
	}
	if s.sparse != nil {
		s.remap(func(a Address) (Address, bool) {
			switch {
			case a.Row >= at+count:
				a.Row -= count
			case a.Row >= at:
				return a, false
			}
			return a, true
		})
		s.numRows -= count
		return nil
	}
	copy(s.rows[at:], s.rows[at+count:s.numRows])
	for i := s.numRows - count; i < s.numRows; i++ {
		s.rows[i] = nil
	}
	s.numRows -= count
	return nil
}

// InsertColumns inserts count unset columns before column at. at is
// clamped to [1, Cols()+1]; count <= 0 is a no-op.
func (s *CellStore) InsertColumns(at, count int) error {
	if count <= 0 {
		return nil
	}
	at = clampInsert(at, s.numCols)
	need := s.numCols + count
	if s.sparse != nil {
		s.remap(func(a Address) (Address, bool) {
			if a.Col >= at {
				a.Col += count
			}
			return a, true
		})
		s.numCols = need
		return nil
	}
	if c := growCap(s.colCap, need); c != s.colCap {
		logger.Debug("cellstore grow columns", "from", s.colCap, "to", c)
		for i := 0; i < s.numRows; i++ {
			row := make([]cell, c)
			copy(row, s.rows[i][:s.numCols])
			s.rows[i] = row
		}
		s.colCap = c
	}
	for i := 0; i < s.numRows; i++ {
		row := s.rows[i]
		copy(row[at+count:need], row[at:s.numCols])
		for j := at; j < at+count; j++ {
			row[j] = cell{}
		}
	}
	s.numCols = need
	return nil
}

// DeleteColumns removes count columns starting at column at. count is
// clamped to the columns that exist.
func (s *CellStore) DeleteColumns(at, count int) error {
	at, count, ok := clampDelete(at, count, s.numCols)
	if !ok {
		return fmt.Errorf("delete columns %d+%d: %w", at, count, ErrOutOfRange)
	}
	if s.sparse != nil {
		s.remap(func(a Address) (Address, bool) {
			switch {
			case a.Col >= at+count:
				a.Col -= count
			case a.Col >= at:
				return a, false
			}
			return a, true
		})
		s.numCols -= count
		return nil
	}
	for i := 0; i < s.numRows; i++ {
		row := s.rows[i]
		copy(row[at:], row[at+count:s.numCols])
		for j := s.numCols - count; j < s.numCols; j++ {
			row[j] = cell{}
		}
	}
	s.numCols -= count
	return nil
}
