package matrix

import "sort"

// allocExtra is the over-allocation applied on top of the logical count
// when an Axis or CellStore grows, so that repeated single-line inserts
// don't reallocate every time.
const allocExtra = 5

// growCap returns the capacity to use when need exceeds cur.
func growCap(cur, need int) int {
	if need <= cur {
		return cur
	}
	n := cur * 2
	if n < need+allocExtra {
		n = need + allocExtra
	}
	return n
}

// Orientation selects one of the two grid dimensions.
type Orientation uint8

const (
	Horizontal Orientation = iota // Columns; x coordinates
	Vertical                      // Rows; y coordinates
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type lineFlags uint8

const (
	lineMarked lineFlags = 1 << iota
)

// Axis holds per-line data for one dimension of the grid: a line is a row
// on the vertical axis and a column on the horizontal one. Index 0 is the
// title line; data lines are 1..Count().
//
// Slices are allocated with spare capacity; only the first num entries
// are live.
type Axis struct {
	sizes  []int
	styles []Style
	flags  []lineFlags
	num    int // logical count including the title line

	// starts[i] is offset(i) for 1 <= i <= num, rebuilt after any size
	// change.
	starts []int
	stale  bool

	defaultSize int
}

func newAxis(count, titleSize, defaultSize int) *Axis {
	count = max(count, 0)
	capacity := count + 1 + allocExtra
	a := &Axis{
		sizes:       make([]int, capacity),
		styles:      make([]Style, capacity),
		flags:       make([]lineFlags, capacity),
		num:         count + 1,
		stale:       true,
		defaultSize: defaultSize,
	}
	a.sizes[0] = titleSize
	for i := 1; i < a.num; i++ {
		a.sizes[i] = defaultSize
	}
	return a
}

// Count returns the number of data lines (the title line is not counted).
func (a *Axis) Count() int { return a.num - 1 }

// Cap returns the allocated capacity, title line included.
func (a *Axis) Cap() int { return len(a.sizes) }

func (a *Axis) valid(i int) bool { return i >= 0 && i < a.num }

// Size returns the pixel size of line i, or 0 when out of range.
func (a *Axis) Size(i int) int {
	if !a.valid(i) {
		return 0
	}
	return a.sizes[i]
}

func (a *Axis) setSize(i, px int) bool {
	if !a.valid(i) || px < 0 {
		return false
	}
	a.sizes[i] = px
	a.stale = true
	return true
}

func (a *Axis) marked(i int) bool {
	return a.valid(i) && a.flags[i]&lineMarked != 0
}

func (a *Axis) setMarked(i int, on bool) {
	if !a.valid(i) {
		return
	}
	if on {
		a.flags[i] |= lineMarked
	} else {
		a.flags[i] &^= lineMarked
	}
}

// ensure grows the backing slices so that n lines fit.
func (a *Axis) ensure(n int) {
	c := growCap(len(a.sizes), n)
	if c == len(a.sizes) {
		return
	}
	logger.Debug("axis grow", "from", len(a.sizes), "to", c)

	sizes := make([]int, c)
	styles := make([]Style, c)
	flags := make([]lineFlags, c)
	copy(sizes, a.sizes[:a.num])
	copy(styles, a.styles[:a.num])
	copy(flags, a.flags[:a.num])
	a.sizes, a.styles, a.flags = sizes, styles, flags
}

// insert opens n default lines before index at (1 <= at <= num).
func (a *Axis) insert(at, n int) {
	a.ensure(a.num + n)
	copy(a.sizes[at+n:a.num+n], a.sizes[at:a.num])
	copy(a.styles[at+n:a.num+n], a.styles[at:a.num])
	copy(a.flags[at+n:a.num+n], a.flags[at:a.num])
	for i := at; i < at+n; i++ {
		a.sizes[i] = a.defaultSize
		a.styles[i] = Style{}
		a.flags[i] = 0
	}
	a.num += n
	a.stale = true
}

// remove drops n lines starting at index at. The caller clamps.
func (a *Axis) remove(at, n int) {
	copy(a.sizes[at:], a.sizes[at+n:a.num])
	copy(a.styles[at:], a.styles[at+n:a.num])
	copy(a.flags[at:], a.flags[at+n:a.num])
	for i := a.num - n; i < a.num; i++ {
		a.sizes[i] = 0
		a.styles[i] = Style{}
		a.flags[i] = 0
	}
	a.num -= n
	a.stale = true
}

// prefix returns the cached line starts, rebuilding them when stale.
func (a *Axis) prefix() []int {
	if !a.stale {
		return a.starts
	}
	if cap(a.starts) < a.num+1 {
		a.starts = make([]int, a.num+1, len(a.sizes)+1)
	}
	a.starts = a.starts[:a.num+1]
	a.starts[0], a.starts[1] = 0, 0
	for i := 2; i <= a.num; i++ {
		a.starts[i] = a.starts[i-1] + a.sizes[i-1]
	}
	a.stale = false
	return a.starts
}

// offset returns the content-space position of data line i: the sum of the
// sizes of lines 1..i-1. The title line is not part of content space.
func (a *Axis) offset(i int) int {
	if i <= 1 {
		return 0
	}
	return a.prefix()[min(i, a.num)]
}

// total returns the content extent: the sum of all data line sizes.
func (a *Axis) total() int {
	return a.offset(a.num)
}

// firstEndingAfter returns the first data line whose end lies past px,
// or num when none does.
func (a *Axis) firstEndingAfter(px int) int {
	starts := a.prefix()
	return 1 + sort.Search(a.num-1, func(k int) bool { return starts[k+2] > px })
}

// indexAt returns the data line containing content position px.
func (a *Axis) indexAt(px int) (int, bool) {
	if px < 0 {
		return 0, false
	}
	if i := a.firstEndingAfter(px); i < a.num {
		return i, true
	}
	return 0, false
}

// visible returns the inclusive range of data lines that intersect the
// content window [scroll, scroll+view). last < first when none do.
func (a *Axis) visible(scroll, view int) (first, last int) {
	if view <= 0 || a.num <= 1 {
		return 1, 0
	}
	first = a.firstEndingAfter(scroll)
	if first >= a.num {
		return 1, 0
	}
	starts := a.prefix()
	limit := scroll + view
	last = sort.Search(a.num-1, func(k int) bool { return starts[k+1] >= limit })
	if last < first {
		return 1, 0
	}
	return first, last
}
