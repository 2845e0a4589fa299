package matrix

// Option configures a Grid at construction.
type Option func(*options)

// options holds construction-time settings. Sizes are in pixels unless
// named otherwise.
type options struct {
	rows, cols       int
	visRows, visCols int // Viewport sizing hint, in lines
	width, height    int // Explicit viewport size; wins over the hint

	colWidth, rowHeight int
	titleWidth          int
	titleHeight         int
	charW, charH        int
	padding             int
	minSize             int
	resizeTolerance     int

	palette   Palette
	platform  Platform
	callbacks Callbacks

	markMode     MarkMode
	markArea     MarkArea
	markMultiple bool

	readOnly  bool
	resizable bool
	hidden    bool
}

func defaultOptions() options {
	return options{
		visRows:         3,
		visCols:         4,
		colWidth:        80,
		rowHeight:       20,
		titleWidth:      40,
		titleHeight:     20,
		charW:           7,
		charH:           13,
		padding:         2,
		minSize:         4,
		resizeTolerance: 4,
		palette:         DefaultPalette(),
		markArea:        MarkContinuous,
		resizable:       true,
	}
}

// applyOptions applies all options over the defaults.
func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithSize sets the number of data rows and columns.
func WithSize(rows, cols int) Option {
	return func(o *options) { o.rows, o.cols = max(rows, 0), max(cols, 0) }
}

// WithVisible sizes the viewport to show rows x cols default-sized lines
// next to the title band. Ignored when WithViewport is also given.
func WithVisible(rows, cols int) Option {
	return func(o *options) { o.visRows, o.visCols = max(rows, 0), max(cols, 0) }
}

// WithViewport sets the viewport size in pixels, title band included.
func WithViewport(width, height int) Option {
	return func(o *options) { o.width, o.height = max(width, 0), max(height, 0) }
}

// WithColumnWidth sets the default width of data columns.
func WithColumnWidth(px int) Option {
	return func(o *options) { o.colWidth = max(px, 0) }
}

// WithRowHeight sets the default height of data rows.
func WithRowHeight(px int) Option {
	return func(o *options) { o.rowHeight = max(px, 0) }
}

// WithTitleSize sets the row-title band width and the column-title band
// height.
func WithTitleSize(width, height int) Option {
	return func(o *options) { o.titleWidth, o.titleHeight = max(width, 0), max(height, 0) }
}

// WithCharSize sets the character cell used to convert natural sizes
// (characters and lines) to pixels.
func WithCharSize(w, h int) Option {
	return func(o *options) { o.charW, o.charH = max(w, 1), max(h, 1) }
}

// WithCellPadding sets the gap between a cell border and its text.
func WithCellPadding(px int) Option {
	return func(o *options) { o.padding = max(px, 0) }
}

// WithMinSize sets the smallest size an interactive resize can produce.
func WithMinSize(px int) Option {
	return func(o *options) { o.minSize = max(px, 0) }
}

// WithResizeTolerance sets how close to a title boundary a press must land
// to start a resize. 0 means the last pixel of the line only.
func WithResizeTolerance(px int) Option {
	return func(o *options) { o.resizeTolerance = max(px, 0) }
}

// WithPalette sets the grid colors.
func WithPalette(p Palette) Option {
	return func(o *options) { o.palette = p }
}

// WithPlatform sets the window services the grid reports to.
func WithPlatform(p Platform) Option {
	return func(o *options) { o.platform = p }
}

// WithCallbacks sets the application callbacks.
func WithCallbacks(cb Callbacks) Option {
	return func(o *options) { o.callbacks = cb }
}

// WithMarkMode sets the selection policy.
func WithMarkMode(mode MarkMode, area MarkArea, multiple bool) Option {
	return func(o *options) { o.markMode, o.markArea, o.markMultiple = mode, area, multiple }
}

// WithReadOnly disables editing.
func WithReadOnly(ro bool) Option {
	return func(o *options) { o.readOnly = ro }
}

// WithResizable enables interactive resizing from the title band.
func WithResizable(r bool) Option {
	return func(o *options) { o.resizable = r }
}

// WithHidden creates the grid invisible.
func WithHidden() Option {
	return func(o *options) { o.hidden = true }
}
