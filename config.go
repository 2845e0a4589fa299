package matrix

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the file form of a grid's construction settings.
//
//	rows = 20
//	columns = 6
//	column_titles = ["Name", "Qty"]
//
//	[mark]
//	mode = "cell"
//	area = "continuous"
//	multiple = true
//
//	[colors]
//	theme = "dark"
//	title_background = "#003c5a"
type Config struct {
	Rows           int      `toml:"rows"`
	Columns        int      `toml:"columns"`
	VisibleRows    int      `toml:"visible_rows"`
	VisibleColumns int      `toml:"visible_columns"`
	ColumnWidth    int      `toml:"column_width"`
	RowHeight      int      `toml:"row_height"`
	TitleWidth     int      `toml:"title_width"`
	TitleHeight    int      `toml:"title_height"`
	ReadOnly       bool     `toml:"read_only"`
	Resizable      bool     `toml:"resizable"`
	ColumnTitles   []string `toml:"column_titles"`

	Mark   MarkConfig  `toml:"mark"`
	Colors ColorConfig `toml:"colors"`
}

// MarkConfig is the [mark] table.
type MarkConfig struct {
	Mode     string `toml:"mode"`
	Area     string `toml:"area"`
	Multiple bool   `toml:"multiple"`
}

// ColorConfig is the [colors] table. Colors use the ParseColor forms;
// empty entries keep the theme color.
type ColorConfig struct {
	Theme           string `toml:"theme"` // "light" (default) or "dark"
	Foreground      string `toml:"foreground"`
	Background      string `toml:"background"`
	TitleForeground string `toml:"title_foreground"`
	TitleBackground string `toml:"title_background"`
	GridLine        string `toml:"grid_line"`
	Mark            string `toml:"mark"`
	Focus           string `toml:"focus"`
}

// DefaultConfig returns the settings New uses without options.
func DefaultConfig() Config {
	o := defaultOptions()
	return Config{
		VisibleRows:    o.visRows,
		VisibleColumns: o.visCols,
		ColumnWidth:    o.colWidth,
		RowHeight:      o.rowHeight,
		TitleWidth:     o.titleWidth,
		TitleHeight:    o.titleHeight,
		Resizable:      o.resizable,
		Mark:           MarkConfig{Mode: "none", Area: "continuous"},
	}
}

// ParseConfig decodes TOML over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	return DefaultConfig().Decode(data)
}

// LoadConfig reads and decodes a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return DefaultConfig().Load(path)
}

// Decode returns c with the keys present in data replaced.
func (c Config) Decode(data []byte) (Config, error) {
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads a TOML file and decodes it over c.
func (c Config) Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := c.Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for name, v := range map[string]int{
		"rows": c.Rows, "columns": c.Columns,
		"visible_rows": c.VisibleRows, "visible_columns": c.VisibleColumns,
		"column_width": c.ColumnWidth, "row_height": c.RowHeight,
		"title_width": c.TitleWidth, "title_height": c.TitleHeight,
	} {
		if v < 0 {
			return fmt.Errorf("config %s: %w: %d", name, ErrOutOfRange, v)
		}
	}
	return nil
}

// Palette resolves the [colors] table.
func (c ColorConfig) Palette() (Palette, error) {
	p := DefaultPalette()
	switch c.Theme {
	case "", "light":
	case "dark":
		p = DarkPalette()
	default:
		return p, fmt.Errorf("theme %q: %w", c.Theme, ErrInvalidColor)
	}
	for _, f := range []struct {
		value string
		dst   *Color
	}{
		{c.Foreground, &p.Foreground},
		{c.Background, &p.Background},
		{c.TitleForeground, &p.TitleForeground},
		{c.TitleBackground, &p.TitleBackground},
		{c.GridLine, &p.GridLineColor},
		{c.Mark, &p.MarkColor},
		{c.Focus, &p.FocusColor},
	} {
		if f.value == "" {
			continue
		}
		col, err := ParseColor(f.value)
		if err != nil {
			return p, err
		}
		*f.dst = col
	}
	return p, nil
}

// Options converts the config into construction options.
func (c Config) Options() ([]Option, error) {
	mode, err := ParseMarkMode(c.Mark.Mode)
	if err != nil {
		return nil, err
	}
	area, err := ParseMarkArea(c.Mark.Area)
	if err != nil {
		return nil, err
	}
	pal, err := c.Colors.Palette()
	if err != nil {
		return nil, err
	}
	return []Option{
		WithSize(c.Rows, c.Columns),
		WithVisible(c.VisibleRows, c.VisibleColumns),
		WithColumnWidth(c.ColumnWidth),
		WithRowHeight(c.RowHeight),
		WithTitleSize(c.TitleWidth, c.TitleHeight),
		WithReadOnly(c.ReadOnly),
		WithResizable(c.Resizable),
		WithMarkMode(mode, area, c.Mark.Multiple),
		WithPalette(pal),
	}, nil
}

// NewFromConfig creates a grid from a config. extra options are applied
// after the config ones.
func NewFromConfig(c Config, extra ...Option) (*Grid, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	g := New(append(opts, extra...)...)
	g.SetColumnTitles(c.ColumnTitles...)
	return g, nil
}
