// Command matrixgl shows an editable order sheet in an OpenGL window.
//
// Prerequisites:
//
//	devbox shell              # provides Go + OpenGL/X11 headers
//	go run ./cmd/matrixgl     # run with the built-in sheet
//	go run ./cmd/matrixgl --config sheet.toml
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/matrix"
	"github.com/go-theft-auto/matrix/backend/opengl"
	"github.com/go-theft-auto/matrix/internal/demo"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "matrix"

	blinkInterval = 0.5 // seconds
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

type flags struct {
	config  string
	rows    int
	cols    int
	dark    bool
	verbose bool
}

func main() {
	var f flags
	cmd := &cobra.Command{
		Use:          "matrixgl",
		Short:        "Edit a grid of cells in an OpenGL window",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML grid configuration")
	cmd.Flags().IntVar(&f.rows, "rows", 0, "number of data rows (overrides config)")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "number of data columns (overrides config)")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "use the dark palette")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log debug output")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(f flags) (matrix.Config, error) {
	cfg := matrix.DefaultConfig()
	cfg.Mark = matrix.MarkConfig{Mode: "cell", Area: "continuous", Multiple: true}
	if f.config != "" {
		var err error
		if cfg, err = matrix.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	if f.rows > 0 {
		cfg.Rows = f.rows
	}
	if f.cols > 0 {
		cfg.Columns = f.cols
	}
	if f.dark {
		cfg.Colors.Theme = "dark"
	}
	return cfg, nil
}

func run(f flags) error {
	matrix.SetVerbose(f.verbose)

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	grid, err := matrix.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if len(cfg.ColumnTitles) == 0 {
		demo.Populate(grid)
	}
	grid.SetCallbacks(demo.Callbacks(grid))

	win, err := opengl.NewWindow(window, grid)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer win.Delete()

	lastBlink := glfw.GetTime()
	for !window.ShouldClose() {
		glfw.WaitEventsTimeout(blinkInterval / 4)
		if now := glfw.GetTime(); now-lastBlink >= blinkInterval {
			grid.BlinkFocus()
			lastBlink = now
		}
		win.Frame()
	}

	return nil
}
