// Example demonstrates a minimal OpenGL window showing a large grid whose
// values are computed on demand.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The example creates a GLFW window, attaches a grid to it and renders a
// 10000x10000 multiplication table whose values are never stored.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/matrix"
	"github.com/go-theft-auto/matrix/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "matrix example"

	tableSize = 10000
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize GLFW.
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

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	// Values come from the callback; nothing is stored in the grid.
	grid := matrix.New(
		matrix.WithSize(tableSize, tableSize),
		matrix.WithColumnWidth(60),
		matrix.WithReadOnly(true),
		matrix.WithCallbacks(matrix.Callbacks{
			Value: func(row, col int) (string, bool) {
				switch {
				case row == 0 && col == 0:
					return "x", true
				case row == 0:
					return strconv.Itoa(col), true
				case col == 0:
					return strconv.Itoa(row), true
				}
				return strconv.Itoa(row * col), true
			},
		}),
	)

	win, err := opengl.NewWindow(window, grid)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer win.Delete()

	// Main loop.
	for !window.ShouldClose() {
		glfw.WaitEvents()
		win.Frame()
	}

	return nil
}
