// Command gen renders the sample sheet in a few interaction states,
// captures framebuffer pixels, and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/matrix"
	"github.com/go-theft-auto/matrix/backend/opengl"
	"github.com/go-theft-auto/matrix/internal/demo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single grid screenshot to capture.
type screenshot struct {
	name   string             // filename without extension
	width  int                // viewport width
	height int                // viewport height
	setup  func(*matrix.Grid) // puts the grid in the state to show
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only the projection changes; the hidden window stays at 800x600,
	// larger than every screenshot.
	renderer.Resize(s.width, s.height)

	// Fresh grid per screenshot to avoid state leaking between captures.
	grid := matrix.New(matrix.WithSize(12, 5))
	demo.Populate(grid)
	grid.SetCallbacks(demo.Callbacks(grid))
	grid.Resize(s.width, s.height)
	grid.HandleFocus(true)
	s.setup(grid)

	r, g, b, _ := grid.Palette().Background.RGBA()
	gl.Viewport(0, 0, int32(s.width), int32(s.height))
	gl.ClearColor(float32(r)/255, float32(g)/255, float32(b)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	dl := opengl.AcquireDrawList()
	defer opengl.ReleaseDrawList(dl)

	canvas := renderer.NewCanvas()
	canvas.Begin(dl, s.width, s.height)
	grid.Draw(canvas)
	if err := renderer.Render(dl); err != nil {
		return err
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the grid states to capture.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "sheet", width: 500, height: 200,
			setup: func(g *matrix.Grid) {
				g.SetFocus(2, 2)
			},
		},
		{
			name: "marked_rows", width: 500, height: 200,
			setup: func(g *matrix.Grid) {
				g.SetMarkMode(matrix.MarkRow, matrix.MarkContinuous, true)
				_ = g.SetMarked("L0111" + strings.Repeat("0", g.Rows()-4))
			},
		},
		{
			name: "editing", width: 500, height: 200,
			setup: func(g *matrix.Grid) {
				g.SetFocus(3, 1)
				g.EditStart()
			},
		},
		{
			name: "list_editor", width: 500, height: 200,
			setup: func(g *matrix.Grid) {
				g.SetFocus(2, 4)
				g.HandleKey(matrix.KeyEvent{Key: matrix.KeyF4})
			},
		},
		{
			name: "dark", width: 500, height: 200,
			setup: func(g *matrix.Grid) {
				g.SetPalette(matrix.DarkPalette())
				g.SetFocus(1, 1)
			},
		},
		{
			name: "scrolled", width: 300, height: 120,
			setup: func(g *matrix.Grid) {
				g.SetFocus(12, 5)
			},
		},
	}
}
