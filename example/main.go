// Example runs the terminal renderer in a GLFW window: type to fill
// the grid, Backspace to delete, Escape to quit.
//
// An optional config file path may be given as the first argument
// (default "config.yaml"); a missing file runs with built-in defaults
// and the embedded Go Mono face.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/bobby-rust/rush"
	"github.com/bobby-rust/rush/backend/opengl"
	"github.com/bobby-rust/rush/typeface"
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
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := rush.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	style, err := cfg.Style()
	if err != nil {
		return fmt.Errorf("config palette: %w", err)
	}

	// Initialize GLFW.
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	// Initialize OpenGL.
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(cfg.Width, cfg.Height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()
	renderer.SetStyle(style)

	// Open the configured font, or fall back to the embedded Go Mono
	// face when no path is set.
	var face *typeface.Face
	if cfg.FontPath != "" {
		face, err = typeface.Open(cfg.FontPath, cfg.FontSize)
	} else {
		face, err = typeface.New(gomono.TTF, cfg.FontSize)
	}
	if err != nil {
		return fmt.Errorf("open font: %w", err)
	}
	defer face.Close()

	cache, err := rush.BuildGlyphCache(face, renderer)
	if err != nil {
		return fmt.Errorf("build glyph cache: %w", err)
	}
	defer cache.Delete()

	cellW, cellH := cache.CellPitch()
	fbWidth, fbHeight := window.GetFramebufferSize()
	grid, err := rush.NewGrid(cellW, cellH, rush.Viewport{
		Width:  float32(fbWidth),
		Height: float32(fbHeight),
	})
	if err != nil {
		return fmt.Errorf("grid: %w", err)
	}

	inputAdapter := opengl.NewInputAdapter(window)
	frame := rush.NewFrameRenderer(renderer, rush.WithFallback('?'))

	// Main loop: the input phase fully completes before the render
	// phase reads the grid.
	for !window.ShouldClose() {
		glfw.PollEvents()
		inputAdapter.Input().Apply(grid)

		w, h := window.GetFramebufferSize()
		renderer.Resize(w, h)
		grid.Resize(float32(w), float32(h))

		if err := frame.RenderFrame(grid, cache); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
