/*
Package rush is a terminal-style text renderer for an OpenGL context:
a fixed-size character grid drawn one textured quad per occupied cell,
with a solid cursor quad tracking the next insertion point. There is no
shell, no PTY, and no escape-code handling; this is the rendering and
input-buffering layer only.

# Overview

Four components cooperate each frame:

  - GlyphCache rasterizes the ASCII repertoire once through a
    GlyphSource (see the typeface package), uploads each bitmap through
    a TextureStore, and owns the resulting textures. The maximum
    advance and bitmap height it observes become the grid's uniform
    cell pitch.
  - Grid owns the append/delete text buffer, the display offset for
    scrolled-off rows, and the next-write cell. The cursor cell is
    recomputed from scratch every render pass rather than tracked
    incrementally, so it can never drift from the buffer.
  - QuadBuilder is pure geometry: cell coordinates and glyph metrics in,
    six vertices in normalized device coordinates out. Glyphs are
    clamped to their cell, centered horizontally, and placed vertically
    from their bearing above a fixed-fraction baseline.
  - FrameRenderer walks the visible cells and draws one quad per glyph
    through the Renderer interface, then draws the cursor. One upload,
    one draw call per glyph.

The GPU and the window live behind the Renderer, TextureStore, and
InputState surfaces; backend/opengl implements them on OpenGL 4.1 core
and GLFW. The root package imports neither.

# Quick Start

	face, _ := typeface.New(gomono.TTF, 48)
	cache, _ := rush.BuildGlyphCache(face, renderer)
	cellW, cellH := cache.CellPitch()
	grid, _ := rush.NewGrid(cellW, cellH, rush.Viewport{Width: 800, Height: 600})
	frame := rush.NewFrameRenderer(renderer)

	for !window.ShouldClose() {
	    glfw.PollEvents()
	    inputAdapter.Input().Apply(grid)
	    if err := frame.RenderFrame(grid, cache); err != nil {
	        return err
	    }
	    window.SwapBuffers()
	}

See example/ for complete wiring, including config loading and the
embedded-font fallback.

# Concurrency

Everything is single-threaded and phase-ordered: apply input, then
render. None of the types here lock; if input handling ever moves off
the render goroutine, buffer mutation and the render pass must share
one exclusion region.

# Errors

Initialization failures (ErrFontLoad, ErrGlyphRaster) are fatal: the
cell pitch depends on scanning the full repertoire, so no partial cache
is usable. ErrUnsupportedChar and ErrInvalidGeometry are recoverable
per-cell conditions; RenderFrame skips the affected cell and finishes
the frame.
*/
package rush
